// Package chesscom provides a minimal client for the chess.com Published-Data API.
package chesscom

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pable/chessboard/internal/logging"
)

// DefaultBaseURL is the root endpoint for the chess.com PubAPI.
const DefaultBaseURL = "https://api.chess.com/pub"

// ErrUnexpectedStatus is returned for any non-200 response that is not
// handled explicitly.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	HTTP      *http.Client
	Logger    *logging.Logger
}

// Client is a read-only chess.com PubAPI client. Every request carries the
// configured User-Agent, as chess.com asks of unauthenticated callers.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *logging.Logger
}

// NewClient returns a client for the given options.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: opts.UserAgent,
		http:      httpClient,
		log:       log,
	}
}

// Side is one player's half of a game record. Absent JSON fields stay nil.
type Side struct {
	Username *string `json:"username"`
	Result   *string `json:"result"`
}

// Game holds the fields we need from a monthly archive entry.
type Game struct {
	URL       *string `json:"url"`
	TimeClass string  `json:"time_class"`
	EndTime   *int64  `json:"end_time"`
	White     *Side   `json:"white"`
	Black     *Side   `json:"black"`
}

// UsernameOf returns the side's username, or ("", false) if the side or
// its username is missing.
func UsernameOf(s *Side) (string, bool) {
	if s == nil || s.Username == nil {
		return "", false
	}
	return *s.Username, true
}

// ResultOf returns the side's result code, or "" if missing.
func ResultOf(s *Side) string {
	if s == nil || s.Result == nil {
		return ""
	}
	return *s.Result
}

// EndTimeOr returns the game's end time, or 0 if missing.
func (g Game) EndTimeOr() int64 {
	if g.EndTime == nil {
		return 0
	}
	return *g.EndTime
}

// URLOr returns the game's URL, or "" if missing.
func (g Game) URLOr() string {
	if g.URL == nil {
		return ""
	}
	return *g.URL
}

// get performs a GET against rawURL and decodes the JSON body into out.
// It returns the HTTP status so callers can special-case it.
func (c *Client) get(ctx context.Context, rawURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "build request %s", rawURL)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "GET %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, errors.Wrapf(ErrUnexpectedStatus, "GET %s: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrapf(err, "read body %s", rawURL)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return resp.StatusCode, errors.Wrapf(err, "decode %s", rawURL)
	}
	return resp.StatusCode, nil
}

// Archives returns the monthly archive URLs available for username, oldest
// first. A 403 means the player's games are not public; it is logged and
// reported as no archives.
func (c *Client) Archives(ctx context.Context, username string) ([]string, error) {
	endpoint := c.baseURL + "/player/" + url.PathEscape(strings.ToLower(username)) + "/games/archives"
	c.log.Info("fetching archives", "player", username)

	var resp struct {
		Archives []string `json:"archives"`
	}
	status, err := c.get(ctx, endpoint, &resp)
	if status == http.StatusForbidden {
		c.log.Warn("access denied (403), check privacy settings", "player", username)
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "archives for %s", username)
	}
	if resp.Archives == nil {
		return []string{}, nil
	}
	return resp.Archives, nil
}

// Games returns every game record in one monthly archive.
func (c *Client) Games(ctx context.Context, archiveURL string) ([]Game, error) {
	c.log.Info("fetching games", "archive", archiveURL)

	var resp struct {
		Games []Game `json:"games"`
	}
	if _, err := c.get(ctx, archiveURL, &resp); err != nil {
		return nil, err
	}
	if resp.Games == nil {
		return []Game{}, nil
	}
	return resp.Games, nil
}
