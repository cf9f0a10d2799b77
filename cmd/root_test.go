package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pable/chessboard/internal/logging"
)

func TestReportFatalPrintsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger
	logger = logging.FromZap(zap.New(core))
	defer func() { logger = prev }()

	var out bytes.Buffer
	reportFatal(&out, errors.Wrap(errors.New("archives for alice: 500"), "collect"))

	assert.Equal(t, 1, strings.Count(out.String(), "collect: archives for alice: 500"))
	assert.Contains(t, out.String(), "root_test.go")
	assert.Zero(t, logs.Len())
}
