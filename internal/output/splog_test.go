package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("writes bare messages with prefixes", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithOptions(Options{Writer: &buf})
		require.NoError(t, err)

		splog.Info("deployed %s", "v1.0.0")
		splog.Warn("careful")
		splog.Error("failed: %d", 1)
		splog.Tip("try --push")
		splog.Debug("hidden")
		splog.Newline()
		splog.Page("raw %s")

		require.Equal(t, "deployed v1.0.0\n⚠️  careful\n❌ failed: 1\n💡 try --push\n\nraw %s", buf.String())
	})

	t.Run("shows debug messages in debug mode", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithOptions(Options{Writer: &buf, Debug: true})
		require.NoError(t, err)

		splog.Debug("parent is %s", "abc123")
		require.Equal(t, "parent is abc123\n", buf.String())
	})

	t.Run("leaves percent signs alone without arguments", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithOptions(Options{Writer: &buf})
		require.NoError(t, err)

		splog.Info("100% done")
		require.Equal(t, "100% done\n", buf.String())
	})

	t.Run("also writes to the log file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "docver.log")
		var buf bytes.Buffer
		splog, err := NewSplogWithOptions(Options{Writer: &buf, LogFile: logFile})
		require.NoError(t, err)

		splog.Info("visible")
		splog.Debug("file only")
		require.NoError(t, splog.Close())

		require.Equal(t, "visible\n", buf.String())
		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		require.Contains(t, lines[0], "level=INFO")
		require.Contains(t, lines[0], "msg=visible")
		require.Contains(t, lines[1], "level=DEBUG")
		require.Contains(t, lines[1], `msg="file only"`)
	})
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		logger := createLumberjackLogger("docver.log")
		require.Equal(t, 1, logger.MaxSize)
		require.Equal(t, 2, logger.MaxBackups)
		require.Equal(t, 30, logger.MaxAge)
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("DOCVER_LOG_MAX_SIZE", "5")
		t.Setenv("DOCVER_LOG_MAX_BACKUPS", "0")
		t.Setenv("DOCVER_LOG_MAX_AGE", "bogus")

		logger := createLumberjackLogger("docver.log")
		require.Equal(t, 5, logger.MaxSize)
		require.Equal(t, 0, logger.MaxBackups)
		require.Equal(t, 30, logger.MaxAge)
	})
}
