package cli_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"docver.dev/docver/internal/cli"
	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/output"
)

func TestPrintError(t *testing.T) {
	t.Run("writes plain text to a non-terminal even when stdout has colors", func(t *testing.T) {
		lipgloss.SetColorProfile(termenv.ANSI)
		t.Cleanup(output.DisableColors)

		var buf bytes.Buffer
		cli.PrintError(&buf, fmt.Errorf("deploy failed: %w", docvererrors.NewAliasConflictError("latest", "1.0.0")))

		require.NotContains(t, buf.String(), "\x1b[")
		require.Equal(t,
			"❌ deploy failed: alias latest already points to version 1.0.0\n"+
				"💡 Pass --update-aliases to move the alias.\n",
			buf.String())
	})

	t.Run("adds the non-fast-forward hint", func(t *testing.T) {
		var buf bytes.Buffer
		err := docvererrors.NewNonFastForwardError("refs/heads/gh-pages", "")
		cli.PrintError(&buf, err)

		require.Contains(t, buf.String(), "❌ "+err.Error()+"\n")
		require.Contains(t, buf.String(), "💡 "+err.Hint()+"\n")
	})
}
