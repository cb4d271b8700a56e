package cli

import (
	"errors"
	"io"

	docvererrors "docver.dev/docver/internal/errors"
	"docver.dev/docver/internal/output"
)

// PrintError writes a one-line diagnostic for err, followed by a hint when
// there is an obvious next step.
func PrintError(w io.Writer, err error) {
	splog, _ := output.NewSplogWithOptions(output.Options{Writer: w})
	message := err.Error()
	if output.ColorsEnabledFor(w) {
		message = output.ColorRed(message)
	}
	splog.Error("%s", message)

	var nonFastForward *docvererrors.NonFastForwardError
	switch {
	case errors.As(err, &nonFastForward):
		splog.Tip(nonFastForward.Hint())
	case errors.Is(err, docvererrors.ErrRemoteDiverged):
		splog.Tip("Pass --ignore-remote-status to commit on top of the local branch anyway.")
	case errors.Is(err, docvererrors.ErrAliasConflict):
		splog.Tip("Pass --update-aliases to move the alias.")
	}
}
