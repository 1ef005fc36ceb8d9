package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels or input ends before an
// answer is given.
var ErrAborted = errors.New("aborted by user")

// Prompter asks questions. Options are shown in the order given.
type Prompter interface {
	MultiSelect(msg string, options, defaults []string) ([]string, error)
	Select(msg string, options []string, def string) (string, error)
	Confirm(msg string, def bool) (bool, error)
}

// New returns a Terminal prompter when both in and out are terminals and a
// Line prompter otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return &Terminal{}
	}
	return NewLine(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
