// Package prompt asks the user to pick a series when a search is ambiguous.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/s0up4200/tvdb-episodes/listing"
	"github.com/s0up4200/tvdb-episodes/tvdb"
)

// ErrNotInteractive is returned when a choice is needed but stdin is not a terminal
var ErrNotInteractive = errors.New("multiple series matched and stdin is not a terminal")

const question = "Multiple results found, enter a numeric ID (anything else to quit):"

// Prompter lists the matches and reads the chosen ID
type Prompter struct {
	out         io.Writer
	interactive bool
	ask         func(message string) (string, error)
}

// New creates a Prompter writing the match list to out and reading from the terminal
func New(out io.Writer) *Prompter {
	return &Prompter{
		out:         out,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		ask:         askSurvey,
	}
}

func askSurvey(message string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message}, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", listing.ErrAborted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return answer, nil
}

// Chooser adapts the Prompter to listing.Chooser
func (p *Prompter) Chooser() listing.Chooser {
	return p.Choose
}

// Choose prints "name: id" per match and asks for an ID.
// Anything that is not a positive number aborts.
func (p *Prompter) Choose(ctx context.Context, matches []tvdb.Series) (uint64, error) {
	for _, series := range matches {
		fmt.Fprintf(p.out, "%s: %d\n", series.SeriesName, series.ID)
	}
	fmt.Fprintln(p.out)

	if !p.interactive {
		return 0, fmt.Errorf("%w: pick one with --id", ErrNotInteractive)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	answer, err := p.ask(question)
	if err != nil {
		return 0, err
	}

	return parseChoice(answer)
}

func parseChoice(answer string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(answer), 10, 64)
	if err != nil || id == 0 {
		return 0, listing.ErrAborted
	}
	return id, nil
}
