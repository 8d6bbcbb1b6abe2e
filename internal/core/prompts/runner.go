package prompts

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// maxAttempts bounds how often a question is asked in accessible mode.
const maxAttempts = 3

// Runner asks questions in the terminal with huh forms.
type Runner struct {
	Accessible bool
	Input      io.Reader
	Output     io.Writer

	lines *lineReader
}

// NewRunner returns a Runner on stdin/stderr. Accessible mode is used when
// stdin is not a terminal or ACCESSIBLE is set.
func NewRunner() *Runner {
	fd := os.Stdin.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Runner{
		Accessible: !tty || os.Getenv("ACCESSIBLE") != "",
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// Ask implements Prompter. A question whose answer fails validation is asked
// again with the validation message shown. In accessible mode the validation
// error is returned after maxAttempts answers, and running out of input
// fails with io.EOF.
func (r *Runner) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return answers, err
		}
		if !q.Applies(answers) {
			continue
		}
		var choices []Choice
		if q.Choices != nil {
			var err error
			if choices, err = q.Choices(ctx, answers); err != nil {
				return answers, fmt.Errorf("%s: %w", q.Name, err)
			}
		}
		current := q.DefaultValue(answers)
		for attempt := 1; ; attempt++ {
			if err := ctx.Err(); err != nil {
				return answers, err
			}
			value, err := r.ask(ctx, q, choices, current)
			if err != nil {
				return answers, err
			}
			if err := q.Check(ctx, value, answers); err != nil {
				if r.Accessible && attempt >= maxAttempts {
					return answers, fmt.Errorf("%s: %w", q.Name, err)
				}
				_, _ = fmt.Fprintln(r.output(), color.RedString("✗ %s", err.Error()))
				current = value
				continue
			}
			answers[q.Name] = value
			break
		}
	}
	return answers, nil
}

func (r *Runner) ask(ctx context.Context, q Question, choices []Choice, current any) (any, error) {
	var (
		field   huh.Field
		text    = stringValue(current)
		confirm bool
	)
	switch q.Type {
	case List:
		if len(choices) == 0 {
			return nil, i18n.Error("prompts.noChoices", "name", q.Name)
		}
		options := make([]huh.Option[string], 0, len(choices))
		for _, c := range choices {
			options = append(options, huh.NewOption(c.Name, c.Value))
		}
		field = huh.NewSelect[string]().
			Title(q.Message).
			Description(q.Guide).
			Options(options...).
			Value(&text)
	case Confirm:
		confirm, _ = current.(bool)
		field = huh.NewConfirm().
			Title(q.Message).
			Description(q.Guide).
			Value(&confirm)
	case Editor:
		field = huh.NewText().
			Title(q.Message).
			Description(q.Guide).
			Value(&text)
	case Password:
		input := huh.NewInput().
			Title(q.Message).
			Description(q.Guide).
			Value(&text)
		// Accessible password prompts read from a terminal fd only.
		if !r.Accessible || r.terminalInput() {
			input = input.EchoMode(huh.EchoModePassword)
		}
		field = input
	default:
		field = huh.NewInput().
			Title(q.Message).
			Description(q.Guide).
			Value(&text)
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(r.Accessible).
		WithShowHelp(false)
	var lines *lineReader
	switch {
	case r.Accessible && !(q.Type == Password && r.terminalInput()):
		lines = r.lineInput()
		form = form.WithInput(lines)
	case r.Input != nil:
		form = form.WithInput(r.Input)
	}
	form = form.WithOutput(r.output())

	served := 0
	if lines != nil {
		served = lines.served
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("%s: %w", q.Name, err)
	}
	// huh falls back to the default when its scanner hits end of input.
	if lines != nil && lines.eof && lines.served == served {
		return nil, fmt.Errorf("%s: %w", q.Name, io.EOF)
	}
	if q.Type == Confirm {
		return confirm, nil
	}
	return text, nil
}

func (r *Runner) lineInput() *lineReader {
	if r.lines == nil {
		in := r.Input
		if in == nil {
			in = os.Stdin
		}
		r.lines = &lineReader{in: bufio.NewReader(in)}
	}
	return r.lines
}

func (r *Runner) terminalInput() bool {
	in := r.Input
	if in == nil {
		in = os.Stdin
	}
	f, ok := in.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (r *Runner) output() io.Writer {
	if r.Output != nil {
		return r.Output
	}
	return os.Stderr
}

// lineReader hands out at most one line per Read. huh builds a new scanner
// for every accessible field, so anything read past the current line would be
// lost to the next question.
type lineReader struct {
	in      *bufio.Reader
	pending []byte
	served  int
	eof     bool
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		if l.eof {
			return 0, io.EOF
		}
		line, err := l.in.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, err
			}
			l.eof = true
		}
		if len(line) == 0 {
			return 0, io.EOF
		}
		l.pending = line
		l.served++
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
