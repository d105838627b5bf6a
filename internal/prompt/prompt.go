package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"propdesk/internal/validate"
)

var (
	// ErrInputClosed is returned once the input stream is exhausted.
	ErrInputClosed = errors.New("input closed")
	// ErrTooManyAttempts is returned when a prompt hits its rejection limit.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

const (
	choicePrompt = "Enter your choice: "
	choiceError  = "Invalid choice. Please enter a number."
)

// Prompter reads operator input line by line and writes prompts and
// menus to out. Reads stop waiting as soon as their context is done.
type Prompter struct {
	in          io.Reader
	reader      *bufio.Reader
	out         io.Writer
	maxAttempts int

	// pending carries the result of a read that outlived its context; the
	// next read collects it instead of starting another.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithMaxAttempts bounds how many rejected entries a single prompt accepts
// before giving up. Zero keeps the loop unbounded.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		p.maxAttempts = n
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Out is the writer the prompter renders to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Printf writes formatted text to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// DisplayMenu prints options numbered from 1 and returns the number the
// operator typed. The number is not range checked; a value too large for an
// int comes back as 0 so callers treat it like any other invalid choice.
func (p *Prompter) DisplayMenu(ctx context.Context, options []string) (int, error) {
	for i, option := range options {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, option)
	}

	raw, err := p.ValidateInput(ctx, choicePrompt, validate.Integer, choiceError)
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return choice, nil
}

// ValidateInput asks until valid accepts the trimmed entry, printing
// errMsg after each rejection.
func (p *Prompter) ValidateInput(ctx context.Context, prompt string, valid validate.Func, errMsg string) (string, error) {
	attempts := 0
	for {
		fmt.Fprint(p.out, prompt)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		value := strings.TrimSpace(line)
		if valid(value) {
			return value, nil
		}

		fmt.Fprintln(p.out, errMsg)
		attempts++
		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			return "", fmt.Errorf("%s: %w", strings.TrimSpace(prompt), ErrTooManyAttempts)
		}
	}
}

// ReadSecret reads one line without echo when the input is a terminal.
func (p *Prompter) ReadSecret(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return p.readPassword(ctx, int(f.Fd()))
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) readPassword(ctx context.Context, fd int) (string, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	done := make(chan lineResult, 1)
	go func() {
		secret, err := term.ReadPassword(fd)
		done <- lineResult{line: string(secret), err: err}
	}()

	select {
	case <-ctx.Done():
		// ReadPassword restores echo only when it returns
		_ = term.Restore(fd, state)
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res := <-done:
		fmt.Fprintln(p.out)
		if res.err != nil {
			return "", fmt.Errorf("failed to read secret: %w", res.err)
		}
		return res.line, nil
	}
}

// readLine waits for the next line or for ctx to end, whichever is first.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if p.pending == nil {
		p.pending = make(chan lineResult, 1)
		go func(ch chan<- lineResult) {
			line, err := p.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}(p.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.pending:
		p.pending = nil
		return lineOrClosed(res.line, res.err)
	}
}

func lineOrClosed(line string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return line, nil
			}
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}
