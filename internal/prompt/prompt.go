package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned when the input stream ends before a valid answer is read
var ErrNoInput = errors.New("no more input")

// Prompter asks questions on out and reads one-line answers from in
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter over the given streams
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine reads one line without its line terminator. It returns early with
// ctx.Err() if the context is cancelled while waiting on input; the pending
// read is abandoned and the prompter must not be reused after that.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return strings.TrimRight(r.line, "\r\n"), nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", ErrNoInput
			}
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// Confirm asks a yes/no question until it gets a recognizable answer
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n): ", question)

		answer, err := p.ReadLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(p.out, "Invalid answer. Please enter 'y' for yes or 'n' for no.")
		}
	}
}

// Select asks for a 1-based number no greater than max and re-prompts on
// non-numeric or out-of-range input. A max of zero or less disables the
// upper bound.
func (p *Prompter) Select(ctx context.Context, question string, max int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", question)

		answer, err := p.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(answer))
		switch {
		case err != nil:
			fmt.Fprintln(p.out, "Please enter a valid number.")
		case n <= 0:
			fmt.Fprintln(p.out, "The number must be greater than zero.")
		case max > 0 && n > max:
			fmt.Fprintf(p.out, "The number must not be greater than %d.\n", max)
		default:
			return n, nil
		}
	}
}
