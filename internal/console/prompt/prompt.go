// Package prompt reads line-oriented answers from the user.
//
// A Session wraps an input reader and an output writer. Every read
// returns io.EOF once the input is exhausted, which callers treat as
// "the user left" and unwind back to the menu loop. A Session bound to a
// context returns the context's error from any read that completes
// after cancellation.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// clearSequence moves the cursor home and clears the terminal.
const clearSequence = "\033[H\033[2J"

// Session is one interactive conversation over in/out.
type Session struct {
	in          *bufio.Scanner
	out         io.Writer
	clearScreen bool
	ctx         context.Context
}

// New returns a Session reading from in and writing to out.
// clearScreen enables Clear; otherwise Clear only prints a blank line.
func New(in io.Reader, out io.Writer, clearScreen bool) *Session {
	return &Session{
		in:          bufio.NewScanner(in),
		out:         out,
		clearScreen: clearScreen,
	}
}

// Bind ties later reads to ctx.
func (s *Session) Bind(ctx context.Context) {
	s.ctx = ctx
}

// Out is where prompts and messages are written.
func (s *Session) Out() io.Writer {
	return s.out
}

// Printf writes formatted text without a trailing newline.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Println writes its arguments followed by a newline.
func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// Line prints prompt and returns the next input line with surrounding
// whitespace removed.
func (s *Session) Line(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	scanned := s.in.Scan()
	if s.ctx != nil {
		if err := s.ctx.Err(); err != nil {
			return "", err
		}
	}
	if !scanned {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}

	return strings.TrimSpace(s.in.Text()), nil
}

// Int keeps asking until the answer parses as an integer.
func (s *Session) Int(prompt string) (int, error) {
	for {
		line, err := s.Line(prompt)
		if err != nil {
			return 0, err
		}
		if line == "" {
			fmt.Fprintln(s.out, "Please enter a number.")
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		return n, nil
	}
}

// ID is Int for record identifiers.
func (s *Session) ID(prompt string) (int64, error) {
	n, err := s.Int(prompt)
	return int64(n), err
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) is a yes;
// everything else, including a blank line, is a no.
func (s *Session) Confirm(prompt string) (bool, error) {
	line, err := s.Line(prompt)
	if err != nil {
		return false, err
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Pause waits for Enter so the user can read the last output.
func (s *Session) Pause() error {
	fmt.Fprintln(s.out)
	_, err := s.Line("Press Enter to continue...")
	fmt.Fprintln(s.out)
	return err
}

// Clear wipes the terminal when enabled.
func (s *Session) Clear() {
	if s.clearScreen {
		fmt.Fprint(s.out, clearSequence)
		return
	}
	fmt.Fprintln(s.out)
}
