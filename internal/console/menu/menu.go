// Package menu runs the numbered main menu and dispatches to actions.
//
// Actions are registered the way HTTP handlers are registered on a
// router: menu.Handle("Add New Student", student.New(store)). The exit
// entry is always appended last.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/students-cli/internal/console/prompt"
	"github.com/aanand-mishra/students-cli/internal/utils/output"
)

// ActionFunc is one menu action. It reports every domain outcome to the
// user itself; a returned error means the input stream failed (io.EOF
// when the user closed stdin).
type ActionFunc func(ctx context.Context, s *prompt.Session) error

type entry struct {
	label  string
	action ActionFunc
}

// Menu is an ordered list of actions.
type Menu struct {
	title   string
	entries []entry
	log     *slog.Logger
}

// New returns an empty menu. title appears in the welcome and goodbye banners.
func New(title string, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.Default()
	}
	return &Menu{title: title, log: log}
}

// Handle appends an action; its number is its position, starting at 1.
func (m *Menu) Handle(label string, action ActionFunc) {
	m.entries = append(m.entries, entry{label: label, action: action})
}

func (m *Menu) exitChoice() int {
	return len(m.entries) + 1
}

// Welcome prints the start-up banner.
func (m *Menu) Welcome(w io.Writer, version string) {
	output.Banner(w, m.title, "Version "+version)
}

// Render prints the numbered menu.
func (m *Menu) Render(w io.Writer) {
	var b strings.Builder
	for i, e := range m.entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.label)
	}
	fmt.Fprintf(&b, "%d. Exit Application", m.exitChoice())

	fmt.Fprintln(w)
	output.Banner(w, "MAIN MENU", "", b.String())
}

// Run loops until the user confirms exit or the input ends. It returns
// nil in both cases; only context cancellation is reported as an error.
// Cancellation is checked after every blocking read, so an answer typed
// after cancellation is never dispatched.
func (m *Menu) Run(ctx context.Context, s *prompt.Session) error {
	s.Bind(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.Render(s.Out())

		choice, err := s.Int("Enter your choice: ")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return m.inputEnded(err)
		}

		if choice == m.exitChoice() {
			leave, err := s.Confirm("\nAre you sure you want to exit? (y/N): ")
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				return m.inputEnded(err)
			}
			if leave {
				m.goodbye(s.Out())
				return nil
			}
			s.Println("Returning to main menu...")
			continue
		}

		if choice < 1 || choice > len(m.entries) {
			output.Failure(s.Out(), "Invalid choice! Please select a number between 1-%d.", m.exitChoice())
		} else {
			e := m.entries[choice-1]
			m.log.Debug("menu action", slog.String("action", e.label))

			err := e.action(ctx, s)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return m.inputEnded(err)
				}
				m.log.Error("menu action failed",
					slog.String("action", e.label),
					slog.String("error", err.Error()))
				output.Failure(s.Out(), "An error occurred: %s", err.Error())
			}
		}

		if err := s.Pause(); err != nil {
			return m.inputEnded(err)
		}
		s.Clear()
	}
}

func (m *Menu) goodbye(w io.Writer) {
	fmt.Fprintln(w)
	output.Banner(w, "Thank you for using", m.title+"!", "Goodbye!")
}

// inputEnded turns the end of stdin into a normal exit.
func (m *Menu) inputEnded(err error) error {
	if errors.Is(err, io.EOF) {
		m.log.Info("input closed, leaving menu")
		return nil
	}
	m.log.Error("reading input failed", slog.String("error", err.Error()))
	return err
}
