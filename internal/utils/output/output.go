// Package output provides helpers for writing consistent console output.
//
// Every action in the menu reports back to the user. Rather than each
// handler choosing its own symbols and colours, they all go through the
// functions here, so success, failure and warnings always look the same.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-cli/internal/types"
)

// Rule is the separator printed around listings.
var Rule = strings.Repeat("-", 60)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	bannerStyle  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 4).
			Align(lipgloss.Center)
)

// Title prints a section heading such as "=== ALL STUDENTS ===".
func Title(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("=== "+title+" ==="))
}

// Banner prints lines inside a framed box.
func Banner(w io.Writer, lines ...string) {
	fmt.Fprintln(w, bannerStyle.Render(strings.Join(lines, "\n")))
}

// Success prints a confirmation prefixed with ✓.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Failure prints an error prefixed with ✗.
func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a highlighted notice without a prefix.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf(format, args...)))
}

// Students prints one student per line.
func Students(w io.Writer, students []types.Student) {
	for _, s := range students {
		fmt.Fprintln(w, s.String())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationMessage converts validator.ValidationErrors into one readable
// sentence per failing field, joined with a space.
//
// Example output:
//
//	Name cannot be empty! Please enter a valid age (1-150)!
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationMessage(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch {
		case e.Field() == "Email":
			msgs = append(msgs, "Please enter a valid email address!")
		case e.Field() == "Age":
			msgs = append(msgs, "Please enter a valid age (1-150)!")
		case e.ActualTag() == "required":
			msgs = append(msgs, fmt.Sprintf("%s cannot be empty!", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid!", e.Field()))
		}
	}

	return strings.Join(msgs, " ")
}

// ErrorMessage renders err for the user: validation errors through
// ValidationMessage, anything else verbatim.
func ErrorMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		return ValidationMessage(errs)
	}
	return err.Error()
}
