// Package console prints the colored, human facing part of the programs.
// Diagnostics go through sbragi, not through here.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
	blue   = color.New(color.FgBlue)
)

// Disable turns colors off for every writer, e.g. in tests or when piping.
func Disable() {
	color.NoColor = true
}

func Header(w io.Writer, width int, msg string) {
	rule := strings.Repeat("=", width)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, msg)
	fmt.Fprintln(w, rule)
}

func Section(w io.Writer, width int, msg string) {
	fmt.Fprintln(w, strings.Repeat("-", width))
	fmt.Fprintln(w, msg)
}

func Success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, format+"\n", a...)
}

func Warn(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, format+"\n", a...)
}

func Fail(w io.Writer, format string, a ...any) {
	red.Fprintf(w, format+"\n", a...)
}

func Info(w io.Writer, format string, a ...any) {
	blue.Fprintf(w, format+"\n", a...)
}

func Green(a ...any) string {
	return green.Sprint(a...)
}

func Yellow(a ...any) string {
	return yellow.Sprint(a...)
}

func Red(a ...any) string {
	return red.Sprint(a...)
}
