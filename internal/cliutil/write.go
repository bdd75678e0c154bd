// Package cliutil holds small helpers shared by the rxdoc subcommands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writef is fmt.Fprintf for report output. A failed write is noted on
// os.Stderr rather than returned.
func Writef(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err == nil || w == io.Writer(os.Stderr) {
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, "rxdoc: write failed:", err)
}

// StringList is a flag.Value collecting every occurrence of a repeatable
// string flag, in order.
type StringList []string

// String joins the values with ", ".
func (s *StringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ", ")
}

// Set appends v.
func (s *StringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
