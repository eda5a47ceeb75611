// This file is part of the z80-digital-twin project.
//
// z80-digital-twin is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// z80-digital-twin is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with z80-digital-twin.  If not, see <https://www.gnu.org/licenses/>.

// Package logger provides a small bounded, dependency-free log used by the
// z80 package to record anomalies that happen off the hot path: construction,
// reset, and unmapped-opcode fallbacks. Nothing in the fetch/decode/execute
// loop itself calls into this package.
package logger

import (
	"fmt"
	"io"
	"strings"
)

// Entry is a single line in the log, with adjacent-duplicate collapsing so a
// repeated anomaly doesn't flood the buffer.
type Entry struct {
	tag      string
	detail   string
	repeated int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is a bounded ring of log entries. The package-level functions
// operate on a single central instance; NewLogger is exposed for tests and
// for callers that want an isolated log.
type Logger struct {
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

// NewLogger creates a Logger that retains at most maxEntries entries.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0),
	}
}

// Log adds an entry to the log if perm allows it.
func (l *Logger) Log(perm Permission, tag, detail string) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.log(tag, detail)
}

// Logf is Log with fmt.Sprintf-style formatting of detail.
func (l *Logger) Logf(perm Permission, tag, detail string, args ...interface{}) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.log(tag, fmt.Sprintf(detail, args...))
}

func (l *Logger) log(tag, detail string) {
	if n := len(l.entries); n > 0 {
		last := &l.entries[n-1]
		if last.tag == tag && last.detail == detail {
			last.repeated++
			if l.echo != nil {
				io.WriteString(l.echo, last.String())
			}
			return
		}
	}

	l.entries = append(l.entries, Entry{tag: tag, detail: detail})
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

// Clear removes all entries.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

// Write writes every retained entry to output, oldest first.
func (l *Logger) Write(output io.Writer) {
	for _, e := range l.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last number entries to output. A number larger than the
// number of retained entries writes all of them.
func (l *Logger) Tail(output io.Writer, number int) {
	if number > len(l.entries) {
		number = len(l.entries)
	}
	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho causes every future entry to also be written to output
// immediately, in addition to being retained. A nil output disables echoing.
func (l *Logger) SetEcho(output io.Writer) {
	l.echo = output
}

var central = NewLogger(256)

// Log adds an entry to the central log.
func Log(perm Permission, tag, detail string) { central.Log(perm, tag, detail) }

// Logf adds a formatted entry to the central log.
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	central.Logf(perm, tag, detail, args...)
}

// Clear empties the central log.
func Clear() { central.Clear() }

// Write writes the central log to output.
func Write(output io.Writer) { central.Write(output) }

// Tail writes the last number entries of the central log to output.
func Tail(output io.Writer, number int) { central.Tail(output, number) }

// SetEcho enables or disables immediate echoing of the central log.
func SetEcho(output io.Writer) { central.SetEcho(output) }
