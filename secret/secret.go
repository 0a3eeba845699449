// Package secret holds passwords typed into the terminal. Contents are
// overwritten on Zeroize rather than left for the garbage collector.
package secret

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const maskRune = '•'

// Field is a masked input. The zero value is ready to use.
type Field struct {
	Label   string
	Focused bool
	buf     []rune
}

func New(label string) *Field {
	return &Field{Label: label, buf: make([]rune, 0, 32)}
}

func (f *Field) Insert(r ...rune) {
	for _, c := range r {
		if len(f.buf) == cap(f.buf) {
			f.grow()
		}
		f.buf = append(f.buf, c)
	}
}

// grow moves the contents to a larger buffer and wipes the old one.
func (f *Field) grow() {
	next := make([]rune, len(f.buf), 2*cap(f.buf)+16)
	copy(next, f.buf)
	wipe(f.buf[:cap(f.buf)])
	f.buf = next
}

func (f *Field) Backspace() {
	if n := len(f.buf); n > 0 {
		f.buf[n-1] = 0
		f.buf = f.buf[:n-1]
	}
}

func (f *Field) Len() int {
	return len(f.buf)
}

func (f *Field) IsEmpty() bool {
	return len(f.buf) == 0
}

// Bytes returns a UTF-8 copy. The caller owns it and should Wipe it.
func (f *Field) Bytes() []byte {
	n := 0
	for _, r := range f.buf {
		n += utf8.RuneLen(r)
	}
	out := make([]byte, 0, n)
	for _, r := range f.buf {
		out = utf8.AppendRune(out, r)
	}
	return out
}

// Zeroize overwrites the contents and empties the field.
func (f *Field) Zeroize() {
	wipe(f.buf[:cap(f.buf)])
	f.buf = f.buf[:0]
}

// Update applies a key press. It reports whether the key was consumed.
func (f *Field) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		f.Insert(msg.Runes...)
		return true
	case tea.KeyBackspace:
		f.Backspace()
		return true
	case tea.KeyCtrlU:
		f.Zeroize()
		return true
	}
	return false
}

func (f *Field) View() string {
	var b strings.Builder
	if f.Label != "" {
		b.WriteString(f.Label)
		b.WriteString(": ")
	}
	b.WriteString(strings.Repeat(string(maskRune), len(f.buf)))
	if f.Focused {
		b.WriteString("▌")
	}
	return b.String()
}

func wipe(r []rune) {
	for i := range r {
		r[i] = 0
	}
}

// Wipe overwrites b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
