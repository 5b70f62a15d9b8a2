package indenter

import (
	"strings"
)

// Indenter lays out nested output over several lines. Every nested item
// starts on its own line, indented by one level more than its parent.
//
//	in.Start("(and").NestThunked(a, b).End(")")
type Indenter struct {
	buf   strings.Builder
	level int
}

func New() *Indenter {
	return &Indenter{}
}

func (i *Indenter) indent() string {
	return strings.Repeat("  ", i.level)
}

// Start writes the head of a nested item.
func (i *Indenter) Start(str string) *Indenter {
	i.buf.WriteString(str)
	return i
}

// Write appends str to the current line.
func (i *Indenter) Write(str string) *Indenter {
	i.buf.WriteString(str)
	return i
}

func (i *Indenter) NestThunked(strs ...func(*Indenter)) *Indenter {
	return i.NestThunkedSep("", strs...)
}

// NestThunkedSep writes each item on its own line at the next level. Items
// are thunks so that they can nest further with the right indentation.
func (i *Indenter) NestThunkedSep(sep string, strs ...func(*Indenter)) *Indenter {
	i.level++
	for j, str := range strs {
		i.buf.WriteString("\n" + i.indent())
		str(i)
		if j < len(strs)-1 {
			i.buf.WriteString(sep)
		}
	}
	i.level--
	i.buf.WriteString("\n")
	return i
}

func (i *Indenter) NestStrings(strs ...string) *Indenter {
	thunks := make([]func(*Indenter), len(strs))
	for j, s := range strs {
		s := s
		thunks[j] = func(i *Indenter) { i.Write(s) }
	}
	return i.NestThunked(thunks...)
}

// End closes a nested item. A closer that follows nested lines is indented
// to the level of the matching head.
func (i *Indenter) End(str string) *Indenter {
	if s := i.buf.String(); len(s) > 0 && s[len(s)-1] == '\n' {
		i.buf.WriteString(i.indent())
	}
	i.buf.WriteString(str)
	return i
}

func (i *Indenter) String() string {
	return i.buf.String()
}
