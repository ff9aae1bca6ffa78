package filelogger

import (
	"bufio"
	"bytes"
	"io"
)

var newline = []byte{'\n'}

var _ io.Writer = (*splitter)(nil)

// splitter repeats prefix p in front of every line written.
type splitter struct {
	w *bufio.Writer
	p bytes.Buffer
	n bool // at line start
}

func (s *splitter) reset() {
	s.n = true
	s.p.Reset()
}

func (s *splitter) Write(b []byte) (n int, err error) {
	l := 0
	for i := range b {
		if s.n {
			s.w.Write(s.p.Bytes())
			s.n = false
		}
		if b[i] == '\n' {
			s.w.Write(b[l : i+1])
			l = i + 1
			s.n = true
		}
	}
	if l < len(b) {
		s.w.Write(b[l:])
	}
	return len(b), nil
}

func (s *splitter) finish() {
	if !s.n {
		s.w.Write(newline)
	}
	s.w.Flush()
}
