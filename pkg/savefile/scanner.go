package savefile

import "io"

// FieldCount is the number of fields a summary needs.
const FieldCount = 9

// FieldSequence holds the text of non-structural tokens in stream order.
type FieldSequence []string

// Scanner decodes a token stream one token at a time. The buffer must
// start at the first token, i.e. after the header.
type Scanner struct {
	c     cursor
	depth int
}

func NewScanner(buf []byte) *Scanner {
	return &Scanner{c: cursor{buf: buf}}
}

// Next decodes the next token. It returns io.EOF once fewer than two
// bytes remain.
func (s *Scanner) Next() (Token, error) {
	if s.c.remaining() < 2 {
		return Token{}, io.EOF
	}
	start := s.c.pos
	code, err := s.c.u16()
	if err != nil {
		return Token{}, err
	}
	t, err := decodeToken(&s.c, code)
	if err != nil {
		return Token{}, &DecodeError{Offset: start, Code: code, Err: err}
	}
	switch t.Control {
	case ControlOpen:
		s.depth++
	case ControlClose:
		s.depth--
	}
	return t, nil
}

// Depth is the current brace nesting. It may go negative on
// unbalanced input.
func (s *Scanner) Depth() int { return s.depth }

// Offset is the position of the next unread byte.
func (s *Scanner) Offset() int { return s.c.pos }

// Scan collects up to target field texts from buf. Fields are taken at
// every depth; braces only move the depth counter. Running out of
// input before target is reached is not an error.
func Scan(buf []byte, target int) (FieldSequence, error) {
	s := NewScanner(buf)
	seq := make(FieldSequence, 0, max(target, 0))
	for len(seq) < target {
		t, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return seq, err
		}
		if t.Structural() {
			continue
		}
		seq = append(seq, t.Text)
	}
	return seq, nil
}
