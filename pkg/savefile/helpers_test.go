package savefile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// stream builds token streams for tests.
type stream struct {
	bytes.Buffer
}

func newSave() *stream {
	s := &stream{}
	s.WriteString(Magic)
	return s
}

func (s *stream) code(c uint16) *stream {
	binary.Write(&s.Buffer, binary.LittleEndian, c)
	return s
}

func (s *stream) rawString(v string) *stream {
	binary.Write(&s.Buffer, binary.LittleEndian, uint16(len(v)))
	s.WriteString(v)
	return s
}

func (s *stream) str(v string) *stream  { return s.code(CodeString).rawString(v) }
func (s *stream) name(v string) *stream { return s.code(CodeName).rawString(v) }
func (s *stream) open() *stream         { return s.code(CodeOpenBrace) }
func (s *stream) close() *stream        { return s.code(CodeCloseBrace) }
func (s *stream) eq() *stream           { return s.code(TokenEquals) }

func (s *stream) i32(v int32) *stream {
	s.code(CodeInt)
	binary.Write(&s.Buffer, binary.LittleEndian, v)
	return s
}

func (s *stream) u32(v uint32) *stream {
	s.code(CodeUint)
	binary.Write(&s.Buffer, binary.LittleEndian, v)
	return s
}

func (s *stream) fixed(v int32) *stream {
	s.code(CodeFixed)
	binary.Write(&s.Buffer, binary.LittleEndian, v)
	return s
}

// header writes the fields every save starts with:
// player = "<tag>" ideology = <ideology> date = <raw>
func (s *stream) header(tag, ideology string, raw int32) *stream {
	return s.code(TokenPlayer).eq().str(tag).
		code(TokenIdeology).eq().name(ideology).
		code(TokenDate).eq().i32(raw)
}

// body strips the magic so the stream can be fed to Scan directly.
func (s *stream) body(t *testing.T) []byte {
	t.Helper()
	b := s.Bytes()
	if !bytes.HasPrefix(b, []byte(Magic)) {
		t.Fatal("stream has no magic")
	}
	return b[len(Magic):]
}
