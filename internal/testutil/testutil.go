package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"hoi4save/pkg/savefile"
)

// Save returns a minimal binary save whose header carries player and
// the raw date counter.
func Save(player string, raw int32) []byte {
	var b bytes.Buffer
	b.WriteString(savefile.Magic)
	code := func(c uint16) { binary.Write(&b, binary.LittleEndian, c) }
	str := func(c uint16, s string) {
		code(c)
		binary.Write(&b, binary.LittleEndian, uint16(len(s)))
		b.WriteString(s)
	}

	code(savefile.TokenPlayer)
	code(savefile.TokenEquals)
	str(savefile.CodeString, player)
	code(savefile.TokenIdeology)
	code(savefile.TokenEquals)
	str(savefile.CodeName, "fascism")
	code(savefile.TokenDate)
	code(savefile.TokenEquals)
	code(savefile.CodeInt)
	binary.Write(&b, binary.LittleEndian, raw)

	// Some nested trailing state, as a real save has.
	code(0x2b1c)
	code(savefile.TokenEquals)
	code(savefile.CodeOpenBrace)
	code(savefile.CodeBool)
	b.WriteByte(1)
	code(savefile.CodeCloseBrace)
	return b.Bytes()
}

// Hours returns the raw date counter for the given day offset and hour
// after 1 January 1936.
func Hours(days, hour int) int32 {
	return int32(savefile.Epoch) + int32(days*24+hour)
}

// WriteSave writes data to name inside dir and returns the full path.
func WriteSave(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
