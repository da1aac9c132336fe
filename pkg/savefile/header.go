package savefile

import "bytes"

// Magic opens every binary (ironman) save.
const Magic = "HOI4bin"

// VerifyHeader checks the magic and returns the token stream after it.
func VerifyHeader(buf []byte) ([]byte, error) {
	if len(buf) < len(Magic) || !bytes.Equal(buf[:len(Magic)], []byte(Magic)) {
		return nil, ErrUnrecognizedFormat
	}
	return buf[len(Magic):], nil
}
