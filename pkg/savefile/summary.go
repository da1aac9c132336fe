package savefile

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
)

// Summary is what a backup listing shows for a save.
type Summary struct {
	Player      string `json:"player"`
	RawDate     int64  `json:"raw_date"`
	DisplayDate string `json:"date"`
}

// Label is the display name of the save, "<player> <date>".
func (s Summary) Label() string {
	return norm.NFC.String(s.Player) + " " + s.DisplayDate
}

// Decode reads the player and date out of a binary save.
func Decode(buf []byte) (Summary, error) {
	stream, err := VerifyHeader(buf)
	if err != nil {
		return Summary{}, err
	}

	seq, err := Scan(stream, FieldCount)
	if err != nil {
		return Summary{}, err
	}

	player, raw, err := Extract(seq)
	if err != nil {
		return Summary{}, err
	}

	date, err := DisplayDate(raw)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Player: player, RawDate: raw, DisplayDate: date}, nil
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader) (Summary, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, fmt.Errorf("read savefile: %w", err)
	}
	return Decode(buf)
}

// DecodeFile decodes the save at path.
func DecodeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	s, err := DecodeReader(f)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
