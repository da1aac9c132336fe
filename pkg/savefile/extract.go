package savefile

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// The header of a save always lays out its first fields in the same
// order, so the player and date are found by position rather than by
// the name token that precedes them.
const (
	playerIndex = 2
	dateIndex   = 8
)

// Extract returns the player name, without its quotes, and the raw
// hour counter from seq.
func Extract(seq FieldSequence) (string, int64, error) {
	if len(seq) < FieldCount {
		return "", 0, fmt.Errorf("%w: got %d of %d fields", ErrIncompleteRecord, len(seq), FieldCount)
	}

	player := trimEnds(seq[playerIndex])

	date, err := strconv.ParseInt(seq[dateIndex], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedDate, seq[dateIndex])
	}
	return player, date, nil
}

// trimEnds drops the first and last characters of s, normally the
// quotes around a string field.
func trimEnds(s string) string {
	_, first := utf8.DecodeRuneInString(s)
	s = s[first:]
	_, last := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-last]
}
