package savefile

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestExtract(t *testing.T) {
	seq := FieldSequence{"player", "=", `"SOV"`, "ideology", "=", "communism", "date", "=", "60800000"}
	player, raw, err := Extract(seq)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if player != "SOV" || raw != 60800000 {
		t.Errorf("Extract = %q, %d", player, raw)
	}
}

// The player and date are read by position only; the names around
// them are not consulted.
func TestExtract_PositionsPinned(t *testing.T) {
	seq := FieldSequence{"a", "b", "[ITA]", "c", "d", "e", "f", "g", "-5", "h"}
	player, raw, err := Extract(seq)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if player != "ITA" {
		t.Errorf("player = %q, want ITA", player)
	}
	if raw != -5 {
		t.Errorf("raw = %d, want -5", raw)
	}
}

func TestExtract_PlayerEnds(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{`"GER"`, "GER"},
		{"ÄGERÖ", "GER"},
		{"«Рейх»", "Рейх"},
		{`"日本"`, "日本"},
		{"日本", ""},
		{"Ä", ""},
		{"x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		seq := FieldSequence{"", "", tt.field, "", "", "", "", "", "1"}
		player, _, err := Extract(seq)
		if err != nil {
			t.Fatalf("Extract(%q): %v", tt.field, err)
		}
		if player != tt.want {
			t.Errorf("Extract(%q) player = %q, want %q", tt.field, player, tt.want)
		}
		if !utf8.ValidString(player) {
			t.Errorf("Extract(%q) player %q is not valid UTF-8", tt.field, player)
		}
	}
}

func TestExtract_Incomplete(t *testing.T) {
	seq := FieldSequence{"player", "=", `"GER"`, "ideology", "="}
	player, raw, err := Extract(seq)
	if !errors.Is(err, ErrIncompleteRecord) {
		t.Fatalf("err = %v, want ErrIncompleteRecord", err)
	}
	if player != "" || raw != 0 {
		t.Errorf("partial result leaked: %q, %d", player, raw)
	}
}

func TestExtract_MalformedDate(t *testing.T) {
	for _, date := range []string{"1.5", "2.0", "yes", `"60759359"`, ""} {
		seq := FieldSequence{"player", "=", `"GER"`, "", "", "", "date", "=", date}
		if _, _, err := Extract(seq); !errors.Is(err, ErrMalformedDate) {
			t.Errorf("date %q: err = %v, want ErrMalformedDate", date, err)
		}
	}
}
