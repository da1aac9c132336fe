package savefile

import "testing"

func TestTokenName(t *testing.T) {
	tests := []struct {
		id   uint16
		want string
	}{
		{0x2a35, "player"},
		{0x284a, "date"},
		{0x2e3e, "ideology"},
		{0x0001, "="},
		{0x1234, "UNKNOWN_TOKEN_4660"},
		{0, "UNKNOWN_TOKEN_0"},
	}
	for _, tt := range tests {
		if got := TokenName(tt.id); got != tt.want {
			t.Errorf("TokenName(%#x) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestTokenID_RoundTrip(t *testing.T) {
	for id, name := range tokenNames {
		got, ok := TokenID(name)
		if !ok || got != id {
			t.Errorf("TokenID(%q) = %#x, %v; want %#x", name, got, ok, id)
		}
		if TokenName(got) != name {
			t.Errorf("TokenName(TokenID(%q)) = %q", name, TokenName(got))
		}
	}
	if _, ok := TokenID("fascism"); ok {
		t.Error("TokenID should not know fascism")
	}
}
