package savefile

import "strconv"

// Well-known token ids.
const (
	TokenEquals   uint16 = 0x0001
	TokenDate     uint16 = 0x284a
	TokenPlayer   uint16 = 0x2a35
	TokenIdeology uint16 = 0x2e3e
)

var tokenNames = map[uint16]string{
	TokenPlayer:   "player",
	TokenDate:     "date",
	TokenIdeology: "ideology",
	TokenEquals:   "=",
}

var tokenIDs = func() map[string]uint16 {
	m := make(map[string]uint16, len(tokenNames))
	for id, name := range tokenNames {
		m[name] = id
	}
	return m
}()

// TokenName returns the canonical name of id, or UNKNOWN_TOKEN_<id>.
func TokenName(id uint16) string {
	if name, ok := tokenNames[id]; ok {
		return name
	}
	return "UNKNOWN_TOKEN_" + strconv.Itoa(int(id))
}

// TokenID is the reverse of TokenName for the known names.
func TokenID(name string) (uint16, bool) {
	id, ok := tokenIDs[name]
	return id, ok
}
