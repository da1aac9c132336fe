package savefile

import (
	"strconv"
	"strings"
)

// Type codes with a payload.
const (
	CodeOpenBrace  uint16 = 3
	CodeCloseBrace uint16 = 4
	CodeInt        uint16 = 12
	CodeFixed      uint16 = 13
	CodeBool       uint16 = 14
	CodeString     uint16 = 15
	CodeUint       uint16 = 20
	CodeName       uint16 = 23
	CodeInt64      uint16 = 359
	CodeUint64     uint16 = 668
)

// Kind identifies which decoding rule produced a token's text.
type Kind uint8

const (
	KindLookup   Kind = iota // no payload, text from the name table
	KindInt                  // integer of any width
	KindFixed                // fixed-point with three decimals
	KindBool                 // yes / no
	KindString               // quoted string
	KindUnquoted             // string found where a bool was expected
	KindName                 // bare name string
)

var kindNames = [...]string{"lookup", "int", "fixed", "bool", "string", "unquoted", "name"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Control marks structural tokens.
type Control uint8

const (
	ControlNone Control = iota
	ControlOpen
	ControlClose
)

func controlOf(code uint16) Control {
	switch code {
	case CodeOpenBrace:
		return ControlOpen
	case CodeCloseBrace:
		return ControlClose
	}
	return ControlNone
}

// Token is one decoded unit of the stream.
type Token struct {
	Code    uint16
	Kind    Kind
	Control Control
	Text    string

	// NameID is the name table id of a KindName token's text, when
	// the text is a known name.
	NameID    uint16
	HasNameID bool
}

// Structural reports whether t opens or closes a group.
func (t Token) Structural() bool { return t.Control != ControlNone }

// formatFixed renders v/1000 in its shortest form, keeping at least
// one decimal: 1500 is "1.5", 2000 is "2.0".
func formatFixed(v int32) string {
	s := strconv.FormatFloat(float64(v)/1000, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decodeToken consumes the payload selected by code from c.
func decodeToken(c *cursor, code uint16) (Token, error) {
	t := Token{Code: code, Control: controlOf(code)}

	switch code {
	case CodeInt:
		v, err := c.i32()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindInt, strconv.FormatInt(int64(v), 10)
	case CodeFixed:
		v, err := c.i32()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindFixed, formatFixed(v)
	case CodeBool:
		b, err := c.u8()
		if err != nil {
			return t, err
		}
		switch b {
		case 0:
			t.Kind, t.Text = KindBool, "no"
		case 1:
			t.Kind, t.Text = KindBool, "yes"
		default:
			s, err := c.lenString()
			if err != nil {
				return t, err
			}
			t.Kind, t.Text = KindUnquoted, s
		}
	case CodeString:
		s, err := c.lenString()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindString, `"` + s + `"`
	case CodeUint:
		v, err := c.u32()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindInt, strconv.FormatUint(uint64(v), 10)
	case CodeName:
		s, err := c.lenString()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindName, s
		t.NameID, t.HasNameID = TokenID(s)
	case CodeInt64:
		v, err := c.i64()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindInt, strconv.FormatInt(v, 10)
	case CodeUint64:
		v, err := c.u64()
		if err != nil {
			return t, err
		}
		t.Kind, t.Text = KindInt, strconv.FormatUint(v, 10)
	default:
		t.Kind, t.Text = KindLookup, TokenName(code)
	}
	return t, nil
}
