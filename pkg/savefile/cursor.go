package savefile

import (
	"encoding/binary"
	"unicode/utf8"
)

// cursor is a read position over an immutable buffer. A failed read
// leaves the position unchanged.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) readN(n int) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, ErrTruncated
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err
}

// lenString reads a u16 length followed by that many bytes of UTF-8.
func (c *cursor) lenString() (string, error) {
	start := c.pos
	n, err := c.u16()
	if err != nil {
		return "", err
	}
	b, err := c.readN(int(n))
	if err != nil {
		c.pos = start
		return "", err
	}
	if !utf8.Valid(b) {
		c.pos = start
		return "", ErrInvalidText
	}
	return string(b), nil
}
