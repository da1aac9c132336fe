package backup

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"hoi4save/internal/config"
)

// Codec compresses backups on write. The codec used for reading is
// chosen from the file name, so stores with different settings can
// share a directory.
type Codec string

const (
	CodecNone Codec = config.CompressionNone
	CodecLZ4  Codec = config.CompressionLZ4
	CodecZstd Codec = config.CompressionZstd
)

const (
	suffixLZ4  = ".lz4"
	suffixZstd = ".zst"
)

// Suffix is appended after the backup extension.
func (c Codec) Suffix() string {
	switch c {
	case CodecLZ4:
		return suffixLZ4
	case CodecZstd:
		return suffixZstd
	}
	return ""
}

func codecForName(name string) Codec {
	switch {
	case strings.HasSuffix(name, suffixLZ4):
		return CodecLZ4
	case strings.HasSuffix(name, suffixZstd):
		return CodecZstd
	}
	return CodecNone
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// newWriter wraps w. Closing the result flushes the codec but not w.
func (c Codec) newWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CodecNone, "":
		return nopWriteCloser{w}, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownCompression, string(c))
}

// newReader wraps r. Closing the result releases the codec but not r.
func (c Codec) newReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}
