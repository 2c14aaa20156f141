package object

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Compression selects how object payloads are encoded on disk.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// ParseCompression validates a compression name. The empty string maps to
// CompressionNone.
func ParseCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd:
		return CompressionZstd, nil
	}
	return "", fmt.Errorf("unknown compression %q (want %q or %q)", s, CompressionNone, CompressionZstd)
}

// encode returns the on-disk form of data.
func (c Compression) encode(data []byte) ([]byte, error) {
	if c != CompressionZstd {
		return data, nil
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// reader wraps r so reads yield the decoded payload.
func (c Compression) reader(r io.ReadCloser) (io.ReadCloser, error) {
	if c != CompressionZstd {
		return r, nil
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{dec: dec, src: r}, nil
}

type zstdReadCloser struct {
	dec *zstd.Decoder
	src io.Closer
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.src.Close()
}
