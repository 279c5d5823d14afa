// Package compression transparently decompresses dataset record files.
//
// The compression algorithm is derived from the file suffix, so a store may
// hold "instances.json", "instances.json.zst", "instances.json.gz" or
// "instances.json.lz4" interchangeably.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm of a record file.
type Type uint8

const (
	// None indicates an uncompressed file.
	None Type = iota
	// Gzip indicates a gzip stream (".gz").
	Gzip
	// Zstd indicates a zstandard stream (".zst").
	Zstd
	// LZ4 indicates an lz4 frame (".lz4").
	LZ4
)

// String returns the name of the algorithm.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Suffix returns the file suffix of the algorithm, including the dot.
func (t Type) Suffix() string {
	switch t {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Types lists the supported algorithms in lookup preference order.
func Types() []Type {
	return []Type{None, Zstd, Gzip, LZ4}
}

// Detect derives the algorithm from a file name.
func Detect(name string) Type {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return Zstd
	case strings.HasSuffix(name, ".gz"):
		return Gzip
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	default:
		return None
	}
}

var zstdDecoderPool sync.Pool

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Decompress returns the decompressed form of data.
func Decompress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}
}

// Compress returns data compressed with the given algorithm.
func Compress(t Type, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch t {
	case None:
		return data, nil
	case Zstd:
		enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		w = enc
	case Gzip:
		w = gzip.NewWriter(&buf)
	case LZ4:
		w = lz4.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
