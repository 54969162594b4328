package persistence

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression applied to a snapshot payload.
type Codec uint8

const (
	// CodecNone stores the payload uncompressed.
	CodecNone Codec = 0
	// CodecLZ4 uses LZ4 block compression (fast, light ratio).
	CodecLZ4 Codec = 1
	// CodecZstd uses zstd compression (better ratio, still fast).
	CodecZstd Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress applies c to data. It returns the payload and the codec actually
// stored: when compression does not shrink the data (or LZ4 declares it
// incompressible), the payload is kept raw under CodecNone.
func compress(data []byte, c Codec) ([]byte, Codec, error) {
	if c == CodecNone || len(data) == 0 {
		return data, CodecNone, nil
	}

	switch c {
	case CodecLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		var compressor lz4.Compressor
		n, err := compressor.CompressBlock(data, dst)
		if err != nil {
			return nil, 0, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 || n >= len(data) {
			return data, CodecNone, nil
		}
		return dst[:n], CodecLZ4, nil

	case CodecZstd:
		enc := getZstdEncoder()
		out := enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
		if len(out) >= len(data) {
			return data, CodecNone, nil
		}
		return out, CodecZstd, nil

	default:
		return nil, 0, fmt.Errorf("unknown codec: %s", c)
	}
}

// decompress reverses compress. uncompressedSize is known from the frame
// header (element count times 8).
func decompress(payload []byte, c Codec, uncompressedSize int) ([]byte, error) {
	switch c {
	case CodecNone:
		return payload, nil

	case CodecLZ4:
		dst := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return dst[:n], nil

	case CodecZstd:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown codec: %s", c)
	}
}
