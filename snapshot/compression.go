package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType selects the payload compression algorithm.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 is fast with a modest ratio.
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD trades speed for a better ratio.
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// ParseCompression maps a name to its CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("unknown compression %q", name)
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

// Payload frame: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize 0 means the data is stored as-is, which also covers payloads
// the compressor could not shrink.
const frameHeaderSize = 8

var errTruncatedFrame = errors.New("snapshot: truncated payload frame")

func compress(data []byte, typ CompressionType) ([]byte, error) {
	var compressed []byte
	switch typ {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		out := make([]byte, frameHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[frameHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, frameHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[frameHeaderSize:], compressed)
	return out, nil
}

func decompress(data []byte, typ CompressionType) ([]byte, error) {
	if len(data) < frameHeaderSize {
		return nil, errTruncatedFrame
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint32(len(data)) < frameHeaderSize+uncompressedSize {
			return nil, errTruncatedFrame
		}
		return data[frameHeaderSize : frameHeaderSize+uncompressedSize], nil
	}

	if uint32(len(data)) < frameHeaderSize+compressedSize {
		return nil, errTruncatedFrame
	}
	payload := data[frameHeaderSize : frameHeaderSize+compressedSize]

	switch typ {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("snapshot: decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("snapshot: decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("snapshot: compressed frame with compression %q", typ)
	}
}
