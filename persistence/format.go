package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/scriptvec/scriptvec/internal/conv"
)

// Frame layout, all integers little-endian:
//
//	magic    [4]byte  "SVF1"
//	version  uint16
//	codec    uint8
//	reserved uint8
//	count    uint64   element count
//	plen     uint64   payload byte length after compression
//	payload  [plen]byte
//	crc      uint32   CRC32-IEEE over everything above
const (
	formatVersion = 1
	headerSize    = 4 + 2 + 1 + 1 + 8 + 8
)

var frameMagic = [4]byte{'S', 'V', 'F', '1'}

var (
	// ErrBadMagic indicates the blob is not a snapshot frame.
	ErrBadMagic = errors.New("bad snapshot magic")

	// ErrBadVersion indicates a frame written by an unknown format version.
	ErrBadVersion = errors.New("unsupported snapshot version")

	// ErrChecksumMismatch indicates the frame was corrupted in storage.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrCorrupted indicates a structurally invalid frame.
	ErrCorrupted = errors.New("snapshot corrupted")
)

// WriteFrame writes values as a single snapshot frame. The codec actually
// stored may degrade to CodecNone when compression does not help.
func WriteFrame(w io.Writer, values []float64, codec Codec) error {
	raw := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}

	payload, stored, err := compress(raw, codec)
	if err != nil {
		return err
	}

	count, err := conv.IntToUint64(len(values))
	if err != nil {
		return err
	}
	plen, err := conv.IntToUint64(len(payload))
	if err != nil {
		return err
	}

	cw := NewChecksumWriter(w)
	header := make([]byte, headerSize)
	copy(header[0:4], frameMagic[:])
	binary.LittleEndian.PutUint16(header[4:6], formatVersion)
	header[6] = uint8(stored)
	header[7] = 0
	binary.LittleEndian.PutUint64(header[8:16], count)
	binary.LittleEndian.PutUint64(header[16:24], plen)

	if _, err := cw.Write(header); err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}

	var crc [4]byte
	binary.LittleEndian.PutUint32(crc[:], cw.Sum())
	_, err = w.Write(crc[:])
	return err
}

// ReadFrame reads one snapshot frame and returns the decoded values. The
// checksum is verified before any value is decoded.
func ReadFrame(r io.Reader) ([]float64, error) {
	cr := NewChecksumReader(r)

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(cr, header); err != nil {
		return nil, fmt.Errorf("%w: short header: %w", ErrCorrupted, err)
	}
	if !bytes.Equal(header[0:4], frameMagic[:]) {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(header[4:6]); v != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	codec := Codec(header[6])

	count, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(header[8:16]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if count > math.MaxInt/8 {
		return nil, fmt.Errorf("%w: element count %d too large", ErrCorrupted, count)
	}
	plen, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(header[16:24]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	payload := make([]byte, plen)
	if _, err := io.ReadFull(cr, payload); err != nil {
		return nil, fmt.Errorf("%w: short payload: %w", ErrCorrupted, err)
	}
	want := cr.Sum()

	var crc [4]byte
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, fmt.Errorf("%w: short checksum: %w", ErrCorrupted, err)
	}
	if got := binary.LittleEndian.Uint32(crc[:]); got != want {
		return nil, fmt.Errorf("%w: stored %08x computed %08x", ErrChecksumMismatch, got, want)
	}

	raw, err := decompress(payload, codec, count*8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	if len(raw) != count*8 {
		return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrCorrupted, len(raw), count*8)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}
