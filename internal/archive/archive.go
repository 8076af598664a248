// Package archive implements the little-endian byte cursor used by every replay decoder.
package archive

import (
	"encoding/binary"
	"math"

	"github.com/ureplay/ureplay/internal/versions"
)

// Archive is a seekable, bounds-checked reader over an in-memory buffer.
// Reads never go past the active limit, which is the end of the buffer or the end of the innermost bound.
//
// Version fields describe the context the bytes were written in and are inherited by derived archives.
type Archive struct {
	data   []byte
	pos    int
	limit  int
	bounds []*Bound

	ReplayVersion        versions.ReplayVersion
	NetworkVersion       versions.NetworkVersion
	EngineNetworkVersion versions.EngineNetworkVersion
	HeaderFlags          versions.HeaderFlags
}

func New(data []byte) *Archive {
	return &Archive{data: data, limit: len(data)}
}

// Derive wraps data into a new archive sharing this archive's version context.
func (ar *Archive) Derive(data []byte) *Archive {
	derived := New(data)
	derived.ReplayVersion = ar.ReplayVersion
	derived.NetworkVersion = ar.NetworkVersion
	derived.EngineNetworkVersion = ar.EngineNetworkVersion
	derived.HeaderFlags = ar.HeaderFlags
	return derived
}

func (ar *Archive) Position() int {
	return ar.pos
}

func (ar *Archive) Len() int {
	return len(ar.data)
}

// Limit is the position reads may not cross.
func (ar *Archive) Limit() int {
	return ar.limit
}

func (ar *Archive) Remaining() int {
	if ar.pos >= ar.limit {
		return 0
	}
	return ar.limit - ar.pos
}

func (ar *Archive) AtEnd() bool {
	return ar.pos >= ar.limit
}

// Seek moves to an absolute position; the end of the active limit is a valid target.
func (ar *Archive) Seek(position int) error {
	if position < 0 || position > ar.limit {
		return NewInvalidSeekError(position, ar.limit)
	}
	ar.pos = position
	return nil
}

func (ar *Archive) Skip(count int) error {
	if count < 0 {
		return NewInvalidLengthError("skip", int64(count))
	}
	if count > ar.Remaining() {
		return NewUnexpectedEndOfDataError(ar.pos, count, ar.limit)
	}
	ar.pos += count
	return nil
}

func (ar *Archive) HasStreamingFixes() bool {
	return ar.HeaderFlags.Has(versions.HeaderFlagHasStreamingFixes)
}

func (ar *Archive) HasDeltaCheckpoints() bool {
	return ar.HeaderFlags.Has(versions.HeaderFlagDeltaCheckpoints)
}

func (ar *Archive) HasGameSpecificFrameData() bool {
	return ar.HeaderFlags.Has(versions.HeaderFlagGameSpecificFrameData)
}

// take returns the next count bytes without copying them.
func (ar *Archive) take(count int) ([]byte, error) {
	if count < 0 {
		return nil, NewInvalidLengthError("read", int64(count))
	}
	if count > ar.Remaining() {
		return nil, NewUnexpectedEndOfDataError(ar.pos, count, ar.limit)
	}
	chunk := ar.data[ar.pos : ar.pos+count]
	ar.pos += count
	return chunk, nil
}

// ReadBytes returns a copy of the next count bytes.
func (ar *Archive) ReadBytes(count int) ([]byte, error) {
	chunk, err := ar.take(count)
	if err != nil {
		return nil, err
	}
	result := make([]byte, count)
	copy(result, chunk)
	return result, nil
}

func (ar *Archive) ReadUint8() (uint8, error) {
	chunk, err := ar.take(1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

func (ar *Archive) ReadInt8() (int8, error) {
	value, err := ar.ReadUint8()
	return int8(value), err
}

// ReadBool reads a single byte; any non-zero value is true.
func (ar *Archive) ReadBool() (bool, error) {
	value, err := ar.ReadUint8()
	return value != 0, err
}

func (ar *Archive) ReadUint16() (uint16, error) {
	chunk, err := ar.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(chunk), nil
}

func (ar *Archive) ReadInt16() (int16, error) {
	value, err := ar.ReadUint16()
	return int16(value), err
}

func (ar *Archive) ReadUint32() (uint32, error) {
	chunk, err := ar.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(chunk), nil
}

func (ar *Archive) ReadInt32() (int32, error) {
	value, err := ar.ReadUint32()
	return int32(value), err
}

// ReadUint32AsBool reads a 32-bit integer that is true only when equal to 1.
func (ar *Archive) ReadUint32AsBool() (bool, error) {
	value, err := ar.ReadUint32()
	return value == 1, err
}

func (ar *Archive) ReadUint64() (uint64, error) {
	chunk, err := ar.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(chunk), nil
}

func (ar *Archive) ReadInt64() (int64, error) {
	value, err := ar.ReadUint64()
	return int64(value), err
}

func (ar *Archive) ReadFloat32() (float32, error) {
	value, err := ar.ReadUint32()
	return math.Float32frombits(value), err
}

// ReadPackedUint32 reads a little-endian varint holding 7 value bits per byte.
// The low bit of every byte tells whether another byte follows. The length is not limited;
// the shift wraps modulo 32, so bytes past the fifth fold back into the low bits.
func (ar *Archive) ReadPackedUint32() (uint32, error) {
	var value uint32
	var shift uint
	for {
		next, err := ar.ReadUint8()
		if err != nil {
			return 0, err
		}
		value += uint32(next>>1) << (shift & 31)
		if next&1 == 0 {
			return value, nil
		}
		shift += 7
	}
}

func (ar *Archive) usesPackedNameIndex() bool {
	return versions.UsesPackedNameIndex(ar.EngineNetworkVersion)
}
