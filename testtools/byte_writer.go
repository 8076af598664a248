package testtools

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// ByteWriter produces little-endian data in the layout the replay decoders read.
type ByteWriter struct {
	bytes.Buffer
}

func NewByteWriter() *ByteWriter {
	return &ByteWriter{}
}

func (writer *ByteWriter) Uint8(value uint8) *ByteWriter {
	writer.WriteByte(value)
	return writer
}

func (writer *ByteWriter) Bool(value bool) *ByteWriter {
	if value {
		return writer.Uint8(1)
	}
	return writer.Uint8(0)
}

func (writer *ByteWriter) Uint16(value uint16) *ByteWriter {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	writer.Write(buf[:])
	return writer
}

func (writer *ByteWriter) Uint32(value uint32) *ByteWriter {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	writer.Write(buf[:])
	return writer
}

func (writer *ByteWriter) Int32(value int32) *ByteWriter {
	return writer.Uint32(uint32(value))
}

func (writer *ByteWriter) Uint64(value uint64) *ByteWriter {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	writer.Write(buf[:])
	return writer
}

func (writer *ByteWriter) Int64(value int64) *ByteWriter {
	return writer.Uint64(uint64(value))
}

func (writer *ByteWriter) Float32(value float32) *ByteWriter {
	return writer.Uint32(math.Float32bits(value))
}

func (writer *ByteWriter) Raw(data []byte) *ByteWriter {
	writer.Write(data)
	return writer
}

// Packed writes value as 7-bit groups with the continuation flag in the low bit.
func (writer *ByteWriter) Packed(value uint32) *ByteWriter {
	for {
		group := byte(value&0x7F) << 1
		value >>= 7
		if value == 0 {
			return writer.Uint8(group)
		}
		writer.Uint8(group | 1)
	}
}

// FString writes a NUL terminated single-byte string, or the empty string as a bare zero length.
func (writer *ByteWriter) FString(value string) *ByteWriter {
	if value == "" {
		return writer.Int32(0)
	}
	writer.Int32(int32(len(value) + 1))
	writer.WriteString(value)
	return writer.Uint8(0)
}

// WideFString writes a NUL terminated UTF-16 string with a negative length.
func (writer *ByteWriter) WideFString(value string) *ByteWriter {
	units := append(utf16.Encode([]rune(value)), 0)
	writer.Int32(-int32(len(units)))
	for _, unit := range units {
		writer.Uint16(unit)
	}
	return writer
}

// Sized writes a uint32 type, an int32 size and the payload produced by body.
func (writer *ByteWriter) Sized(chunkType uint32, body *ByteWriter) *ByteWriter {
	writer.Uint32(chunkType)
	writer.Int32(int32(body.Len()))
	writer.Write(body.Bytes())
	return writer
}
