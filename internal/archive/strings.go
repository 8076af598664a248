package archive

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	ticksKindMask      = 0x3FFFFFFFFFFFFFFF
	ticksPerSecond     = 10000000
	unixEpochTicks     = 621355968000000000
	maxFStringByteSize = 1 << 26
)

var (
	utf16Decoding  = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	latin1Decoding = charmap.ISO8859_1
)

// ReadFString reads a length-prefixed string.
// A negative length counts UTF-16 code units, a positive one counts single-byte characters.
// Trailing spaces and NULs are trimmed.
func (ar *Archive) ReadFString() (string, error) {
	size, isWide, err := ar.readFStringSize()
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	raw, err := ar.take(size)
	if err != nil {
		return "", err
	}
	var decoded []byte
	if isWide {
		decoded, err = utf16Decoding.NewDecoder().Bytes(raw)
	} else {
		decoded, err = latin1Decoding.NewDecoder().Bytes(raw)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to decode string")
	}
	return strings.TrimRight(string(decoded), " \x00"), nil
}

func (ar *Archive) SkipFString() error {
	size, _, err := ar.readFStringSize()
	if err != nil {
		return err
	}
	return ar.Skip(size)
}

func (ar *Archive) readFStringSize() (size int, isWide bool, err error) {
	length, err := ar.ReadInt32()
	if err != nil {
		return 0, false, err
	}
	size = int(length)
	if length < 0 {
		size = -2 * int(length)
		isWide = true
	}
	if size > maxFStringByteSize {
		return 0, false, NewInvalidLengthError("string", int64(length))
	}
	return size, isWide, nil
}

// ReadHexString renders the next count bytes as uppercase hex.
func (ar *Archive) ReadHexString(count int) (string, error) {
	raw, err := ar.take(count)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

func (ar *Archive) ReadGUID() (string, error) {
	return ar.ReadHexString(16)
}

// ReadFName reads a name that is either an index into the engine's hardcoded name table or an inline string.
func (ar *Archive) ReadFName() (string, error) {
	isHardcoded, err := ar.ReadUint8()
	if err != nil {
		return "", err
	}
	if isHardcoded != 0 {
		var index uint32
		if ar.usesPackedNameIndex() {
			index, err = ar.ReadPackedUint32()
		} else {
			index, err = ar.ReadUint32()
		}
		if err != nil {
			return "", err
		}
		return LookupHardcodedName(index)
	}
	name, err := ar.ReadFString()
	if err != nil {
		return "", err
	}
	// name number
	if err = ar.Skip(4); err != nil {
		return "", err
	}
	return name, nil
}

// ReadDate reads .NET ticks and returns the moment in UTC. The two high bits hold the time kind and are ignored.
func (ar *Archive) ReadDate() (time.Time, error) {
	raw, err := ar.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return TicksToTime(raw), nil
}

func TicksToTime(ticks int64) time.Time {
	unixTicks := ticks&ticksKindMask - unixEpochTicks
	seconds := unixTicks / ticksPerSecond
	nanos := (unixTicks % ticksPerSecond) * 100
	return time.Unix(seconds, nanos).UTC()
}

// TimeToTicks is the inverse of TicksToTime for UTC moments.
func TimeToTicks(moment time.Time) int64 {
	return moment.Unix()*ticksPerSecond + int64(moment.Nanosecond())/100 + unixEpochTicks
}
