package archive_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ureplay/ureplay/internal/archive"
)

func TestPushBound_LimitsReads(t *testing.T) {
	ar := archive.New(make([]byte, 8))
	bound, err := ar.PushBound(2)
	require.NoError(t, err)
	assert.Equal(t, 2, ar.Remaining())

	_, err = ar.ReadUint32()
	assert.IsType(t, archive.UnexpectedEndOfDataError{}, err)

	require.NoError(t, bound.Pop())
	assert.Equal(t, 2, ar.Position())
	assert.Equal(t, 6, ar.Remaining())
}

func TestPushBound_Nested(t *testing.T) {
	ar := archive.New(make([]byte, 16))
	outer, err := ar.PushBound(10)
	require.NoError(t, err)
	require.NoError(t, ar.Skip(1))
	inner, err := ar.PushBound(4)
	require.NoError(t, err)
	assert.Equal(t, 2, ar.Depth())

	assert.IsType(t, archive.UnbalancedBoundError{}, outer.Pop())

	require.NoError(t, inner.Pop())
	assert.Equal(t, 5, ar.Position())
	assert.Equal(t, 5, ar.Remaining())
	require.NoError(t, outer.Pop())
	assert.Equal(t, 10, ar.Position())
	assert.Equal(t, 0, ar.Depth())

	assert.IsType(t, archive.UnbalancedBoundError{}, inner.Pop())
}

func TestPushBound_Invalid(t *testing.T) {
	ar := archive.New(make([]byte, 4))
	_, err := ar.PushBound(5)
	assert.IsType(t, archive.BoundOutOfRangeError{}, err)
	_, err = ar.PushBound(-1)
	assert.IsType(t, archive.InvalidLengthError{}, err)
	assert.Equal(t, 0, ar.Depth())
}

func TestWithinBound_PopsOnError(t *testing.T) {
	ar := archive.New(make([]byte, 8))
	expected := errors.New("decoder failed")
	err := ar.WithinBound(6, func() error {
		_, readErr := ar.ReadUint8()
		require.NoError(t, readErr)
		return expected
	})
	assert.Equal(t, expected, err)
	assert.Equal(t, 6, ar.Position())
	assert.Equal(t, 0, ar.Depth())
	assert.Equal(t, 2, ar.Remaining())
}

func TestWithinBound_SeeksPastUnreadBytes(t *testing.T) {
	ar := archive.New([]byte{1, 2, 3, 4, 5})
	err := ar.WithinBound(3, func() error { return nil })
	require.NoError(t, err)
	value, err := ar.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), value)
}
