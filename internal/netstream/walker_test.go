package netstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/netstream"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/ureplay/ureplay/testtools"
)

func newBlockArchive(data []byte, flags versions.HeaderFlags) *archive.Archive {
	ar := archive.New(data)
	ar.NetworkVersion = versions.NetworkVersionLatest
	ar.EngineNetworkVersion = versions.EngineNetworkVersionLatest
	ar.HeaderFlags = flags
	return ar
}

// writeFramePrefix writes a frame without export tables, streaming levels or external data.
func writeFramePrefix(writer *testtools.ByteWriter, timeSeconds float32) *testtools.ByteWriter {
	return writer.
		Uint32(0).
		Float32(timeSeconds).
		Packed(0).
		Packed(0).
		Packed(0)
}

type packetRecorder struct {
	packets []netstream.Packet
}

func (recorder *packetRecorder) ReceivedRawPacket(packet netstream.Packet) error {
	recorder.packets = append(recorder.packets, packet)
	return nil
}

func TestWalkBlock_Packets(t *testing.T) {
	writer := testtools.NewByteWriter()
	writeFramePrefix(writer, 1.5).
		Int32(3).Raw([]byte{1, 2, 3}).
		Int32(1).Raw([]byte{4}).
		Int32(0)
	writeFramePrefix(writer, 2.5).
		Int32(2).Raw([]byte{5, 6}).
		Int32(0)

	recorder := &packetRecorder{}
	var frames []netstream.Frame
	walker := netstream.NewWalker(
		netstream.WithPacketConsumer(recorder),
		netstream.WithFrameListener(netstream.FrameListenerFunc(func(frame netstream.Frame) {
			frames = append(frames, frame)
		})))

	require.NoError(t, walker.WalkBlock(newBlockArchive(writer.Bytes(), 0)))

	require.Len(t, recorder.packets, 3)
	assert.Equal(t, []byte{1, 2, 3}, recorder.packets[0].Data)
	assert.Equal(t, float32(1.5), recorder.packets[1].TimeSeconds)
	assert.Equal(t, 1, recorder.packets[2].Frame)
	require.Len(t, frames, 2)
	assert.Equal(t, 2, frames[0].Packets)
	assert.Equal(t, float32(2.5), frames[1].TimeSeconds)

	summary := walker.Summary()
	assert.Equal(t, 1, summary.Blocks)
	assert.Equal(t, 2, summary.Frames)
	assert.Equal(t, 3, summary.Packets)
	assert.Equal(t, int64(6), summary.PacketBytes)
	assert.Equal(t, 0, summary.CorruptBlocks)
}

func TestWalkBlock_CorruptPacketSizeStopsBlock(t *testing.T) {
	for _, size := range []int32{-1, 3000, netstream.MaxPacketSize} {
		writer := testtools.NewByteWriter()
		writeFramePrefix(writer, 1).
			Int32(1).Raw([]byte{9}).
			Int32(size).
			Raw(make([]byte, 16))
		writeFramePrefix(writer, 2).
			Int32(1).Raw([]byte{7}).
			Int32(0)

		recorder := &packetRecorder{}
		walker := netstream.NewWalker(netstream.WithPacketConsumer(recorder))
		err := walker.WalkBlock(newBlockArchive(writer.Bytes(), 0))

		require.NoError(t, err, "size %v", size)
		assert.Len(t, recorder.packets, 1, "size %v", size)
		assert.Equal(t, 1, walker.Summary().CorruptBlocks, "size %v", size)
		assert.Equal(t, 1, walker.Summary().Frames, "size %v", size)
	}
}

func TestWalkBlock_CorruptBlockDoesNotAffectNextBlock(t *testing.T) {
	corrupt := testtools.NewByteWriter()
	writeFramePrefix(corrupt, 1).Int32(-1)
	healthy := testtools.NewByteWriter()
	writeFramePrefix(healthy, 2).Int32(2).Raw([]byte{1, 2}).Int32(0)

	recorder := &packetRecorder{}
	walker := netstream.NewWalker(netstream.WithPacketConsumer(recorder))
	require.NoError(t, walker.WalkBlock(newBlockArchive(corrupt.Bytes(), 0)))
	require.NoError(t, walker.WalkBlock(newBlockArchive(healthy.Bytes(), 0)))

	require.Len(t, recorder.packets, 1)
	assert.Equal(t, []byte{1, 2}, recorder.packets[0].Data)
	assert.Equal(t, 2, walker.Summary().Blocks)
	assert.Equal(t, 1, walker.Summary().CorruptBlocks)
}

func TestWalkBlock_ExternalData(t *testing.T) {
	writer := testtools.NewByteWriter().
		Uint32(0).
		Float32(0).
		Packed(0).
		Packed(0).
		Packed(40).Packed(77).Uint8(1).Uint8(2).Uint8(1).Raw([]byte{0xAA, 0xBB}).
		Packed(0).
		Int32(0)

	var frames []netstream.Frame
	walker := netstream.NewWalker(netstream.WithFrameListener(netstream.FrameListenerFunc(func(frame netstream.Frame) {
		frames = append(frames, frame)
	})))
	require.NoError(t, walker.WalkBlock(newBlockArchive(writer.Bytes(), 0)))

	require.Len(t, frames, 1)
	require.Len(t, frames[0].ExternalData, 1)
	assert.Equal(t, netstream.ExternalData{
		NetGUID:   77,
		Handle:    1,
		Flags:     2,
		Encrypted: true,
		Payload:   []byte{0xAA, 0xBB},
	}, frames[0].ExternalData[0])
	assert.Equal(t, 1, walker.Summary().ExternalDataRecords)
}

func TestWalkBlock_MalformedExternalData(t *testing.T) {
	writer := testtools.NewByteWriter().
		Uint32(0).
		Float32(0).
		Packed(0).
		Packed(0).
		Packed(8).Packed(1).Uint8(0).Uint8(0).Uint8(0)

	err := netstream.NewWalker().WalkBlock(newBlockArchive(writer.Bytes(), 0))
	assert.IsType(t, netstream.MalformedExternalDataError{}, err)
}

func TestWalkBlock_StreamingFixes(t *testing.T) {
	writer := testtools.NewByteWriter().
		Uint32(2).
		Float32(3).
		Packed(0).
		Packed(0).
		Packed(2).FString("Level_A").FString("Level_B").
		Uint64(0xDEADBEEF).
		Packed(0).
		Packed(5).Int32(1).Raw([]byte{8}).
		Packed(0).Int32(0)

	recorder := &packetRecorder{}
	var frames []netstream.Frame
	walker := netstream.NewWalker(
		netstream.WithPacketConsumer(recorder),
		netstream.WithFrameListener(netstream.FrameListenerFunc(func(frame netstream.Frame) {
			frames = append(frames, frame)
		})))
	require.NoError(t, walker.WalkBlock(newBlockArchive(writer.Bytes(), versions.HeaderFlagHasStreamingFixes)))

	require.Len(t, frames, 1)
	assert.Equal(t, uint32(2), frames[0].LevelIndex)
	assert.Equal(t, []string{"Level_A", "Level_B"}, frames[0].StreamingLevels)
	require.Len(t, recorder.packets, 1)
	assert.Equal(t, uint32(5), recorder.packets[0].StreamingFix)
}

func TestWalkBlock_GameSpecificFrameData(t *testing.T) {
	writer := testtools.NewByteWriter()
	writeFramePrefix(writer, 1).
		Uint64(4).Raw([]byte{1, 1, 1, 1}).
		Int32(1).Raw([]byte{2}).
		Int32(0)

	recorder := &packetRecorder{}
	walker := netstream.NewWalker(netstream.WithPacketConsumer(recorder))
	require.NoError(t, walker.WalkBlock(newBlockArchive(writer.Bytes(), versions.HeaderFlagGameSpecificFrameData)))
	require.Len(t, recorder.packets, 1)
	assert.Equal(t, []byte{2}, recorder.packets[0].Data)
}

func TestWalkBlock_GameSpecificFrameDataTooLong(t *testing.T) {
	writer := testtools.NewByteWriter()
	writeFramePrefix(writer, 1).Uint64(1 << 40)

	err := netstream.NewWalker().WalkBlock(newBlockArchive(writer.Bytes(), versions.HeaderFlagGameSpecificFrameData))
	assert.IsType(t, netstream.GameSpecificDataTooLongError{}, err)
}

func TestWalkBlock_OldNetworkVersionHasNoLevelIndexOrExports(t *testing.T) {
	writer := testtools.NewByteWriter().
		Float32(4).
		Packed(0).
		Int32(1).Raw([]byte{3}).
		Int32(0)

	ar := newBlockArchive(writer.Bytes(), 0)
	ar.NetworkVersion = versions.NetworkVersionExtraVersion
	recorder := &packetRecorder{}
	walker := netstream.NewWalker(netstream.WithPacketConsumer(recorder))
	require.NoError(t, walker.WalkBlock(ar))
	require.Len(t, recorder.packets, 1)
	assert.Equal(t, float32(4), recorder.packets[0].TimeSeconds)
}

func TestWalkBlock_TruncatedFrame(t *testing.T) {
	writer := testtools.NewByteWriter()
	writeFramePrefix(writer, 1).Int32(10).Raw([]byte{1, 2})

	err := netstream.NewWalker().WalkBlock(newBlockArchive(writer.Bytes(), 0))
	assert.IsType(t, archive.BoundOutOfRangeError{}, err)
}
