// Package netstream walks the per-tick frames stored in decoded replay data blocks.
// It decodes the framing only: export tables, external data and packet boundaries.
// Packet payloads go to a PacketConsumer untouched.
package netstream

import (
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/wal-g/tracelog"
)

// MaxPacketSize bounds a sub-packet; sizes at or above it mark the rest of the block as corrupt.
const MaxPacketSize = 2048

// Packet is one raw sub-packet of a frame.
type Packet struct {
	Frame        int
	TimeSeconds  float32
	StreamingFix uint32
	Data         []byte
}

// ExternalData is a record attached to a replicated object outside the packet stream.
type ExternalData struct {
	NetGUID   uint32
	Handle    uint8
	Flags     uint8
	Encrypted bool
	Payload   []byte
}

// Frame is the decoded framing of one recorded tick.
type Frame struct {
	Index           int
	LevelIndex      uint32
	TimeSeconds     float32
	StreamingLevels []string
	ExternalData    []ExternalData
	Packets         int
}

type PacketConsumer interface {
	ReceivedRawPacket(packet Packet) error
}

type FrameListener interface {
	OnFrame(frame Frame)
}

type PacketConsumerFunc func(packet Packet) error

func (consumer PacketConsumerFunc) ReceivedRawPacket(packet Packet) error {
	return consumer(packet)
}

type FrameListenerFunc func(frame Frame)

func (listener FrameListenerFunc) OnFrame(frame Frame) {
	listener(frame)
}

type Walker struct {
	consumer PacketConsumer
	listener FrameListener
	registry *ExportRegistry
	summary  Summary
}

type WalkerOption func(walker *Walker)

func WithPacketConsumer(consumer PacketConsumer) WalkerOption {
	return func(walker *Walker) {
		walker.consumer = consumer
	}
}

func WithFrameListener(listener FrameListener) WalkerOption {
	return func(walker *Walker) {
		walker.listener = listener
	}
}

// WithExportRegistry shares a registry between walkers, e.g. when export tables span several passes.
func WithExportRegistry(registry *ExportRegistry) WalkerOption {
	return func(walker *Walker) {
		walker.registry = registry
	}
}

func NewWalker(options ...WalkerOption) *Walker {
	walker := &Walker{}
	for _, option := range options {
		option(walker)
	}
	if walker.registry == nil {
		walker.registry = NewExportRegistry()
	}
	return walker
}

func (walker *Walker) Registry() *ExportRegistry {
	return walker.registry
}

func (walker *Walker) Summary() Summary {
	summary := walker.summary
	summary.Groups = walker.registry.Groups()
	return summary
}

// WalkBlock decodes frames until the block is exhausted.
// A corrupt packet size stops the block without an error; any other decoding failure is returned.
func (walker *Walker) WalkBlock(ar *archive.Archive) error {
	walker.summary.Blocks++
	for !ar.AtEnd() {
		corrupt, err := walker.readFrame(ar)
		if err != nil {
			return err
		}
		if corrupt {
			walker.summary.CorruptBlocks++
			return nil
		}
	}
	return nil
}

func (walker *Walker) readFrame(ar *archive.Archive) (corrupt bool, err error) {
	fields := versions.FrameFieldsAt(ar.NetworkVersion)
	frame := Frame{Index: walker.summary.Frames}
	walker.summary.Frames++

	if fields.LevelIndex {
		if frame.LevelIndex, err = ar.ReadUint32(); err != nil {
			return false, err
		}
	}
	if frame.TimeSeconds, err = ar.ReadFloat32(); err != nil {
		return false, err
	}
	if fields.ExportData {
		if err = walker.readNetFieldExports(ar); err != nil {
			return false, err
		}
		if err = walker.readNetGUIDExports(ar); err != nil {
			return false, err
		}
	}
	if ar.HasStreamingFixes() {
		if frame.StreamingLevels, err = readStreamingLevels(ar); err != nil {
			return false, err
		}
		// external offset
		if err = ar.Skip(8); err != nil {
			return false, err
		}
	}
	if frame.ExternalData, err = walker.readExternalData(ar); err != nil {
		return false, err
	}
	if ar.HasGameSpecificFrameData() {
		size, err := ar.ReadUint64()
		if err != nil {
			return false, err
		}
		if size > uint64(ar.Remaining()) {
			return false, NewGameSpecificDataTooLongError(size, ar.Remaining())
		}
		if err = ar.Skip(int(size)); err != nil {
			return false, err
		}
	}

	corrupt, err = walker.readPackets(ar, &frame)
	if err != nil {
		return false, err
	}
	if walker.listener != nil {
		walker.listener.OnFrame(frame)
	}
	return corrupt, nil
}

func readStreamingLevels(ar *archive.Archive) ([]string, error) {
	count, err := ar.ReadPackedUint32()
	if err != nil {
		return nil, err
	}
	levels := make([]string, 0)
	for i := uint32(0); i < count; i++ {
		level, err := ar.ReadFString()
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func (walker *Walker) readExternalData(ar *archive.Archive) ([]ExternalData, error) {
	var records []ExternalData
	for {
		numBits, err := ar.ReadPackedUint32()
		if err != nil {
			return nil, err
		}
		if numBits == 0 {
			return records, nil
		}
		var record ExternalData
		if record.NetGUID, err = ar.ReadPackedUint32(); err != nil {
			return nil, err
		}
		numBytes := (uint64(numBits) + 7) >> 3
		if numBytes < 3 {
			return nil, NewMalformedExternalDataError(record.NetGUID, numBits)
		}
		if record.Handle, err = ar.ReadUint8(); err != nil {
			return nil, err
		}
		if record.Flags, err = ar.ReadUint8(); err != nil {
			return nil, err
		}
		if record.Encrypted, err = ar.ReadBool(); err != nil {
			return nil, err
		}
		if numBytes-3 > uint64(ar.Remaining()) {
			return nil, archive.NewUnexpectedEndOfDataError(ar.Position(), int(numBytes-3), ar.Limit())
		}
		if record.Payload, err = ar.ReadBytes(int(numBytes - 3)); err != nil {
			return nil, err
		}
		records = append(records, record)
		walker.summary.ExternalDataRecords++
	}
}

// readPackets reads the sub-packets of a frame up to the zero size terminator.
func (walker *Walker) readPackets(ar *archive.Archive, frame *Frame) (corrupt bool, err error) {
	for {
		var streamingFix uint32
		if ar.HasStreamingFixes() {
			if streamingFix, err = ar.ReadPackedUint32(); err != nil {
				return false, err
			}
		}
		size, err := ar.ReadInt32()
		if err != nil {
			return false, err
		}
		if size == 0 {
			return false, nil
		}
		if size < 0 || size >= MaxPacketSize {
			tracelog.WarningLogger.Printf("corrupt packet size %d at position %d in frame %d, skipping the rest of the block\n",
				size, ar.Position(), frame.Index)
			return true, nil
		}
		err = ar.WithinBound(int(size), func() error {
			data, err := ar.ReadBytes(int(size))
			if err != nil {
				return err
			}
			walker.summary.Packets++
			walker.summary.PacketBytes += int64(size)
			frame.Packets++
			if walker.consumer == nil {
				return nil
			}
			return walker.consumer.ReceivedRawPacket(Packet{
				Frame:        frame.Index,
				TimeSeconds:  frame.TimeSeconds,
				StreamingFix: streamingFix,
				Data:         data,
			})
		})
		if err != nil {
			return false, err
		}
	}
}
