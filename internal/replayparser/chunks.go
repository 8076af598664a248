package replayparser

import (
	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/statistics"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/ureplay/ureplay/utility"
	"github.com/wal-g/tracelog"
)

// readChunks indexes every chunk until the end of the file.
// The header is decoded immediately; other chunks are recorded with the offsets of their payloads.
func (session *parseSession) readChunks(ar *archive.Archive) error {
	for !ar.AtEnd() {
		if err := session.readChunk(ar); err != nil {
			return err
		}
	}
	if session.replay.Header == nil && len(session.replay.DataBlocks) > 0 {
		tracelog.WarningLogger.Printf("Replay has no header chunk, skipping %d data blocks\n",
			len(session.replay.DataBlocks))
		statistics.UreplayMetrics.SkippedChunksTotal.WithLabelValues("no_header").Add(float64(len(session.replay.DataBlocks)))
	}
	return nil
}

// readChunk decodes one chunk body within its declared size and leaves the cursor at the declared end.
// Only a bad header is fatal. A chunk running past the end of the file is decoded as far as it goes
// and ends the indexing.
func (session *parseSession) readChunk(ar *archive.Archive) error {
	offset := ar.Position()
	rawType, err := ar.ReadUint32()
	if err != nil {
		return session.stopIndexing(ar, offset, errors.Wrap(err, "failed to read chunk type"))
	}
	chunkType := ChunkType(rawType)
	size, err := ar.ReadInt32()
	if err != nil {
		return session.stopIndexing(ar, offset, errors.Wrapf(err, "failed to read size of %v chunk", chunkType))
	}
	start := ar.Position()
	if size < 0 {
		return session.stopIndexing(ar, offset, NewInvalidChunkSizeError(chunkType, start, size, ar.Remaining()))
	}
	available := utility.Min(int(size), ar.Remaining())

	bound, err := ar.PushBound(available)
	if err != nil {
		return err
	}
	decodeErr := session.readChunkBody(ar, chunkType, start, int(size))
	consumed := ar.Position() - start
	if err := bound.Pop(); err != nil {
		return err
	}

	switch {
	case decodeErr != nil && isFatalChunkError(decodeErr):
		return errors.Wrapf(decodeErr, "failed to read %v chunk at offset %d", chunkType, start)
	case decodeErr != nil:
		tracelog.WarningLogger.Printf("ChunkSizeMismatch: failed to decode %v chunk at offset %d: %v\n",
			chunkType, start, decodeErr)
		statistics.UreplayMetrics.ChunkSizeMismatchesTotal.WithLabelValues(chunkType.String()).Inc()
	case consumed != available:
		tracelog.WarningLogger.Printf("ChunkSizeMismatch: %v chunk at offset %d declares %d bytes, %d were read\n",
			chunkType, start, size, consumed)
		statistics.UreplayMetrics.ChunkSizeMismatchesTotal.WithLabelValues(chunkType.String()).Inc()
	}
	if available < int(size) {
		return session.stopIndexing(ar, offset, NewInvalidChunkSizeError(chunkType, start, size, available))
	}
	return nil
}

func (session *parseSession) readChunkBody(ar *archive.Archive, chunkType ChunkType, start int, size int) error {
	switch chunkType {
	case ChunkTypeHeader:
		if session.replay.Header != nil {
			tracelog.InfoLogger.Printf("Ignoring a second header chunk at offset %d\n", start)
			statistics.UreplayMetrics.SkippedChunksTotal.WithLabelValues("duplicate_header").Inc()
			return ar.Skip(ar.Remaining())
		}
		header, err := readHeader(ar)
		if err != nil {
			return err
		}
		session.replay.Header = header
	case ChunkTypeEvent:
		event, err := readEventDescriptor(ar)
		if err != nil {
			return err
		}
		session.replay.Events = append(session.replay.Events, event)
		return ar.Skip(int(event.Length))
	case ChunkTypeCheckpoint:
		event, err := readEventDescriptor(ar)
		if err != nil {
			return err
		}
		session.replay.Checkpoints = append(session.replay.Checkpoints, Checkpoint(event))
		return ar.Skip(int(event.Length))
	case ChunkTypeReplayData:
		block, err := readDataBlockDescriptor(ar, size)
		if err != nil {
			return err
		}
		session.replay.DataBlocks = append(session.replay.DataBlocks, block)
	default:
		tracelog.DebugLogger.Printf("Skipping %v chunk of %d bytes at offset %d\n", chunkType, size, start)
		statistics.UreplayMetrics.SkippedChunksTotal.WithLabelValues("unknown_type").Inc()
		return ar.Skip(ar.Remaining())
	}
	return nil
}

// stopIndexing gives up on the rest of the file after a chunk whose extent is unknown.
func (session *parseSession) stopIndexing(ar *archive.Archive, offset int, err error) error {
	tracelog.WarningLogger.Printf("Stopping at truncated chunk at offset %d, %d bytes left unread: %v\n",
		offset, ar.Limit()-offset, err)
	statistics.UreplayMetrics.SkippedChunksTotal.WithLabelValues("truncated").Inc()
	return ar.Seek(ar.Limit())
}

func isFatalChunkError(err error) bool {
	switch errors.Cause(err).(type) {
	case InvalidContainerError, UnsupportedNetworkVersionError:
		return true
	}
	return false
}

// readEventDescriptor reads the descriptor shared by event and checkpoint chunks.
// The payload may run past the chunk; that surfaces once the event is resolved.
func readEventDescriptor(ar *archive.Archive) (event Event, err error) {
	if event.ID, err = ar.ReadFString(); err != nil {
		return event, err
	}
	if event.Group, err = ar.ReadFString(); err != nil {
		return event, err
	}
	if event.Metadata, err = ar.ReadFString(); err != nil {
		return event, err
	}
	if event.StartTime, err = ar.ReadUint32(); err != nil {
		return event, err
	}
	if event.EndTime, err = ar.ReadUint32(); err != nil {
		return event, err
	}
	if event.Length, err = ar.ReadInt32(); err != nil {
		return event, err
	}
	if event.Length < 0 {
		return event, archive.NewInvalidLengthError("event payload", int64(event.Length))
	}
	event.Offset = ar.Position()
	return event, nil
}

func readDataBlockDescriptor(ar *archive.Archive, chunkSize int) (block DataBlock, err error) {
	fields := versions.DataChunkFieldsAt(ar.ReplayVersion)
	if !fields.ChunkTimes {
		block.CompressedLength = int32(chunkSize)
		block.DecompressedLength = int32(chunkSize)
		block.Offset = ar.Position()
		return block, ar.Skip(chunkSize)
	}

	if block.StartTime, err = ar.ReadUint32(); err != nil {
		return block, err
	}
	if block.EndTime, err = ar.ReadUint32(); err != nil {
		return block, err
	}
	length, err := ar.ReadUint32()
	if err != nil {
		return block, err
	}
	if int64(length) > int64(ar.Remaining()) {
		return block, archive.NewUnexpectedEndOfDataError(ar.Position(), int(length), ar.Limit())
	}
	block.CompressedLength = int32(length)
	block.DecompressedLength = block.CompressedLength
	if fields.DecompressedSize {
		if block.DecompressedLength, err = ar.ReadInt32(); err != nil {
			return block, err
		}
	}
	block.Offset = ar.Position()
	return block, ar.Skip(int(block.CompressedLength))
}
