// Package replayparser decodes Unreal Engine replay containers: the info block, the chunk table,
// and the events, checkpoints and data blocks the chunks point at.
package replayparser

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/tevino/abool"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/compression"
	"github.com/ureplay/ureplay/internal/crypto"
	"github.com/ureplay/ureplay/internal/crypto/aesecb"
	"github.com/ureplay/ureplay/internal/netstream"
	"github.com/ureplay/ureplay/internal/statistics"
	"github.com/ureplay/ureplay/utility"
)

//go:generate mockgen -destination=../../testtools/mock_event_handler.go -package=testtools github.com/ureplay/ureplay/internal/replayparser EventHandler,CheckpointHandler

// EventHandler decodes the decrypted payload of one event. ar is limited to the payload.
type EventHandler interface {
	HandleEvent(ar *archive.Archive, event Event) (interface{}, error)
}

type EventHandlerFunc func(ar *archive.Archive, event Event) (interface{}, error)

func (handler EventHandlerFunc) HandleEvent(ar *archive.Archive, event Event) (interface{}, error) {
	return handler(ar, event)
}

// CheckpointHandler receives the decrypted and decompressed payload of a checkpoint.
type CheckpointHandler interface {
	HandleCheckpoint(ar *archive.Archive, checkpoint Checkpoint) error
}

type CheckpointHandlerFunc func(ar *archive.Archive, checkpoint Checkpoint) error

func (handler CheckpointHandlerFunc) HandleCheckpoint(ar *archive.Archive, checkpoint Checkpoint) error {
	return handler(ar, checkpoint)
}

// Reader parses replays. A Reader parses one replay at a time and may be reused afterwards.
type Reader struct {
	eventHandlers     map[EventKey]EventHandler
	checkpointHandler CheckpointHandler
	decompressor      compression.Decompressor
	decrypter         crypto.Decrypter
	walkerOptions     []netstream.WalkerOption
	skipDataBlocks    bool

	reading *abool.AtomicBool
}

type Option func(reader *Reader)

// WithEventHandler registers handler for events tagged with group and metadata.
// A later registration for the same tags replaces the earlier one.
func WithEventHandler(group, metadata string, handler EventHandler) Option {
	return func(reader *Reader) {
		reader.eventHandlers[EventKey{Group: group, Metadata: metadata}] = handler
	}
}

func WithCheckpointHandler(handler CheckpointHandler) Option {
	return func(reader *Reader) {
		reader.checkpointHandler = handler
	}
}

func WithDecompressor(decompressor compression.Decompressor) Option {
	return func(reader *Reader) {
		reader.decompressor = decompressor
	}
}

func WithDecrypter(decrypter crypto.Decrypter) Option {
	return func(reader *Reader) {
		reader.decrypter = decrypter
	}
}

func WithPacketConsumer(consumer netstream.PacketConsumer) Option {
	return func(reader *Reader) {
		reader.walkerOptions = append(reader.walkerOptions, netstream.WithPacketConsumer(consumer))
	}
}

func WithFrameListener(listener netstream.FrameListener) Option {
	return func(reader *Reader) {
		reader.walkerOptions = append(reader.walkerOptions, netstream.WithFrameListener(listener))
	}
}

// WithoutDataBlocks indexes data blocks without decoding them.
func WithoutDataBlocks() Option {
	return func(reader *Reader) {
		reader.skipDataBlocks = true
	}
}

func NewReader(options ...Option) *Reader {
	reader := &Reader{
		eventHandlers: make(map[EventKey]EventHandler),
		decrypter:     aesecb.Crypter{},
		reading:       abool.New(),
	}
	for _, option := range options {
		option(reader)
	}
	return reader
}

func (reader *Reader) Parse(data []byte) (*Replay, error) {
	if !reader.reading.SetToIf(false, true) {
		return nil, NewConcurrentParseNotSupportedError()
	}
	defer reader.reading.UnSet()

	start := time.Now()
	replay, err := newParseSession(reader).parse(archive.New(data))
	duration := time.Since(start)
	statistics.WriteParseResult(duration, err)
	if err != nil {
		return nil, err
	}
	replay.ParseDuration = duration
	return replay, nil
}

func (reader *Reader) ParseFile(path string) (*Replay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open replay file %s", path)
	}
	defer utility.LoggedClose(file, "failed to close replay file")

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read replay file %s", path)
	}
	replay, err := reader.Parse(data)
	return replay, errors.Wrapf(err, "failed to parse replay file %s", path)
}

func (reader *Reader) ParseReader(source io.Reader) (*Replay, error) {
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read replay")
	}
	return reader.Parse(data)
}

// parseSession holds the state of one Parse call.
type parseSession struct {
	reader *Reader
	replay *Replay
	walker *netstream.Walker
}

func newParseSession(reader *Reader) *parseSession {
	return &parseSession{
		reader: reader,
		replay: &Replay{},
		walker: netstream.NewWalker(reader.walkerOptions...),
	}
}

func (session *parseSession) parse(ar *archive.Archive) (*Replay, error) {
	info, err := readInfo(ar)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read replay info")
	}
	session.replay.Info = info

	if err = session.readChunks(ar); err != nil {
		return nil, err
	}

	session.resolveEvents(ar)
	session.resolveCheckpoints(ar)
	session.resolveDataBlocks(ar)
	session.replay.Network = session.walker.Summary()
	return session.replay, nil
}
