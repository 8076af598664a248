package testtools

import (
	"time"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/compression"
	"github.com/ureplay/ureplay/internal/crypto/aesecb"
	"github.com/ureplay/ureplay/internal/replayparser"
	"github.com/ureplay/ureplay/internal/versions"
)

type chunkKind int

const (
	eventChunk chunkKind = iota
	checkpointChunk
	dataChunk
	rawChunk
)

type builtChunk struct {
	kind      chunkKind
	rawType   uint32
	id        string
	group     string
	metadata  string
	startTime uint32
	endTime   uint32
	payload   []byte
	padding   int
}

// ReplayBuilder writes synthetic replay containers. Exported fields control the info block and header.
type ReplayBuilder struct {
	FileVersion          versions.ReplayVersion
	NetworkVersion       versions.NetworkVersion
	EngineNetworkVersion versions.EngineNetworkVersion
	Flags                versions.HeaderFlags

	LengthInMs   uint32
	Changelist   uint32
	FriendlyName string
	IsLive       bool
	Timestamp    time.Time

	// Compressor compresses checkpoints and data blocks and marks the replay compressed.
	Compressor compression.Compressor
	// Encrypted marks the replay encrypted; payloads are encrypted only when EncryptionKey is set too.
	Encrypted     bool
	EncryptionKey []byte

	OmitHeader                 bool
	NetworkChecksum            uint32
	GameNetworkProtocolVersion uint32
	GUID                       []byte
	Major, Minor, Patch        uint16
	Branch                     string
	PackageVersionUE4          int32
	PackageVersionUE5          int32
	PackageVersionLicensee     int32
	Levels                     []replayparser.LevelNameAndTime
	GameSpecificData           []string
	MinRecordHz                float32
	MaxRecordHz                float32
	FrameLimitInMs             float32
	CheckpointLimitInMs        float32
	Platform                   string
	BuildConfig                uint8
	BuildTarget                uint8

	chunks []builtChunk
}

// NewReplayBuilder returns a builder for an uncompressed, unencrypted replay at the newest known versions.
func NewReplayBuilder() *ReplayBuilder {
	return &ReplayBuilder{
		FileVersion:          versions.ReplayVersionLatest,
		NetworkVersion:       versions.NetworkVersionLatest,
		EngineNetworkVersion: versions.EngineNetworkVersionLatest,
		LengthInMs:           60000,
		Changelist:           1234,
		FriendlyName:         "synthetic replay",
		Timestamp:            time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC),
		Major:                5,
		Minor:                1,
		Patch:                2,
		Branch:               "++UE5+Release-5.1",
		Levels:               []replayparser.LevelNameAndTime{{Name: "/Game/Maps/Arena", Time: 0}},
		Platform:             "Windows",
	}
}

func (builder *ReplayBuilder) WithEvent(id, group, metadata string, startTime, endTime uint32, payload []byte) *ReplayBuilder {
	builder.chunks = append(builder.chunks, builtChunk{
		kind: eventChunk, id: id, group: group, metadata: metadata,
		startTime: startTime, endTime: endTime, payload: payload,
	})
	return builder
}

func (builder *ReplayBuilder) WithCheckpoint(id string, startTime, endTime uint32, payload []byte) *ReplayBuilder {
	builder.chunks = append(builder.chunks, builtChunk{
		kind: checkpointChunk, id: id, group: "checkpoint", metadata: "",
		startTime: startTime, endTime: endTime, payload: payload,
	})
	return builder
}

// WithDataBlock adds a data chunk whose decoded payload is frames.
func (builder *ReplayBuilder) WithDataBlock(startTime, endTime uint32, frames []byte) *ReplayBuilder {
	builder.chunks = append(builder.chunks, builtChunk{
		kind: dataChunk, startTime: startTime, endTime: endTime, payload: frames,
	})
	return builder
}

// WithRawChunk adds a chunk whose body is written as is.
func (builder *ReplayBuilder) WithRawChunk(chunkType uint32, body []byte) *ReplayBuilder {
	builder.chunks = append(builder.chunks, builtChunk{kind: rawChunk, rawType: chunkType, payload: body})
	return builder
}

// WithPadding declares padding unread bytes at the end of the most recently added chunk.
func (builder *ReplayBuilder) WithPadding(padding int) *ReplayBuilder {
	builder.chunks[len(builder.chunks)-1].padding = padding
	return builder
}

func (builder *ReplayBuilder) Build() ([]byte, error) {
	writer := NewByteWriter()
	builder.writeInfo(writer)
	if !builder.OmitHeader {
		writer.Sized(uint32(replayparser.ChunkTypeHeader), builder.HeaderChunk())
	}
	for _, chunk := range builder.chunks {
		body, chunkType, err := builder.chunkBody(chunk)
		if err != nil {
			return nil, err
		}
		body.Raw(make([]byte, chunk.padding))
		writer.Sized(chunkType, body)
	}
	return writer.Bytes(), nil
}

// MustBuild is Build for fixtures that cannot fail.
func (builder *ReplayBuilder) MustBuild() []byte {
	data, err := builder.Build()
	if err != nil {
		panic(err)
	}
	return data
}

func (builder *ReplayBuilder) writeInfo(writer *ByteWriter) {
	writer.
		Uint32(replayparser.FileMagic).
		Uint32(uint32(builder.FileVersion)).
		Uint32(builder.LengthInMs).
		Uint32(uint32(builder.NetworkVersion)).
		Uint32(builder.Changelist).
		FString(builder.FriendlyName).
		Uint32(boolToUint32(builder.IsLive))

	fields := versions.InfoFieldsAt(builder.FileVersion)
	if fields.Timestamp {
		writer.Int64(archive.TimeToTicks(builder.Timestamp))
	}
	if fields.Compressed {
		writer.Uint32(boolToUint32(builder.Compressor != nil))
	}
	if fields.Encryption {
		writer.Uint32(boolToUint32(builder.Encrypted))
		writer.Int32(int32(len(builder.EncryptionKey)))
		writer.Raw(builder.EncryptionKey)
	}
}

// HeaderChunk returns the body of the header chunk the builder writes.
func (builder *ReplayBuilder) HeaderChunk() *ByteWriter {
	writer := NewByteWriter().
		Uint32(replayparser.NetworkMagic).
		Uint32(uint32(builder.NetworkVersion)).
		Uint32(builder.NetworkChecksum).
		Uint32(uint32(builder.EngineNetworkVersion)).
		Uint32(builder.GameNetworkProtocolVersion)

	fields := versions.HeaderFieldsAt(builder.NetworkVersion)
	if fields.GUID {
		guid := make([]byte, 16)
		copy(guid, builder.GUID)
		writer.Raw(guid)
	}
	if fields.FullEngineVersion {
		writer.Uint16(builder.Major).Uint16(builder.Minor).Uint16(builder.Patch).
			Uint32(builder.Changelist).
			FString(builder.Branch)
	} else {
		writer.Uint32(builder.Changelist)
	}
	if fields.PackageVersions {
		writer.Int32(builder.PackageVersionUE4).Int32(builder.PackageVersionUE5).Int32(builder.PackageVersionLicensee)
	}
	switch fields.Levels {
	case versions.LevelNamesAndTimes:
		writer.Uint32(uint32(len(builder.Levels)))
		for _, level := range builder.Levels {
			writer.FString(level.Name).Uint32(level.Time)
		}
	case versions.LevelNameList:
		writer.Uint32(uint32(len(builder.Levels)))
		for _, level := range builder.Levels {
			writer.FString(level.Name)
		}
	default:
		name := ""
		if len(builder.Levels) > 0 {
			name = builder.Levels[0].Name
		}
		writer.FString(name)
	}
	if fields.Flags {
		writer.Uint32(uint32(builder.Flags))
	}
	writer.Uint32(uint32(len(builder.GameSpecificData)))
	for _, data := range builder.GameSpecificData {
		writer.FString(data)
	}
	if fields.RecordingMetadata {
		writer.Float32(builder.MinRecordHz).Float32(builder.MaxRecordHz).
			Float32(builder.FrameLimitInMs).Float32(builder.CheckpointLimitInMs).
			FString(builder.Platform).
			Uint8(builder.BuildConfig).Uint8(builder.BuildTarget)
	}
	return writer
}

func (builder *ReplayBuilder) chunkBody(chunk builtChunk) (*ByteWriter, uint32, error) {
	switch chunk.kind {
	case eventChunk, checkpointChunk:
		payload := chunk.payload
		chunkType := replayparser.ChunkTypeEvent
		var err error
		if chunk.kind == checkpointChunk {
			chunkType = replayparser.ChunkTypeCheckpoint
			if payload, err = builder.compress(payload); err != nil {
				return nil, 0, err
			}
		}
		if payload, err = builder.encrypt(payload); err != nil {
			return nil, 0, err
		}
		body := NewByteWriter().
			FString(chunk.id).
			FString(chunk.group).
			FString(chunk.metadata).
			Uint32(chunk.startTime).
			Uint32(chunk.endTime).
			Int32(int32(len(payload))).
			Raw(payload)
		return body, uint32(chunkType), nil
	case dataChunk:
		payload, err := builder.compress(chunk.payload)
		if err != nil {
			return nil, 0, err
		}
		if payload, err = builder.encrypt(payload); err != nil {
			return nil, 0, err
		}
		body := NewByteWriter()
		fields := versions.DataChunkFieldsAt(builder.FileVersion)
		if fields.ChunkTimes {
			body.Uint32(chunk.startTime).Uint32(chunk.endTime).Uint32(uint32(len(payload)))
		}
		if fields.DecompressedSize {
			body.Int32(int32(len(chunk.payload)))
		}
		body.Raw(payload)
		return body, uint32(replayparser.ChunkTypeReplayData), nil
	default:
		return NewByteWriter().Raw(chunk.payload), chunk.rawType, nil
	}
}

func (builder *ReplayBuilder) compress(payload []byte) ([]byte, error) {
	if builder.Compressor == nil || !versions.InfoFieldsAt(builder.FileVersion).Compressed {
		return payload, nil
	}
	compressed, err := builder.Compressor.Compress(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compress with %s", builder.Compressor.AlgorithmName())
	}
	return NewByteWriter().
		Int32(int32(len(payload))).
		Int32(int32(len(compressed))).
		Raw(compressed).
		Bytes(), nil
}

func (builder *ReplayBuilder) encrypt(payload []byte) ([]byte, error) {
	if !builder.Encrypted || len(builder.EncryptionKey) == 0 {
		return payload, nil
	}
	return aesecb.Crypter{}.Encrypt(builder.EncryptionKey, payload)
}

// Frame writes a demo frame without export tables, streaming levels or external data.
// Flag dependent frame parts are not written, so the frame suits headers without flags.
func (writer *ByteWriter) Frame(version versions.NetworkVersion, timeSeconds float32, packets ...[]byte) *ByteWriter {
	fields := versions.FrameFieldsAt(version)
	if fields.LevelIndex {
		writer.Uint32(0)
	}
	writer.Float32(timeSeconds)
	if fields.ExportData {
		writer.Packed(0).Packed(0)
	}
	writer.Packed(0)
	for _, packet := range packets {
		writer.Int32(int32(len(packet))).Raw(packet)
	}
	return writer.Int32(0)
}

func boolToUint32(value bool) uint32 {
	if value {
		return 1
	}
	return 0
}
