package replayparser

import (
	"fmt"
	"time"

	"github.com/blang/semver"
	"github.com/ureplay/ureplay/internal/netstream"
	"github.com/ureplay/ureplay/internal/versions"
)

const (
	FileMagic    uint32 = 0x1CA2E27F
	NetworkMagic uint32 = 0x2CF5A13D
)

type ChunkType uint32

const (
	ChunkTypeHeader     ChunkType = 0
	ChunkTypeReplayData ChunkType = 1
	ChunkTypeCheckpoint ChunkType = 2
	ChunkTypeEvent      ChunkType = 3
	ChunkTypeUnknown    ChunkType = 0xFFFFFFFF
)

func (chunkType ChunkType) String() string {
	switch chunkType {
	case ChunkTypeHeader:
		return "Header"
	case ChunkTypeReplayData:
		return "ReplayData"
	case ChunkTypeCheckpoint:
		return "Checkpoint"
	case ChunkTypeEvent:
		return "Event"
	case ChunkTypeUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("ChunkType(%d)", uint32(chunkType))
}

// ReplayInfo is the file level info block that precedes the chunk table.
type ReplayInfo struct {
	FileVersion    versions.ReplayVersion `json:"file_version"`
	LengthInMs     uint32                 `json:"length_in_ms"`
	NetworkVersion uint32                 `json:"network_version"`
	Changelist     uint32                 `json:"changelist"`
	FriendlyName   string                 `json:"friendly_name"`
	Timestamp      time.Time              `json:"timestamp"`
	IsLive         bool                   `json:"is_live"`
	IsCompressed   bool                   `json:"is_compressed"`
	Encrypted      bool                   `json:"encrypted"`
	EncryptionKey  []byte                 `json:"-"`
}

type LevelNameAndTime struct {
	Name string `json:"name"`
	Time uint32 `json:"time"`
}

// ReplayHeader is the demo header stored in the header chunk.
type ReplayHeader struct {
	NetworkVersion             versions.NetworkVersion       `json:"network_version"`
	NetworkChecksum            uint32                        `json:"network_checksum"`
	EngineNetworkVersion       versions.EngineNetworkVersion `json:"engine_network_version"`
	GameNetworkProtocolVersion uint32                        `json:"game_network_protocol_version"`
	GUID                       string                        `json:"guid,omitempty"`
	Major                      uint16                        `json:"major"`
	Minor                      uint16                        `json:"minor"`
	Patch                      uint16                        `json:"patch"`
	Changelist                 uint32                        `json:"changelist"`
	Branch                     string                        `json:"branch,omitempty"`
	PackageVersionUE4          int32                         `json:"package_version_ue4"`
	PackageVersionUE5          int32                         `json:"package_version_ue5"`
	PackageVersionLicensee     int32                         `json:"package_version_licensee"`
	LevelNamesAndTimes         []LevelNameAndTime            `json:"level_names_and_times"`
	Flags                      versions.HeaderFlags          `json:"flags"`
	GameSpecificData           []string                      `json:"game_specific_data"`
	MinRecordHz                float32                       `json:"min_record_hz"`
	MaxRecordHz                float32                       `json:"max_record_hz"`
	FrameLimitInMs             float32                       `json:"frame_limit_in_ms"`
	CheckpointLimitInMs        float32                       `json:"checkpoint_limit_in_ms"`
	Platform                   string                        `json:"platform,omitempty"`
	BuildConfig                uint8                         `json:"build_config"`
	BuildTarget                uint8                         `json:"build_target"`
}

// EngineVersion is zero for headers older than NetworkVersionSaveFullEngineVersion.
func (header *ReplayHeader) EngineVersion() semver.Version {
	return semver.Version{
		Major: uint64(header.Major),
		Minor: uint64(header.Minor),
		Patch: uint64(header.Patch),
	}
}

// EventKey selects the handler of an event.
type EventKey struct {
	Group    string
	Metadata string
}

func (key EventKey) String() string {
	return key.Group + "/" + key.Metadata
}

// Event describes an event chunk. Offset is the absolute position of its payload.
type Event struct {
	ID        string `json:"id"`
	Group     string `json:"group"`
	Metadata  string `json:"metadata"`
	StartTime uint32 `json:"start_time"`
	EndTime   uint32 `json:"end_time"`
	Length    int32  `json:"length"`
	Offset    int    `json:"offset"`
}

func (event Event) Key() EventKey {
	return EventKey{Group: event.Group, Metadata: event.Metadata}
}

type Checkpoint struct {
	ID        string `json:"id"`
	Group     string `json:"group"`
	Metadata  string `json:"metadata"`
	StartTime uint32 `json:"start_time"`
	EndTime   uint32 `json:"end_time"`
	Length    int32  `json:"length"`
	Offset    int    `json:"offset"`
}

type DataBlock struct {
	StartTime          uint32 `json:"start_time"`
	EndTime            uint32 `json:"end_time"`
	CompressedLength   int32  `json:"compressed_length"`
	DecompressedLength int32  `json:"decompressed_length"`
	Offset             int    `json:"offset"`
}

// Record is the value an event handler produced for an event.
type Record struct {
	Event Event       `json:"event"`
	Value interface{} `json:"value"`
}

type Replay struct {
	Info          ReplayInfo        `json:"info"`
	Header        *ReplayHeader     `json:"header"`
	Events        []Event           `json:"events"`
	Checkpoints   []Checkpoint      `json:"checkpoints"`
	DataBlocks    []DataBlock       `json:"data_blocks"`
	Records       []Record          `json:"records"`
	Network       netstream.Summary `json:"network"`
	ParseDuration time.Duration     `json:"parse_duration"`
}
