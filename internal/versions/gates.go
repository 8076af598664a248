package versions

// InfoFieldSet lists the optional fields of the file info block.
type InfoFieldSet struct {
	Timestamp  bool
	Compressed bool
	Encryption bool
}

func InfoFieldsAt(version ReplayVersion) InfoFieldSet {
	return InfoFieldSet{
		Timestamp:  version >= ReplayVersionRecordedTimestamp,
		Compressed: version >= ReplayVersionCompression,
		Encryption: version >= ReplayVersionEncryption,
	}
}

// DataChunkFieldSet lists the optional fields of a replay data chunk descriptor.
// Without ChunkTimes the payload follows the chunk prefix directly and spans the whole chunk.
type DataChunkFieldSet struct {
	ChunkTimes       bool
	DecompressedSize bool
}

func DataChunkFieldsAt(version ReplayVersion) DataChunkFieldSet {
	return DataChunkFieldSet{
		ChunkTimes:       version >= ReplayVersionStreamChunkTimes,
		DecompressedSize: version >= ReplayVersionEncryption,
	}
}

// LevelListLayout describes how the header stores the recorded level names.
type LevelListLayout int

const (
	SingleLevelName LevelListLayout = iota
	LevelNameList
	LevelNamesAndTimes
)

type HeaderFieldSet struct {
	GUID              bool
	FullEngineVersion bool
	PackageVersions   bool
	Levels            LevelListLayout
	Flags             bool
	RecordingMetadata bool
}

func HeaderFieldsAt(version NetworkVersion) HeaderFieldSet {
	fields := HeaderFieldSet{
		GUID:              version >= NetworkVersionHeaderGUID,
		FullEngineVersion: version >= NetworkVersionSaveFullEngineVersion,
		PackageVersions:   version >= NetworkVersionSavePackageVersionUE,
		Flags:             version >= NetworkVersionHeaderFlags,
		RecordingMetadata: version >= NetworkVersionRecordingMetadata,
	}
	switch {
	case version > NetworkVersionMultipleLevels:
		fields.Levels = LevelNamesAndTimes
	case version == NetworkVersionMultipleLevels:
		fields.Levels = LevelNameList
	default:
		fields.Levels = SingleLevelName
	}
	return fields
}

// FrameFieldSet lists the version dependent parts of a demo frame inside a data block.
// Flag dependent parts (streaming fixes, game specific frame data) are decided by HeaderFlags.
type FrameFieldSet struct {
	LevelIndex bool
	ExportData bool
}

func FrameFieldsAt(version NetworkVersion) FrameFieldSet {
	return FrameFieldSet{
		LevelIndex: version >= NetworkVersionMultipleLevels,
		ExportData: version >= NetworkVersionLevelStreamingFixes,
	}
}

// FieldExportLayout is the encoding of a net field export's name.
type FieldExportLayout int

const (
	// FieldExportNameAndType stores the name and the original type as strings.
	FieldExportNameAndType FieldExportLayout = iota
	// FieldExportNameString stores the name as a string.
	FieldExportNameString
	// FieldExportName stores the name as an FName.
	FieldExportName
)

func FieldExportLayoutAt(version EngineNetworkVersion) FieldExportLayout {
	switch {
	case version < EngineNetworkVersionNetExportSerialization:
		return FieldExportNameAndType
	case version < EngineNetworkVersionNetExportSerializeFix:
		return FieldExportNameString
	default:
		return FieldExportName
	}
}

// UsesPackedNameIndex reports whether hardcoded FName indices are packed integers.
func UsesPackedNameIndex(version EngineNetworkVersion) bool {
	return version >= EngineNetworkVersionChannelNames
}

// ReplayVersionThresholds returns every file version that gates a field.
func ReplayVersionThresholds() []ReplayVersion {
	return []ReplayVersion{
		ReplayVersionCompression,
		ReplayVersionRecordedTimestamp,
		ReplayVersionStreamChunkTimes,
		ReplayVersionEncryption,
	}
}

// NetworkVersionThresholds returns every network version that gates a field.
func NetworkVersionThresholds() []NetworkVersion {
	return []NetworkVersion{
		NetworkVersionMultipleLevels,
		NetworkVersionMultipleLevelsTimeChanges,
		NetworkVersionHeaderFlags,
		NetworkVersionLevelStreamingFixes,
		NetworkVersionSaveFullEngineVersion,
		NetworkVersionHeaderGUID,
		NetworkVersionSavePackageVersionUE,
		NetworkVersionRecordingMetadata,
	}
}

// EngineNetworkVersionThresholds returns every engine network version that gates a field.
func EngineNetworkVersionThresholds() []EngineNetworkVersion {
	return []EngineNetworkVersion{
		EngineNetworkVersionChannelNames,
		EngineNetworkVersionNetExportSerialization,
		EngineNetworkVersionNetExportSerializeFix,
	}
}
