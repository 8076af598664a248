package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoFieldsAt_Thresholds(t *testing.T) {
	assert.Equal(t, InfoFieldSet{}, InfoFieldsAt(ReplayVersionInitial))
	assert.Equal(t, InfoFieldSet{}, InfoFieldsAt(ReplayVersionFixedSizeFriendlyName))
	assert.Equal(t, InfoFieldSet{Compressed: true}, InfoFieldsAt(ReplayVersionCompression))
	assert.Equal(t, InfoFieldSet{Compressed: true, Timestamp: true}, InfoFieldsAt(ReplayVersionRecordedTimestamp))
	assert.Equal(t, InfoFieldSet{Compressed: true, Timestamp: true}, InfoFieldsAt(ReplayVersionFriendlyNameEncoding))
	assert.Equal(t, InfoFieldSet{Compressed: true, Timestamp: true, Encryption: true}, InfoFieldsAt(ReplayVersionEncryption))
	assert.Equal(t, InfoFieldsAt(ReplayVersionLatest), InfoFieldsAt(ReplayVersionPlusOne+10))
}

func TestDataChunkFieldsAt_Thresholds(t *testing.T) {
	assert.Equal(t, DataChunkFieldSet{}, DataChunkFieldsAt(ReplayVersionRecordedTimestamp))
	assert.Equal(t, DataChunkFieldSet{ChunkTimes: true}, DataChunkFieldsAt(ReplayVersionStreamChunkTimes))
	assert.Equal(t, DataChunkFieldSet{ChunkTimes: true, DecompressedSize: true}, DataChunkFieldsAt(ReplayVersionEncryption))
}

func TestHeaderFieldsAt_EveryThresholdTogglesItsField(t *testing.T) {
	fieldOf := map[NetworkVersion]func(HeaderFieldSet) bool{
		NetworkVersionHeaderGUID:            func(f HeaderFieldSet) bool { return f.GUID },
		NetworkVersionSaveFullEngineVersion: func(f HeaderFieldSet) bool { return f.FullEngineVersion },
		NetworkVersionSavePackageVersionUE:  func(f HeaderFieldSet) bool { return f.PackageVersions },
		NetworkVersionHeaderFlags:           func(f HeaderFieldSet) bool { return f.Flags },
		NetworkVersionRecordingMetadata:     func(f HeaderFieldSet) bool { return f.RecordingMetadata },
	}
	for threshold, field := range fieldOf {
		assert.False(t, field(HeaderFieldsAt(threshold-1)), "version %v", threshold-1)
		assert.True(t, field(HeaderFieldsAt(threshold)), "version %v", threshold)
		assert.True(t, field(HeaderFieldsAt(NetworkVersionLatest)), "version %v", NetworkVersionLatest)
	}
}

func TestHeaderFieldsAt_LevelLayout(t *testing.T) {
	assert.Equal(t, SingleLevelName, HeaderFieldsAt(NetworkVersionExtraVersion).Levels)
	assert.Equal(t, LevelNameList, HeaderFieldsAt(NetworkVersionMultipleLevels).Levels)
	assert.Equal(t, LevelNamesAndTimes, HeaderFieldsAt(NetworkVersionMultipleLevelsTimeChanges).Levels)
	assert.Equal(t, LevelNamesAndTimes, HeaderFieldsAt(NetworkVersionLatest).Levels)
}

func TestFrameFieldsAt(t *testing.T) {
	assert.Equal(t, FrameFieldSet{}, FrameFieldsAt(NetworkVersionExtraVersion))
	assert.Equal(t, FrameFieldSet{LevelIndex: true}, FrameFieldsAt(NetworkVersionMultipleLevels))
	assert.Equal(t, FrameFieldSet{LevelIndex: true}, FrameFieldsAt(NetworkVersionHeaderFlags))
	assert.Equal(t, FrameFieldSet{LevelIndex: true, ExportData: true}, FrameFieldsAt(NetworkVersionLevelStreamingFixes))
}

func TestFieldExportLayoutAt(t *testing.T) {
	assert.Equal(t, FieldExportNameAndType, FieldExportLayoutAt(EngineNetworkVersionAcksIncludedInHeader))
	assert.Equal(t, FieldExportNameString, FieldExportLayoutAt(EngineNetworkVersionNetExportSerialization))
	assert.Equal(t, FieldExportName, FieldExportLayoutAt(EngineNetworkVersionNetExportSerializeFix))
	assert.Equal(t, FieldExportName, FieldExportLayoutAt(EngineNetworkVersionPlusOne))
}

func TestUsesPackedNameIndex(t *testing.T) {
	assert.False(t, UsesPackedNameIndex(EngineNetworkVersionNewActorOverrideLevel))
	assert.True(t, UsesPackedNameIndex(EngineNetworkVersionChannelNames))
}

func TestThresholdsAreSortedAndKnown(t *testing.T) {
	replayThresholds := ReplayVersionThresholds()
	for i := 1; i < len(replayThresholds); i++ {
		assert.True(t, replayThresholds[i-1] < replayThresholds[i])
	}
	for _, v := range replayThresholds {
		assert.False(t, v.IsUnknownFuture())
	}
	networkThresholds := NetworkVersionThresholds()
	for i := 1; i < len(networkThresholds); i++ {
		assert.True(t, networkThresholds[i-1] < networkThresholds[i])
	}
	for _, v := range networkThresholds {
		assert.False(t, v.IsUnknownFuture())
		assert.False(t, v.IsTooOld())
	}
	for _, v := range EngineNetworkVersionThresholds() {
		assert.False(t, v.IsUnknownFuture())
	}
}

func TestVersionChecks(t *testing.T) {
	assert.True(t, NetworkVersionSaveEngineVersion.IsTooOld())
	assert.False(t, NetworkVersionExtraVersion.IsTooOld())
	assert.True(t, NetworkVersionPlusOne.IsUnknownFuture())
	assert.False(t, NetworkVersionLatest.IsUnknownFuture())
	assert.True(t, ReplayVersion(7).IsUnknownFuture())
	assert.True(t, EngineNetworkVersionPlusOne.IsUnknownFuture())
	assert.Equal(t, "Encryption", ReplayVersionEncryption.String())
	assert.Equal(t, "Unknown(42)", NetworkVersion(42).String())
}

func TestHeaderFlags(t *testing.T) {
	flags := HeaderFlagClientRecorded | HeaderFlagHasStreamingFixes
	assert.True(t, flags.Has(HeaderFlagHasStreamingFixes))
	assert.False(t, flags.Has(HeaderFlagGameSpecificFrameData))
	assert.Equal(t, "ClientRecorded|HasStreamingFixes", flags.String())
	assert.Equal(t, "None", HeaderFlags(0).String())
	assert.Equal(t, "AsyncRecorded|0x100", (HeaderFlagAsyncRecorded | 1<<8).String())
}
