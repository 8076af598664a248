package versions

import "fmt"

// ReplayVersion is the version of the local file container (the info block and chunk table).
type ReplayVersion uint32

const (
	ReplayVersionInitial               ReplayVersion = 0
	ReplayVersionFixedSizeFriendlyName ReplayVersion = 1
	ReplayVersionCompression           ReplayVersion = 2
	ReplayVersionRecordedTimestamp     ReplayVersion = 3
	ReplayVersionStreamChunkTimes      ReplayVersion = 4
	ReplayVersionFriendlyNameEncoding  ReplayVersion = 5
	ReplayVersionEncryption            ReplayVersion = 6

	// new versions go above this line
	ReplayVersionPlusOne ReplayVersion = 7
	ReplayVersionLatest                = ReplayVersionPlusOne - 1
)

var replayVersionNames = map[ReplayVersion]string{
	ReplayVersionInitial:               "Initial",
	ReplayVersionFixedSizeFriendlyName: "FixedSizeFriendlyName",
	ReplayVersionCompression:           "Compression",
	ReplayVersionRecordedTimestamp:     "RecordedTimestamp",
	ReplayVersionStreamChunkTimes:      "StreamChunkTimes",
	ReplayVersionFriendlyNameEncoding:  "FriendlyNameEncoding",
	ReplayVersionEncryption:            "Encryption",
}

func (v ReplayVersion) String() string {
	return versionName(replayVersionNames, v)
}

func (v ReplayVersion) IsUnknownFuture() bool {
	return v >= ReplayVersionPlusOne
}

// NetworkVersion is the version of the demo header and of the frame layout inside data blocks.
type NetworkVersion uint32

const (
	NetworkVersionReplayInitial             NetworkVersion = 1
	NetworkVersionSaveAbsTimeMs             NetworkVersion = 2
	NetworkVersionIncreaseBuffer            NetworkVersion = 3
	NetworkVersionSaveEngineVersion         NetworkVersion = 4
	NetworkVersionExtraVersion              NetworkVersion = 5
	NetworkVersionMultipleLevels            NetworkVersion = 6
	NetworkVersionMultipleLevelsTimeChanges NetworkVersion = 7
	NetworkVersionDeletedStartupActors      NetworkVersion = 8
	NetworkVersionHeaderFlags               NetworkVersion = 9
	NetworkVersionLevelStreamingFixes       NetworkVersion = 10
	NetworkVersionSaveFullEngineVersion     NetworkVersion = 11
	NetworkVersionHeaderGUID                NetworkVersion = 12
	NetworkVersionCharacterMovement         NetworkVersion = 13
	NetworkVersionCharacterMovementNoInterp NetworkVersion = 14
	NetworkVersionGUIDNameTable             NetworkVersion = 15
	NetworkVersionGUIDCacheChecksums        NetworkVersion = 16
	NetworkVersionSavePackageVersionUE      NetworkVersion = 17
	NetworkVersionRecordingMetadata         NetworkVersion = 18

	// new versions go above this line
	NetworkVersionPlusOne NetworkVersion = 19
	NetworkVersionLatest                 = NetworkVersionPlusOne - 1

	// MinNetworkVersion is the oldest header layout that can still be decoded.
	MinNetworkVersion = NetworkVersionExtraVersion
)

var networkVersionNames = map[NetworkVersion]string{
	NetworkVersionReplayInitial:             "ReplayInitial",
	NetworkVersionSaveAbsTimeMs:             "SaveAbsTimeMs",
	NetworkVersionIncreaseBuffer:            "IncreaseBuffer",
	NetworkVersionSaveEngineVersion:         "SaveEngineVersion",
	NetworkVersionExtraVersion:              "ExtraVersion",
	NetworkVersionMultipleLevels:            "MultipleLevels",
	NetworkVersionMultipleLevelsTimeChanges: "MultipleLevelsTimeChanges",
	NetworkVersionDeletedStartupActors:      "DeletedStartupActors",
	NetworkVersionHeaderFlags:               "HeaderFlags",
	NetworkVersionLevelStreamingFixes:       "LevelStreamingFixes",
	NetworkVersionSaveFullEngineVersion:     "SaveFullEngineVersion",
	NetworkVersionHeaderGUID:                "HeaderGUID",
	NetworkVersionCharacterMovement:         "CharacterMovement",
	NetworkVersionCharacterMovementNoInterp: "CharacterMovementNoInterp",
	NetworkVersionGUIDNameTable:             "GUIDNameTable",
	NetworkVersionGUIDCacheChecksums:        "GUIDCacheChecksums",
	NetworkVersionSavePackageVersionUE:      "SavePackageVersionUE",
	NetworkVersionRecordingMetadata:         "RecordingMetadata",
}

func (v NetworkVersion) String() string {
	return versionName(networkVersionNames, v)
}

func (v NetworkVersion) IsUnknownFuture() bool {
	return v >= NetworkVersionPlusOne
}

func (v NetworkVersion) IsTooOld() bool {
	return v < MinNetworkVersion
}

// EngineNetworkVersion tracks serialization changes of the engine's replication layer.
type EngineNetworkVersion uint32

const (
	EngineNetworkVersionInitial                         EngineNetworkVersion = 1
	EngineNetworkVersionReplayBackwardsCompat           EngineNetworkVersion = 2
	EngineNetworkVersionMaxActorChannelsCustomization   EngineNetworkVersion = 3
	EngineNetworkVersionRepCmdChecksumRemovePrintf      EngineNetworkVersion = 4
	EngineNetworkVersionNewActorOverrideLevel           EngineNetworkVersion = 5
	EngineNetworkVersionChannelNames                    EngineNetworkVersion = 6
	EngineNetworkVersionChannelCloseReason              EngineNetworkVersion = 7
	EngineNetworkVersionAcksIncludedInHeader            EngineNetworkVersion = 8
	EngineNetworkVersionNetExportSerialization          EngineNetworkVersion = 9
	EngineNetworkVersionNetExportSerializeFix           EngineNetworkVersion = 10
	EngineNetworkVersionFastArrayDeltaStruct            EngineNetworkVersion = 11
	EngineNetworkVersionFixEnumSerialization            EngineNetworkVersion = 12
	EngineNetworkVersionOptionallyQuantizeSpawnInfo     EngineNetworkVersion = 13
	EngineNetworkVersionJitterInHeader                  EngineNetworkVersion = 14
	EngineNetworkVersionClassNetCacheFullName           EngineNetworkVersion = 15
	EngineNetworkVersionReplayDormancy                  EngineNetworkVersion = 16
	EngineNetworkVersionEnumSerializationCompat         EngineNetworkVersion = 17
	EngineNetworkVersionSubobjectOuterChain             EngineNetworkVersion = 18
	EngineNetworkVersionHitResultInstanceHandle         EngineNetworkVersion = 19
	EngineNetworkVersionInterfacePropertySerialization  EngineNetworkVersion = 20
	EngineNetworkVersionMontagePlayInstIDSerialization  EngineNetworkVersion = 21
	EngineNetworkVersionSerializeDoubleVectorsAsDoubles EngineNetworkVersion = 22
	EngineNetworkVersionPackedVectorLWCSupport          EngineNetworkVersion = 23
	EngineNetworkVersionPawnRemoteViewPitch             EngineNetworkVersion = 24
	EngineNetworkVersionRepMoveServerFrameAndHandle     EngineNetworkVersion = 25
	EngineNetworkVersion21AndViewPitchOnlyDoNotUse      EngineNetworkVersion = 26
	EngineNetworkVersionPlaceholder                     EngineNetworkVersion = 27

	// new versions go above this line
	EngineNetworkVersionPlusOne EngineNetworkVersion = 28
	EngineNetworkVersionLatest                       = EngineNetworkVersionPlusOne - 1
)

func (v EngineNetworkVersion) String() string {
	if v.IsUnknownFuture() {
		return fmt.Sprintf("Unknown(%d)", uint32(v))
	}
	return fmt.Sprintf("%d", uint32(v))
}

func (v EngineNetworkVersion) IsUnknownFuture() bool {
	return v >= EngineNetworkVersionPlusOne
}

// HeaderFlags is the bitset stored in the demo header since NetworkVersionHeaderFlags.
type HeaderFlags uint32

const (
	HeaderFlagClientRecorded             HeaderFlags = 1 << 0
	HeaderFlagHasStreamingFixes          HeaderFlags = 1 << 1
	HeaderFlagDeltaCheckpoints           HeaderFlags = 1 << 2
	HeaderFlagGameSpecificFrameData      HeaderFlags = 1 << 3
	HeaderFlagReplayConnection           HeaderFlags = 1 << 4
	HeaderFlagActorPrioritizationEnabled HeaderFlags = 1 << 5
	HeaderFlagNetRelevancyEnabled        HeaderFlags = 1 << 6
	HeaderFlagAsyncRecorded              HeaderFlags = 1 << 7
)

var headerFlagNames = []struct {
	flag HeaderFlags
	name string
}{
	{HeaderFlagClientRecorded, "ClientRecorded"},
	{HeaderFlagHasStreamingFixes, "HasStreamingFixes"},
	{HeaderFlagDeltaCheckpoints, "DeltaCheckpoints"},
	{HeaderFlagGameSpecificFrameData, "GameSpecificFrameData"},
	{HeaderFlagReplayConnection, "ReplayConnection"},
	{HeaderFlagActorPrioritizationEnabled, "ActorPrioritizationEnabled"},
	{HeaderFlagNetRelevancyEnabled, "NetRelevancyEnabled"},
	{HeaderFlagAsyncRecorded, "AsyncRecorded"},
}

func (flags HeaderFlags) Has(flag HeaderFlags) bool {
	return flags&flag == flag
}

func (flags HeaderFlags) String() string {
	if flags == 0 {
		return "None"
	}
	result := ""
	for _, named := range headerFlagNames {
		if !flags.Has(named.flag) {
			continue
		}
		if result != "" {
			result += "|"
		}
		result += named.name
	}
	if rest := flags &^ (HeaderFlagAsyncRecorded<<1 - 1); rest != 0 {
		if result != "" {
			result += "|"
		}
		result += fmt.Sprintf("0x%X", uint32(rest))
	}
	return result
}

func versionName[V ~uint32](names map[V]string, v V) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint32(v))
}
