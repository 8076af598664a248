package replayparser

import (
	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/wal-g/tracelog"
)

// readHeader reads the demo header and sets the archive's network version context.
func readHeader(ar *archive.Archive) (*ReplayHeader, error) {
	magic, err := ar.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network magic")
	}
	if magic != NetworkMagic {
		return nil, NewInvalidContainerError("network", magic, NetworkMagic)
	}

	header := &ReplayHeader{}
	networkVersion, err := ar.ReadUint32()
	if err != nil {
		return nil, err
	}
	header.NetworkVersion = versions.NetworkVersion(networkVersion)
	if header.NetworkVersion.IsTooOld() {
		return nil, NewUnsupportedNetworkVersionError(header.NetworkVersion)
	}
	if header.NetworkVersion.IsUnknownFuture() {
		tracelog.WarningLogger.Printf("Encountered unknown network version %d, reading it as %v\n",
			networkVersion, versions.NetworkVersionLatest)
	}

	if header.NetworkChecksum, err = ar.ReadUint32(); err != nil {
		return nil, err
	}
	engineNetworkVersion, err := ar.ReadUint32()
	if err != nil {
		return nil, err
	}
	header.EngineNetworkVersion = versions.EngineNetworkVersion(engineNetworkVersion)
	if header.EngineNetworkVersion.IsUnknownFuture() {
		tracelog.WarningLogger.Printf("Encountered unknown engine network version %d, reading it as %d\n",
			engineNetworkVersion, uint32(versions.EngineNetworkVersionLatest))
	}
	if header.GameNetworkProtocolVersion, err = ar.ReadUint32(); err != nil {
		return nil, err
	}

	fields := versions.HeaderFieldsAt(header.NetworkVersion)
	if fields.GUID {
		if header.GUID, err = ar.ReadGUID(); err != nil {
			return nil, err
		}
	}
	if err = readEngineVersion(ar, header, fields); err != nil {
		return nil, errors.Wrap(err, "failed to read engine version")
	}
	if fields.PackageVersions {
		if header.PackageVersionUE4, err = ar.ReadInt32(); err != nil {
			return nil, err
		}
		if header.PackageVersionUE5, err = ar.ReadInt32(); err != nil {
			return nil, err
		}
		if header.PackageVersionLicensee, err = ar.ReadInt32(); err != nil {
			return nil, err
		}
	}
	if header.LevelNamesAndTimes, err = readLevels(ar, fields.Levels); err != nil {
		return nil, errors.Wrap(err, "failed to read level names")
	}
	if fields.Flags {
		flags, err := ar.ReadUint32()
		if err != nil {
			return nil, err
		}
		header.Flags = versions.HeaderFlags(flags)
	}
	if header.GameSpecificData, err = archive.ReadArray(ar, archive.FStringDecoder); err != nil {
		return nil, errors.Wrap(err, "failed to read game specific data")
	}
	if fields.RecordingMetadata {
		if err = readRecordingMetadata(ar, header); err != nil {
			return nil, errors.Wrap(err, "failed to read recording metadata")
		}
	}

	ar.NetworkVersion = header.NetworkVersion
	ar.EngineNetworkVersion = header.EngineNetworkVersion
	ar.HeaderFlags = header.Flags
	return header, nil
}

func readEngineVersion(ar *archive.Archive, header *ReplayHeader, fields versions.HeaderFieldSet) (err error) {
	if !fields.FullEngineVersion {
		header.Changelist, err = ar.ReadUint32()
		return err
	}
	if header.Major, err = ar.ReadUint16(); err != nil {
		return err
	}
	if header.Minor, err = ar.ReadUint16(); err != nil {
		return err
	}
	if header.Patch, err = ar.ReadUint16(); err != nil {
		return err
	}
	if header.Changelist, err = ar.ReadUint32(); err != nil {
		return err
	}
	header.Branch, err = ar.ReadFString()
	return err
}

func readLevels(ar *archive.Archive, layout versions.LevelListLayout) ([]LevelNameAndTime, error) {
	switch layout {
	case versions.LevelNamesAndTimes:
		pairs, err := archive.ReadTupleArray(ar, archive.FStringDecoder, archive.Uint32Decoder)
		if err != nil {
			return nil, err
		}
		levels := make([]LevelNameAndTime, 0, len(pairs))
		for _, pair := range pairs {
			levels = append(levels, LevelNameAndTime{Name: pair.First, Time: pair.Second})
		}
		return levels, nil
	case versions.LevelNameList:
		names, err := archive.ReadArray(ar, archive.FStringDecoder)
		if err != nil {
			return nil, err
		}
		levels := make([]LevelNameAndTime, 0, len(names))
		for _, name := range names {
			levels = append(levels, LevelNameAndTime{Name: name})
		}
		return levels, nil
	default:
		name, err := ar.ReadFString()
		if err != nil {
			return nil, err
		}
		return []LevelNameAndTime{{Name: name}}, nil
	}
}

func readRecordingMetadata(ar *archive.Archive, header *ReplayHeader) (err error) {
	if header.MinRecordHz, err = ar.ReadFloat32(); err != nil {
		return err
	}
	if header.MaxRecordHz, err = ar.ReadFloat32(); err != nil {
		return err
	}
	if header.FrameLimitInMs, err = ar.ReadFloat32(); err != nil {
		return err
	}
	if header.CheckpointLimitInMs, err = ar.ReadFloat32(); err != nil {
		return err
	}
	if header.Platform, err = ar.ReadFString(); err != nil {
		return err
	}
	if header.BuildConfig, err = ar.ReadUint8(); err != nil {
		return err
	}
	header.BuildTarget, err = ar.ReadUint8()
	return err
}
