package replayparser

import (
	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/wal-g/tracelog"
)

// readInfo reads the info block and sets the archive's file version.
func readInfo(ar *archive.Archive) (info ReplayInfo, err error) {
	magic, err := ar.ReadUint32()
	if err != nil {
		return info, errors.Wrap(err, "failed to read file magic")
	}
	if magic != FileMagic {
		return info, NewInvalidContainerError("file", magic, FileMagic)
	}

	fileVersion, err := ar.ReadUint32()
	if err != nil {
		return info, err
	}
	info.FileVersion = versions.ReplayVersion(fileVersion)
	ar.ReplayVersion = info.FileVersion
	if info.FileVersion.IsUnknownFuture() {
		tracelog.WarningLogger.Printf("Encountered unknown replay version %d, reading it as %v\n",
			fileVersion, versions.ReplayVersionLatest)
	}

	if info.LengthInMs, err = ar.ReadUint32(); err != nil {
		return info, err
	}
	if info.NetworkVersion, err = ar.ReadUint32(); err != nil {
		return info, err
	}
	if info.Changelist, err = ar.ReadUint32(); err != nil {
		return info, err
	}
	if info.FriendlyName, err = ar.ReadFString(); err != nil {
		return info, errors.Wrap(err, "failed to read friendly name")
	}
	if info.IsLive, err = ar.ReadUint32AsBool(); err != nil {
		return info, err
	}

	fields := versions.InfoFieldsAt(info.FileVersion)
	if fields.Timestamp {
		if info.Timestamp, err = ar.ReadDate(); err != nil {
			return info, err
		}
	}
	if fields.Compressed {
		if info.IsCompressed, err = ar.ReadUint32AsBool(); err != nil {
			return info, err
		}
	}
	if fields.Encryption {
		if info.Encrypted, err = ar.ReadUint32AsBool(); err != nil {
			return info, err
		}
		keyLength, err := ar.ReadInt32()
		if err != nil {
			return info, err
		}
		if keyLength < 0 {
			return info, archive.NewInvalidLengthError("encryption key", int64(keyLength))
		}
		if info.EncryptionKey, err = ar.ReadBytes(int(keyLength)); err != nil {
			return info, errors.Wrap(err, "failed to read encryption key")
		}
	}

	if info.Encrypted && (info.IsLive || len(info.EncryptionKey) == 0) {
		return info, NewEncryptionStateError(info.IsLive, len(info.EncryptionKey))
	}
	return info, nil
}
