package fortnite

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/replayparser"
	"github.com/wal-g/tracelog"
)

const (
	CurrentEventVersion = 9
	StatsEventVersion   = 0

	eliminationEventType = 4
	encryptionKeySize    = 32
)

func warnUnknownVersion(event replayparser.Event, version int32) {
	tracelog.WarningLogger.Printf("Unknown event version. Group: %s Metadata: %s Version: %d\n",
		event.Group, event.Metadata, version)
}

func readVersion(ar *archive.Archive, event replayparser.Event, expected int32) error {
	version, err := ar.ReadInt32()
	if err != nil {
		return errors.Wrap(err, "failed to read event version")
	}
	if version != expected {
		warnUnknownVersion(event, version)
	}
	return nil
}

func readElimination(ar *archive.Archive, event replayparser.Event) (elimination PlayerElimination, err error) {
	elimination.EventID = event.ID
	elimination.Time = event.StartTime

	version, err := ar.ReadInt32()
	if err != nil {
		return elimination, err
	}
	eventType, err := ar.ReadUint8()
	if err != nil {
		return elimination, err
	}
	if version == CurrentEventVersion && eventType == eliminationEventType {
		if elimination.Eliminated.Location, err = readTransformLocation(ar); err != nil {
			return elimination, errors.Wrap(err, "failed to read eliminated player location")
		}
		if elimination.Eliminator.Location, err = readTransformLocation(ar); err != nil {
			return elimination, errors.Wrap(err, "failed to read eliminator location")
		}
		if err = readPlayer(ar, &elimination.Eliminated); err != nil {
			return elimination, errors.Wrap(err, "failed to read eliminated player")
		}
		if err = readPlayer(ar, &elimination.Eliminator); err != nil {
			return elimination, errors.Wrap(err, "failed to read eliminator")
		}
	} else {
		tracelog.WarningLogger.Printf("Unknown elimination event version: %d type: %d\n", version, eventType)
	}

	if elimination.GunType, err = ar.ReadUint8(); err != nil {
		return elimination, err
	}
	if elimination.Knocked, err = ar.ReadBool(); err != nil {
		return elimination, err
	}
	return elimination, ar.Skip(3)
}

// readTransformLocation reads a transform (rotation quaternion, scale, translation)
// of which the game stores the location in the scale slot.
func readTransformLocation(ar *archive.Archive) (archive.Vector, error) {
	// rotation
	if err := ar.Skip(16); err != nil {
		return archive.Vector{}, err
	}
	location, err := ar.ReadVector()
	if err != nil {
		return archive.Vector{}, err
	}
	// scale
	return location, ar.Skip(12)
}

func readPlayer(ar *archive.Archive, info *PlayerEliminationInfo) error {
	playerType, err := ar.ReadUint8()
	if err != nil {
		return err
	}
	info.PlayerType = PlayerType(playerType)
	switch info.PlayerType {
	case PlayerTypeBot:
	case PlayerTypeNamedBot:
		info.ID, err = ar.ReadFString()
	case PlayerTypePlayer:
		var size uint8
		if size, err = ar.ReadUint8(); err != nil {
			return err
		}
		var id string
		id, err = ar.ReadHexString(int(size))
		info.ID = strings.ToLower(id)
	default:
		tracelog.WarningLogger.Printf("Unknown player type: %d\n", playerType)
	}
	return err
}

func readMatchStats(ar *archive.Archive, event replayparser.Event) (stats MatchStats, err error) {
	if err = readVersion(ar, event, StatsEventVersion); err != nil {
		return stats, err
	}
	if stats.Accuracy, err = ar.ReadFloat32(); err != nil {
		return stats, err
	}
	counters := []*uint32{
		&stats.Assists,
		&stats.Eliminations,
		&stats.WeaponDamage,
		&stats.OtherDamage,
		&stats.Revives,
		&stats.DamageTaken,
		&stats.DamageToStructures,
		&stats.MaterialsGathered,
		&stats.MaterialsUsed,
		&stats.TotalTraveled,
	}
	for _, counter := range counters {
		if *counter, err = ar.ReadUint32(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func readTeamStats(ar *archive.Archive, event replayparser.Event) (stats TeamStats, err error) {
	if err = readVersion(ar, event, StatsEventVersion); err != nil {
		return stats, err
	}
	if stats.Position, err = ar.ReadUint32(); err != nil {
		return stats, err
	}
	stats.TotalPlayers, err = ar.ReadUint32()
	return stats, err
}

func readEncryptionKey(ar *archive.Archive) (string, error) {
	return ar.ReadHexString(encryptionKeySize)
}

func readTimecode(ar *archive.Archive, event replayparser.Event) (time.Time, error) {
	if err := readVersion(ar, event, CurrentEventVersion); err != nil {
		return time.Time{}, err
	}
	return ar.ReadDate()
}

func readZoneUpdate(ar *archive.Archive, event replayparser.Event) (zone SafeZone, err error) {
	zone.Time = event.StartTime
	if err = readVersion(ar, event, CurrentEventVersion); err != nil {
		return zone, err
	}
	if zone.Position, err = ar.ReadVector(); err != nil {
		return zone, err
	}
	zone.Radius, err = ar.ReadFloat32()
	return zone, err
}

func readActorPositions(ar *archive.Archive, event replayparser.Event) ([]archive.Vector, error) {
	if err := readVersion(ar, event, CurrentEventVersion); err != nil {
		return nil, err
	}
	return archive.ReadArray(ar, (*archive.Archive).ReadQuantizedVector)
}

func readCharacterSamples(ar *archive.Archive, event replayparser.Event) ([]CharacterSample, error) {
	if err := readVersion(ar, event, CurrentEventVersion); err != nil {
		return nil, err
	}
	count, err := ar.ReadInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > ar.Remaining() {
		return nil, archive.NewInvalidLengthError("character samples", int64(count))
	}
	samples := make([]CharacterSample, 0, count)
	for i := int32(0); i < count; i++ {
		var sample CharacterSample
		if sample.EpicID, err = ar.ReadFString(); err != nil {
			return nil, err
		}
		if sample.Movements, err = archive.ReadArray(ar, readMovementSample); err != nil {
			return nil, errors.Wrapf(err, "failed to read movements of %s", sample.EpicID)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func readMovementSample(ar *archive.Archive) (sample MovementSample, err error) {
	if sample.Position, err = ar.ReadQuantizedVector(); err != nil {
		return sample, err
	}
	if sample.MovementStyle, err = ar.ReadUint8(); err != nil {
		return sample, err
	}
	sample.DeltaGameTime, err = ar.ReadUint16()
	return sample, err
}
