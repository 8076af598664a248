// Package fortnite decodes the game specific events Fortnite stores in its replays.
package fortnite

import (
	"sync"

	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/replayparser"
)

const (
	EliminationGroup    = "playerElim"
	EliminationMetadata = "versionedEvent"

	ReplayBrowserGroup    = "AthenaReplayBrowserEvents"
	MatchStatsMetadata    = "AthenaMatchStats"
	TeamStatsMetadata     = "AthenaMatchTeamStats"
	EncryptionKeyGroup    = "PlayerStateEncryptionKey"
	EncryptionKeyMetadata = "PlayerStateEncryptionKey"
	TimecodeGroup         = "Timecode"
	TimecodeMetadata      = "TimecodeVersionMeta"
	ZoneUpdateGroup       = "ZoneUpdate"
	ZoneUpdateMetadata    = "ZoneUpdate"
	CharacterSampleGroup  = "CharacterSample"
	CharacterSampleMeta   = "CharacterSampleMeta"
	ActorsPositionGroup   = "ActorsPosition"
	ActorsPositionMeta    = "ActorsPosition"
)

// Collector decodes Fortnite events into a Summary. Use one Collector per replay.
type Collector struct {
	mutex   sync.Mutex
	summary Summary
}

func NewCollector() *Collector {
	return &Collector{}
}

// Options registers the collector's handlers on a replayparser.Reader.
func (collector *Collector) Options() []replayparser.Option {
	return []replayparser.Option{
		replayparser.WithEventHandler(EliminationGroup, EliminationMetadata,
			replayparser.EventHandlerFunc(collector.handleElimination)),
		replayparser.WithEventHandler(ReplayBrowserGroup, MatchStatsMetadata,
			replayparser.EventHandlerFunc(collector.handleMatchStats)),
		replayparser.WithEventHandler(ReplayBrowserGroup, TeamStatsMetadata,
			replayparser.EventHandlerFunc(collector.handleTeamStats)),
		replayparser.WithEventHandler(EncryptionKeyGroup, EncryptionKeyMetadata,
			replayparser.EventHandlerFunc(collector.handleEncryptionKey)),
		replayparser.WithEventHandler(TimecodeGroup, TimecodeMetadata,
			replayparser.EventHandlerFunc(collector.handleTimecode)),
		replayparser.WithEventHandler(ZoneUpdateGroup, ZoneUpdateMetadata,
			replayparser.EventHandlerFunc(collector.handleZoneUpdate)),
		replayparser.WithEventHandler(CharacterSampleGroup, CharacterSampleMeta,
			replayparser.EventHandlerFunc(collector.handleCharacterSamples)),
		replayparser.WithEventHandler(ActorsPositionGroup, ActorsPositionMeta,
			replayparser.EventHandlerFunc(collector.handleActorPositions)),
	}
}

// Summary returns a copy of everything collected so far.
func (collector *Collector) Summary() Summary {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	summary := collector.summary
	summary.Eliminations = append([]PlayerElimination(nil), summary.Eliminations...)
	summary.SafeZones = append([]SafeZone(nil), summary.SafeZones...)
	summary.ChestPositions = append([]archive.Vector(nil), summary.ChestPositions...)
	summary.CharacterSamples = append([]CharacterSample(nil), summary.CharacterSamples...)
	return summary
}

func (collector *Collector) update(apply func(summary *Summary)) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	apply(&collector.summary)
}

func (collector *Collector) handleElimination(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	elimination, err := readElimination(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.Eliminations = append(summary.Eliminations, elimination)
	})
	return elimination, nil
}

func (collector *Collector) handleMatchStats(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	stats, err := readMatchStats(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.MatchStats = &stats
	})
	return stats, nil
}

func (collector *Collector) handleTeamStats(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	stats, err := readTeamStats(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.TeamStats = &stats
	})
	return stats, nil
}

func (collector *Collector) handleEncryptionKey(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	key, err := readEncryptionKey(ar)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.PlayerStateEncryptionKey = key
	})
	return key, nil
}

func (collector *Collector) handleTimecode(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	timecode, err := readTimecode(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.Timecode = timecode
	})
	return timecode, nil
}

func (collector *Collector) handleZoneUpdate(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	zone, err := readZoneUpdate(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.SafeZones = append(summary.SafeZones, zone)
	})
	return zone, nil
}

func (collector *Collector) handleCharacterSamples(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	samples, err := readCharacterSamples(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.CharacterSamples = append(summary.CharacterSamples, samples...)
	})
	return samples, nil
}

func (collector *Collector) handleActorPositions(ar *archive.Archive, event replayparser.Event) (interface{}, error) {
	positions, err := readActorPositions(ar, event)
	if err != nil {
		return nil, err
	}
	collector.update(func(summary *Summary) {
		summary.ChestPositions = append(summary.ChestPositions, positions...)
	})
	return positions, nil
}
