package fortnite

import (
	"math"
	"time"

	"github.com/ureplay/ureplay/internal/archive"
)

type PlayerType uint8

const (
	PlayerTypeBot      PlayerType = 3
	PlayerTypeNamedBot PlayerType = 16
	PlayerTypePlayer   PlayerType = 17
)

func (playerType PlayerType) String() string {
	switch playerType {
	case PlayerTypeBot:
		return "Bot"
	case PlayerTypeNamedBot:
		return "NamedBot"
	case PlayerTypePlayer:
		return "Player"
	}
	return "Unknown"
}

// PlayerEliminationInfo identifies one side of an elimination.
// ID is the lowercase hex account id of a player or the name of a named bot.
type PlayerEliminationInfo struct {
	PlayerType PlayerType     `json:"player_type"`
	ID         string         `json:"id,omitempty"`
	Location   archive.Vector `json:"location"`
}

func (info PlayerEliminationInfo) IsBot() bool {
	return info.PlayerType == PlayerTypeBot || info.PlayerType == PlayerTypeNamedBot
}

type PlayerElimination struct {
	EventID    string                `json:"event_id"`
	Time       uint32                `json:"time"`
	Eliminated PlayerEliminationInfo `json:"eliminated"`
	Eliminator PlayerEliminationInfo `json:"eliminator"`
	GunType    uint8                 `json:"gun_type"`
	Knocked    bool                  `json:"knocked"`
}

func (elimination PlayerElimination) SelfElimination() bool {
	return elimination.Eliminated.ID == elimination.Eliminator.ID
}

// Distance is the distance between both players at the moment of the elimination.
func (elimination PlayerElimination) Distance() float64 {
	dx := float64(elimination.Eliminator.Location.X - elimination.Eliminated.Location.X)
	dy := float64(elimination.Eliminator.Location.Y - elimination.Eliminated.Location.Y)
	dz := float64(elimination.Eliminator.Location.Z - elimination.Eliminated.Location.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

type MatchStats struct {
	Accuracy           float32 `json:"accuracy"`
	Assists            uint32  `json:"assists"`
	Eliminations       uint32  `json:"eliminations"`
	WeaponDamage       uint32  `json:"weapon_damage"`
	OtherDamage        uint32  `json:"other_damage"`
	Revives            uint32  `json:"revives"`
	DamageTaken        uint32  `json:"damage_taken"`
	DamageToStructures uint32  `json:"damage_to_structures"`
	MaterialsGathered  uint32  `json:"materials_gathered"`
	MaterialsUsed      uint32  `json:"materials_used"`
	TotalTraveled      uint32  `json:"total_traveled"`
}

type TeamStats struct {
	Position     uint32 `json:"position"`
	TotalPlayers uint32 `json:"total_players"`
}

type SafeZone struct {
	Time     uint32         `json:"time"`
	Position archive.Vector `json:"position"`
	Radius   float32        `json:"radius"`
}

type MovementSample struct {
	Position      archive.Vector `json:"position"`
	MovementStyle uint8          `json:"movement_style"`
	DeltaGameTime uint16         `json:"delta_game_time"`
}

type CharacterSample struct {
	EpicID    string           `json:"epic_id"`
	Movements []MovementSample `json:"movements"`
}

// Summary is what the handlers collected over one replay.
type Summary struct {
	Eliminations             []PlayerElimination `json:"eliminations"`
	MatchStats               *MatchStats         `json:"match_stats,omitempty"`
	TeamStats                *TeamStats          `json:"team_stats,omitempty"`
	PlayerStateEncryptionKey string              `json:"player_state_encryption_key,omitempty"`
	Timecode                 time.Time           `json:"timecode"`
	SafeZones                []SafeZone          `json:"safe_zones"`
	ChestPositions           []archive.Vector    `json:"chest_positions"`
	CharacterSamples         []CharacterSample   `json:"character_samples"`
}
