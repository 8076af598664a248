package internal

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/compression"
	"github.com/ureplay/ureplay/internal/config"
	"github.com/ureplay/ureplay/internal/fortnite"
	"github.com/ureplay/ureplay/internal/replayparser"
	"github.com/wal-g/tracelog"
)

const FortniteHandlerSet = "fortnite"

var knownHandlerSets = map[string]bool{
	FortniteHandlerSet: true,
}

type UnknownEventHandlerSetError struct {
	error
}

func NewUnknownEventHandlerSetError(name string) UnknownEventHandlerSetError {
	return UnknownEventHandlerSetError{errors.Errorf("unknown event handler set: '%s'", name)}
}

func (err UnknownEventHandlerSetError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// ReplayReport is everything ureplay prints about one replay file.
type ReplayReport struct {
	Path               string               `json:"path"`
	Replay             *replayparser.Replay `json:"replay"`
	DecodedCheckpoints int                  `json:"decoded_checkpoints"`
	Fortnite           *fortnite.Summary    `json:"fortnite,omitempty"`
}

// ParseReplayFunc parses the replay stored at path. It is safe for concurrent use.
type ParseReplayFunc func(path string) (*ReplayReport, error)

type ReplayParserSettings struct {
	Decompressor     compression.Decompressor
	HandlerSets      []string
	ParseCheckpoints bool
}

// ConfigureReplayParser builds a ParseReplayFunc from the configured settings.
func ConfigureReplayParser() (ParseReplayFunc, error) {
	decompressor, err := config.ConfigureDecompressor()
	if err != nil {
		return nil, err
	}
	parseCheckpoints, err := config.GetBoolSettingDefault(config.ParseCheckpointsSetting, false)
	if err != nil {
		return nil, err
	}
	return NewReplayParser(ReplayParserSettings{
		Decompressor:     decompressor,
		HandlerSets:      config.GetEventHandlerSets(),
		ParseCheckpoints: parseCheckpoints,
	})
}

func NewReplayParser(settings ReplayParserSettings) (ParseReplayFunc, error) {
	useFortnite := false
	for _, set := range settings.HandlerSets {
		if !knownHandlerSets[set] {
			return nil, NewUnknownEventHandlerSetError(set)
		}
		useFortnite = useFortnite || set == FortniteHandlerSet
	}

	return func(path string) (*ReplayReport, error) {
		report := &ReplayReport{Path: path}
		var options []replayparser.Option
		if settings.Decompressor != nil {
			options = append(options, replayparser.WithDecompressor(settings.Decompressor))
		}
		if settings.ParseCheckpoints {
			options = append(options, replayparser.WithCheckpointHandler(replayparser.CheckpointHandlerFunc(
				func(ar *archive.Archive, checkpoint replayparser.Checkpoint) error {
					tracelog.DebugLogger.Printf("Decoded checkpoint %s: %d bytes\n", checkpoint.ID, ar.Len())
					report.DecodedCheckpoints++
					return nil
				})))
		}
		var collector *fortnite.Collector
		if useFortnite {
			collector = fortnite.NewCollector()
			options = append(options, collector.Options()...)
		}

		replay, err := replayparser.NewReader(options...).ParseFile(path)
		if err != nil {
			return nil, err
		}
		report.Replay = replay
		if collector != nil {
			summary := collector.Summary()
			report.Fortnite = &summary
		}
		return report, nil
	}, nil
}
