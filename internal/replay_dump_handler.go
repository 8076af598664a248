package internal

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/statistics"
	"golang.org/x/sync/errgroup"
)

func DefaultHandleReplayDump(paths []string, parse ParseReplayFunc, concurrency int, pretty bool) {
	err := HandleReplayDump(context.Background(), paths, parse, concurrency, os.Stdout, pretty, DefaultLogging())
	statistics.PushMetrics()
	DefaultLogging().ErrorLogger.FatalOnError(err)
}

// HandleReplayDump parses up to concurrency replays at a time and writes the reports as one JSON array
// in the order of paths. The first failure cancels the replays that have not started yet.
func HandleReplayDump(
	ctx context.Context,
	paths []string,
	parse ParseReplayFunc,
	concurrency int,
	output io.Writer,
	pretty bool,
	logging Logging,
) error {
	reports, err := ParseReplays(ctx, paths, parse, concurrency)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		logging.InfoLogger.Println("No replays given")
		return nil
	}
	for _, report := range reports {
		if corrupt := report.Replay.Network.CorruptBlocks; corrupt > 0 {
			logging.WarningLogger.Printf("%s: %d data blocks were cut short by a corrupt packet\n", report.Path, corrupt)
		}
	}
	return WriteAsJSON(reports, output, pretty)
}

func ParseReplays(ctx context.Context, paths []string, parse ParseReplayFunc, concurrency int) ([]*ReplayReport, error) {
	if concurrency < 1 {
		return nil, errors.Errorf("parse concurrency must be positive, got %d", concurrency)
	}
	reports := make([]*ReplayReport, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			report, err := parse(path)
			if err != nil {
				return errors.Wrapf(err, "failed to dump %s", path)
			}
			reports[i] = report
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
