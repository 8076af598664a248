package ureplay

import (
	"github.com/spf13/cobra"
	"github.com/ureplay/ureplay/internal"
	"github.com/ureplay/ureplay/internal/config"
	"github.com/wal-g/tracelog"
)

const DumpShortDescription = "Parses replays in parallel and prints them as a JSON array"

var (
	// dumpCmd represents the dump command
	dumpCmd = &cobra.Command{
		Use:   "dump replay_file...",
		Short: DumpShortDescription,
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			parse, err := internal.ConfigureReplayParser()
			tracelog.ErrorLogger.FatalOnError(err)
			concurrency, err := config.GetMaxParseConcurrency()
			tracelog.ErrorLogger.FatalOnError(err)
			internal.DefaultHandleReplayDump(args, parse, concurrency, dumpPretty)
		},
	}
	dumpPretty = false
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpPretty, PrettyFlag, false, "Indents the JSON output")
}
