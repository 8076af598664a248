package ureplay

import (
	"github.com/spf13/cobra"
	"github.com/ureplay/ureplay/internal"
	"github.com/wal-g/tracelog"
)

const (
	InfoShortDescription   = "Prints the info block and header of a replay"
	EventsShortDescription = "Prints the events of a replay"
	PrettyFlag             = "pretty"
	JSONFlag               = "json"
)

var (
	// infoCmd represents the info command
	infoCmd = &cobra.Command{
		Use:   "info replay_file",
		Short: InfoShortDescription,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			parse, err := internal.ConfigureReplayParser()
			tracelog.ErrorLogger.FatalOnError(err)
			internal.DefaultHandleReplayInfo(args[0], parse, internal.GetOutputFormat(infoPretty, infoJSON))
		},
	}
	infoPretty = false
	infoJSON   = false

	// eventsCmd represents the events command
	eventsCmd = &cobra.Command{
		Use:   "events replay_file",
		Short: EventsShortDescription,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			parse, err := internal.ConfigureReplayParser()
			tracelog.ErrorLogger.FatalOnError(err)
			internal.DefaultHandleEventList(args[0], parse, internal.GetOutputFormat(eventsPretty, eventsJSON))
		},
	}
	eventsPretty = false
	eventsJSON   = false
)

func init() {
	infoCmd.Flags().BoolVar(&infoPretty, PrettyFlag, false, "Prints more readable output")
	infoCmd.Flags().BoolVar(&infoJSON, JSONFlag, false, "Prints output in json format")

	eventsCmd.Flags().BoolVar(&eventsPretty, PrettyFlag, false, "Prints more readable output")
	eventsCmd.Flags().BoolVar(&eventsJSON, JSONFlag, false, "Prints output in json format")
}
