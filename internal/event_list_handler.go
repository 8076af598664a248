package internal

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/jedib0t/go-pretty/table"
	"github.com/ureplay/ureplay/internal/replayparser"
	"github.com/wal-g/tracelog"
)

// EventListEntry is one event together with the record its handler produced, if any.
type EventListEntry struct {
	replayparser.Event
	Record interface{} `json:"record,omitempty"`
}

func DefaultHandleEventList(path string, parse ParseReplayFunc, format OutputFormat) {
	writeFunc := func(entries []EventListEntry) {
		var err error
		switch format {
		case JSONOutput:
			err = WriteAsJSON(entries, os.Stdout, true)
		case PrettyOutput:
			WritePrettyEventList(entries, os.Stdout)
		default:
			WriteEventList(entries, os.Stdout)
		}
		tracelog.ErrorLogger.FatalOnError(err)
	}
	HandleEventList(path, parse, writeFunc, DefaultLogging())
}

func HandleEventList(
	path string,
	parse ParseReplayFunc,
	writeEventListFunc func(entries []EventListEntry),
	logging Logging,
) {
	report, err := parse(path)
	if err != nil {
		logging.ErrorLogger.FatalOnError(err)
		return
	}
	entries := GetEventList(report.Replay)
	if len(entries) == 0 {
		logging.InfoLogger.Println("No events found")
		return
	}
	writeEventListFunc(entries)
}

// GetEventList pairs every event with its decoded record, ordered by start time like the dispatch.
func GetEventList(replay *replayparser.Replay) []EventListEntry {
	records := make(map[int]interface{}, len(replay.Records))
	for _, record := range replay.Records {
		records[record.Event.Offset] = record.Value
	}
	entries := make([]EventListEntry, 0, len(replay.Events))
	for _, event := range replay.Events {
		entries = append(entries, EventListEntry{Event: event, Record: records[event.Offset]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})
	return entries
}

func WriteEventList(entries []EventListEntry, output io.Writer) {
	writer := tabwriter.NewWriter(output, 0, 0, 1, ' ', 0)
	defer writer.Flush()
	_, _ = fmt.Fprintln(writer, "id\tgroup\tmetadata\tstart_time\tend_time\tsize\tdecoded")
	for _, entry := range entries {
		_, _ = fmt.Fprintf(writer, "%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
			entry.ID, entry.Group, entry.Metadata, entry.StartTime, entry.EndTime, entry.Length, entry.Record != nil)
	}
}

func WritePrettyEventList(entries []EventListEntry, output io.Writer) {
	writer := table.NewWriter()
	writer.SetOutputMirror(output)
	defer writer.Render()
	writer.AppendHeader(table.Row{"#", "ID", "Group", "Metadata", "Start time", "End time", "Size"})
	for i, entry := range entries {
		writer.AppendRow(table.Row{i, entry.ID, entry.Group, entry.Metadata, entry.StartTime, entry.EndTime, entry.Length})
	}
}
