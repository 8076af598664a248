package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jedib0t/go-pretty/table"
	"github.com/wal-g/tracelog"
)

type InfoLogger interface {
	Println(v ...interface{})
}

type WarningLogger interface {
	Printf(format string, v ...interface{})
}

type ErrorLogger interface {
	FatalOnError(err error)
}

type Logging struct {
	InfoLogger    InfoLogger
	WarningLogger WarningLogger
	ErrorLogger   ErrorLogger
}

func DefaultLogging() Logging {
	return Logging{
		InfoLogger:    tracelog.InfoLogger,
		WarningLogger: tracelog.WarningLogger,
		ErrorLogger:   tracelog.ErrorLogger,
	}
}

type OutputFormat int

const (
	PlainOutput OutputFormat = iota
	PrettyOutput
	JSONOutput
)

func GetOutputFormat(pretty, asJSON bool) OutputFormat {
	switch {
	case asJSON:
		return JSONOutput
	case pretty:
		return PrettyOutput
	default:
		return PlainOutput
	}
}

func DefaultHandleReplayInfo(path string, parse ParseReplayFunc, format OutputFormat) {
	writeFunc := func(report *ReplayReport) {
		var err error
		switch format {
		case JSONOutput:
			err = WriteAsJSON(report, os.Stdout, true)
		case PrettyOutput:
			WritePrettyReplayInfo(report, os.Stdout)
		default:
			WriteReplayInfo(report, os.Stdout)
		}
		tracelog.ErrorLogger.FatalOnError(err)
	}
	HandleReplayInfo(path, parse, writeFunc, DefaultLogging())
}

func HandleReplayInfo(
	path string,
	parse ParseReplayFunc,
	writeReplayInfoFunc func(report *ReplayReport),
	logging Logging,
) {
	report, err := parse(path)
	if err != nil {
		logging.ErrorLogger.FatalOnError(err)
		return
	}
	writeReplayInfoFunc(report)
}

type infoField struct {
	name  string
	value interface{}
}

func replayInfoFields(report *ReplayReport) []infoField {
	replay := report.Replay
	info := replay.Info
	fields := []infoField{
		{"path", report.Path},
		{"friendly_name", info.FriendlyName},
		{"file_version", fmt.Sprintf("%d (%v)", uint32(info.FileVersion), info.FileVersion)},
		{"length", (time.Duration(info.LengthInMs) * time.Millisecond).String()},
		{"timestamp", formatTime(info.Timestamp)},
		{"changelist", info.Changelist},
		{"live", info.IsLive},
		{"compressed", info.IsCompressed},
		{"encrypted", info.Encrypted},
	}
	if header := replay.Header; header != nil {
		levels := make([]string, 0, len(header.LevelNamesAndTimes))
		for _, level := range header.LevelNamesAndTimes {
			levels = append(levels, level.Name)
		}
		fields = append(fields,
			infoField{"network_version", fmt.Sprintf("%d (%v)", uint32(header.NetworkVersion), header.NetworkVersion)},
			infoField{"engine_network_version", header.EngineNetworkVersion.String()},
			infoField{"engine_version", header.EngineVersion().String()},
			infoField{"branch", header.Branch},
			infoField{"guid", header.GUID},
			infoField{"platform", header.Platform},
			infoField{"flags", header.Flags.String()},
			infoField{"levels", strings.Join(levels, ",")},
		)
	}
	fields = append(fields,
		infoField{"events", len(replay.Events)},
		infoField{"checkpoints", len(replay.Checkpoints)},
		infoField{"data_blocks", len(replay.DataBlocks)},
		infoField{"frames", replay.Network.Frames},
		infoField{"packets", replay.Network.Packets},
		infoField{"corrupt_blocks", replay.Network.CorruptBlocks},
	)
	return fields
}

func formatTime(moment time.Time) string {
	if moment.IsZero() {
		return "-"
	}
	return moment.Format(time.RFC3339)
}

func WriteReplayInfo(report *ReplayReport, output io.Writer) {
	writer := tabwriter.NewWriter(output, 0, 0, 1, ' ', 0)
	defer writer.Flush()
	for _, field := range replayInfoFields(report) {
		_, _ = fmt.Fprintf(writer, "%v\t%v\n", field.name, field.value)
	}
}

func WritePrettyReplayInfo(report *ReplayReport, output io.Writer) {
	writer := table.NewWriter()
	writer.SetOutputMirror(output)
	defer writer.Render()
	writer.AppendHeader(table.Row{"Field", "Value"})
	for _, field := range replayInfoFields(report) {
		writer.AppendRow(table.Row{field.name, field.value})
	}
}

func WriteAsJSON(data interface{}, output io.Writer, pretty bool) error {
	var bytes []byte
	var err error
	if pretty {
		bytes, err = json.MarshalIndent(data, "", "    ")
	} else {
		bytes, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}
	_, err = output.Write(bytes)
	return err
}

