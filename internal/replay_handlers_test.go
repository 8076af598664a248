package internal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ureplay/ureplay/internal"
	"github.com/ureplay/ureplay/internal/compression/zstd"
	"github.com/ureplay/ureplay/internal/fortnite"
	"github.com/ureplay/ureplay/internal/replayparser"
	"github.com/ureplay/ureplay/testtools"
)

func teamStatsPayload() []byte {
	return testtools.NewByteWriter().Int32(fortnite.StatsEventVersion).Uint32(2).Uint32(50).Bytes()
}

func writeSampleReplay(t *testing.T) string {
	builder := testtools.NewReplayBuilder()
	builder.Compressor = zstd.Compressor{}
	builder.
		WithEvent("team", fortnite.ReplayBrowserGroup, fortnite.TeamStatsMetadata, 500, 500, teamStatsPayload()).
		WithEvent("other", "customGroup", "meta", 100, 100, []byte{1, 2}).
		WithCheckpoint("checkpoint_0", 0, 1000, []byte("state 0")).
		WithCheckpoint("checkpoint_1", 1000, 2000, []byte("state 1")).
		WithDataBlock(0, 1000, testtools.NewByteWriter().Frame(builder.NetworkVersion, 0.5, []byte{9, 9}).Bytes())
	return testtools.WriteReplayFile(t, "sample.replay", builder.MustBuild())
}

func newParser(t *testing.T, settings internal.ReplayParserSettings) internal.ParseReplayFunc {
	parse, err := internal.NewReplayParser(settings)
	require.NoError(t, err)
	return parse
}

func TestNewReplayParser_UnknownHandlerSet(t *testing.T) {
	_, err := internal.NewReplayParser(internal.ReplayParserSettings{HandlerSets: []string{"fortnite", "rocketleague"}})
	require.Error(t, err)
	assert.IsType(t, internal.UnknownEventHandlerSetError{}, err)
}

func TestNewReplayParser_WithFortniteHandlers(t *testing.T) {
	parse := newParser(t, internal.ReplayParserSettings{
		Decompressor: zstd.Decompressor{},
		HandlerSets:  []string{internal.FortniteHandlerSet},
	})

	report, err := parse(writeSampleReplay(t))
	require.NoError(t, err)

	require.NotNil(t, report.Fortnite)
	require.NotNil(t, report.Fortnite.TeamStats)
	assert.Equal(t, uint32(50), report.Fortnite.TeamStats.TotalPlayers)
	assert.Len(t, report.Replay.Records, 1)
	assert.Equal(t, 1, report.Replay.Network.Packets)
	assert.Zero(t, report.DecodedCheckpoints)
}

func TestNewReplayParser_WithoutHandlersAndWithCheckpoints(t *testing.T) {
	parse := newParser(t, internal.ReplayParserSettings{
		Decompressor:     zstd.Decompressor{},
		ParseCheckpoints: true,
	})

	report, err := parse(writeSampleReplay(t))
	require.NoError(t, err)

	assert.Nil(t, report.Fortnite)
	assert.Empty(t, report.Replay.Records)
	assert.Equal(t, 2, report.DecodedCheckpoints)
}

func TestHandleReplayInfo_WritesReport(t *testing.T) {
	path := writeSampleReplay(t)
	var written *internal.ReplayReport
	info, warning, errorLogger := testtools.MockLoggers()

	internal.HandleReplayInfo(path, newParser(t, internal.ReplayParserSettings{}),
		func(report *internal.ReplayReport) { written = report },
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})

	require.NotNil(t, written)
	assert.Equal(t, path, written.Path)
	assert.Zero(t, errorLogger.Stats.FatalOnErrorCallsCount)
}

func TestHandleReplayInfo_ParseError(t *testing.T) {
	path := testtools.WriteReplayFile(t, "broken.replay", []byte{1, 2, 3, 4})
	writeCalls := 0
	info, warning, errorLogger := testtools.MockLoggers()

	internal.HandleReplayInfo(path, newParser(t, internal.ReplayParserSettings{}),
		func(report *internal.ReplayReport) { writeCalls++ },
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})

	assert.Zero(t, writeCalls)
	assert.Equal(t, 1, errorLogger.Stats.FatalOnErrorCallsCount)
	assert.IsType(t, replayparser.InvalidContainerError{}, errors.Cause(errorLogger.Stats.Err))
}

func TestWriteReplayInfo(t *testing.T) {
	path := writeSampleReplay(t)
	report, err := newParser(t, internal.ReplayParserSettings{Decompressor: zstd.Decompressor{}})(path)
	require.NoError(t, err)
	// names are padded to the longest one, engine_network_version
	line := func(name string, value interface{}) string {
		return fmt.Sprintf("%-23s%v\n", name, value)
	}

	b := bytes.Buffer{}
	internal.WriteReplayInfo(report, &b)

	output := b.String()
	assert.Contains(t, output, line("path", path))
	assert.Contains(t, output, line("friendly_name", "synthetic replay"))
	assert.Contains(t, output, line("file_version", "6 (Encryption)"))
	assert.Contains(t, output, line("length", "1m0s"))
	assert.Contains(t, output, line("timestamp", "2021-06-01T12:00:00Z"))
	assert.Contains(t, output, line("compressed", true))
	assert.Contains(t, output, line("network_version", "18 (RecordingMetadata)"))
	assert.Contains(t, output, line("engine_version", "5.1.2"))
	assert.Contains(t, output, line("flags", "None"))
	assert.Contains(t, output, line("levels", "/Game/Maps/Arena"))
	assert.Contains(t, output, line("events", 2))
	assert.Contains(t, output, line("checkpoints", 2))
	assert.Contains(t, output, line("packets", 1))
}

func TestWritePrettyReplayInfo(t *testing.T) {
	report, err := newParser(t, internal.ReplayParserSettings{})(writeSampleReplay(t))
	require.NoError(t, err)

	b := bytes.Buffer{}
	internal.WritePrettyReplayInfo(report, &b)

	output := b.String()
	assert.Contains(t, output, "| FIELD ")
	assert.Contains(t, output, "| friendly_name ")
	assert.Contains(t, output, "| synthetic replay ")
}

func TestWriteAsJSON_ReplayReport(t *testing.T) {
	builder := testtools.NewReplayBuilder()
	builder.Encrypted = true
	builder.EncryptionKey = bytes.Repeat([]byte{7}, 32)
	path := testtools.WriteReplayFile(t, "encrypted.replay", builder.MustBuild())
	report, err := newParser(t, internal.ReplayParserSettings{})(path)
	require.NoError(t, err)

	b := bytes.Buffer{}
	require.NoError(t, internal.WriteAsJSON(report, &b, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &decoded))
	info := decoded["replay"].(map[string]interface{})["info"].(map[string]interface{})
	assert.Equal(t, "synthetic replay", info["friendly_name"])
	assert.Equal(t, true, info["encrypted"])
	assert.NotContains(t, b.String(), "encryption_key")
	assert.NotContains(t, decoded, "fortnite")
}

func TestWriteAsJSON_WriterError(t *testing.T) {
	err := internal.WriteAsJSON([]int{1}, testtools.ErrorWriter{}, true)
	assert.Error(t, err)
}

func TestHandleEventList_NoEvents(t *testing.T) {
	path := testtools.WriteReplayFile(t, "empty.replay", testtools.NewReplayBuilder().MustBuild())
	writeCalls := 0
	info, warning, errorLogger := testtools.MockLoggers()

	internal.HandleEventList(path, newParser(t, internal.ReplayParserSettings{}),
		func(entries []internal.EventListEntry) { writeCalls++ },
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})

	assert.Zero(t, writeCalls)
	assert.Equal(t, 1, info.Stats.PrintlnCallsCount)
	assert.Equal(t, "No events found", info.Stats.LastMessage())
}

func TestHandleEventList_PairsRecords(t *testing.T) {
	parse := newParser(t, internal.ReplayParserSettings{
		Decompressor: zstd.Decompressor{},
		HandlerSets:  []string{internal.FortniteHandlerSet},
	})
	var written []internal.EventListEntry
	info, warning, errorLogger := testtools.MockLoggers()

	internal.HandleEventList(writeSampleReplay(t), parse,
		func(entries []internal.EventListEntry) { written = entries },
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})

	require.Len(t, written, 2)
	assert.Equal(t, "other", written[0].ID)
	assert.Nil(t, written[0].Record)
	assert.Equal(t, "team", written[1].ID)
	assert.Equal(t, fortnite.TeamStats{Position: 2, TotalPlayers: 50}, written[1].Record)
}

func TestWriteEventList(t *testing.T) {
	expectedRes := "id group metadata start_time end_time size decoded\n" +
		"e1 g     m        10         20       3    true\n"
	entries := []internal.EventListEntry{{
		Event:  replayparser.Event{ID: "e1", Group: "g", Metadata: "m", StartTime: 10, EndTime: 20, Length: 3},
		Record: "value",
	}}

	b := bytes.Buffer{}
	internal.WriteEventList(entries, &b)

	assert.Equal(t, expectedRes, b.String())
}

func TestWritePrettyEventList_NoEvents(t *testing.T) {
	expectedRes := "+---+----+-------+----------+------------+----------+------+\n" +
		"| # | ID | GROUP | METADATA | START TIME | END TIME | SIZE |\n" +
		"+---+----+-------+----------+------------+----------+------+\n" +
		"+---+----+-------+----------+------------+----------+------+\n"

	b := bytes.Buffer{}
	internal.WritePrettyEventList(nil, &b)

	assert.Equal(t, expectedRes, b.String())
}

func TestGetOutputFormat(t *testing.T) {
	assert.Equal(t, internal.PlainOutput, internal.GetOutputFormat(false, false))
	assert.Equal(t, internal.PrettyOutput, internal.GetOutputFormat(true, false))
	assert.Equal(t, internal.JSONOutput, internal.GetOutputFormat(true, true))
}

func TestParseReplays_KeepsOrder(t *testing.T) {
	var inFlight, maxInFlight int32
	parse := func(path string) (*internal.ReplayReport, error) {
		current := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			seen := atomic.LoadInt32(&maxInFlight)
			if current <= seen || atomic.CompareAndSwapInt32(&maxInFlight, seen, current) {
				break
			}
		}
		return &internal.ReplayReport{Path: path, Replay: &replayparser.Replay{}}, nil
	}
	paths := []string{"a", "b", "c", "d", "e"}

	reports, err := internal.ParseReplays(context.Background(), paths, parse, 2)
	require.NoError(t, err)

	require.Len(t, reports, len(paths))
	for i, path := range paths {
		assert.Equal(t, path, reports[i].Path)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
}

func TestParseReplays_Failure(t *testing.T) {
	parse := func(path string) (*internal.ReplayReport, error) {
		if path == "bad" {
			return nil, errors.New("broken replay")
		}
		return &internal.ReplayReport{Path: path, Replay: &replayparser.Replay{}}, nil
	}

	_, err := internal.ParseReplays(context.Background(), []string{"good", "bad"}, parse, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")

	_, err = internal.ParseReplays(context.Background(), []string{"good"}, parse, 0)
	assert.Error(t, err)
}

func TestHandleReplayDump(t *testing.T) {
	first := writeSampleReplay(t)
	second := testtools.WriteReplayFile(t, "plain.replay", testtools.NewReplayBuilder().MustBuild())
	parse := newParser(t, internal.ReplayParserSettings{Decompressor: zstd.Decompressor{}})
	info, warning, errorLogger := testtools.MockLoggers()

	b := bytes.Buffer{}
	err := internal.HandleReplayDump(context.Background(), []string{first, second}, parse, 2, &b, false,
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, first, decoded[0]["path"])
	assert.Equal(t, second, decoded[1]["path"])
	assert.Zero(t, warning.Stats.PrintfCallsCount)
}

func TestHandleReplayDump_NoPaths(t *testing.T) {
	info, warning, errorLogger := testtools.MockLoggers()

	b := bytes.Buffer{}
	err := internal.HandleReplayDump(context.Background(), nil, newParser(t, internal.ReplayParserSettings{}), 1, &b, false,
		internal.Logging{InfoLogger: info, WarningLogger: warning, ErrorLogger: errorLogger})

	require.NoError(t, err)
	assert.Empty(t, b.String())
	assert.Equal(t, "No replays given", info.Stats.LastMessage())
}
