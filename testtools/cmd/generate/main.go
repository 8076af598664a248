package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ureplay/ureplay/internal/compression"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/ureplay/ureplay/testtools"
	"github.com/wal-g/tracelog"
)

var (
	algorithm   string
	keyHex      string
	events      int
	checkpoints int
	dataBlocks  int
	live        bool
)

// generate writes a synthetic replay used by the integration scripts
var generateCmd = &cobra.Command{
	Use:   "generate output_file",
	Short: "Writes a synthetic replay file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := buildReplay()
		tracelog.ErrorLogger.FatalOnError(err)
		tracelog.ErrorLogger.FatalOnError(os.WriteFile(args[0], data, 0644))
		tracelog.InfoLogger.Printf("Wrote %d bytes to %s\n", len(data), args[0])
	},
}

func buildReplay() ([]byte, error) {
	builder := testtools.NewReplayBuilder()
	builder.IsLive = live
	if algorithm != "" {
		compressor, ok := compression.Compressors[algorithm]
		if !ok {
			return nil, errors.Errorf("unknown compression algorithm '%s'", algorithm)
		}
		builder.Compressor = compressor
	}
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode encryption key")
		}
		builder.Encrypted = true
		builder.EncryptionKey = key
	}

	for i := 0; i < events; i++ {
		start := uint32(i * 1000)
		builder.WithEvent(fmt.Sprintf("event_%d", i), "generated", "generatedMeta", start, start+500, []byte{byte(i)})
	}
	for i := 0; i < checkpoints; i++ {
		start := uint32(i * 10000)
		builder.WithCheckpoint(fmt.Sprintf("checkpoint_%d", i), start, start+10000, make([]byte, 64))
	}
	for i := 0; i < dataBlocks; i++ {
		start := uint32(i * 5000)
		frames := testtools.NewByteWriter().
			Frame(versions.NetworkVersionLatest, float32(start)/1000, []byte{1, 2, 3}).
			Bytes()
		builder.WithDataBlock(start, start+5000, frames)
	}
	return builder.Build()
}

func main() {
	generateCmd.Flags().StringVar(&algorithm, "compression", "", "Compresses checkpoints and data blocks with the given algorithm")
	generateCmd.Flags().StringVar(&keyHex, "key", "", "Encrypts the replay with the given hex encoded key")
	generateCmd.Flags().IntVar(&events, "events", 3, "Number of events")
	generateCmd.Flags().IntVar(&checkpoints, "checkpoints", 1, "Number of checkpoints")
	generateCmd.Flags().IntVar(&dataBlocks, "data-blocks", 2, "Number of data blocks")
	generateCmd.Flags().BoolVar(&live, "live", false, "Marks the replay as live")

	if err := generateCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
