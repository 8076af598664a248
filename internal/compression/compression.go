package compression

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/compression/lz4"
	"github.com/ureplay/ureplay/internal/compression/lzma"
	"github.com/ureplay/ureplay/internal/compression/none"
	"github.com/ureplay/ureplay/internal/compression/zlib"
	"github.com/ureplay/ureplay/internal/compression/zstd"
	"github.com/wal-g/tracelog"
)

//go:generate mockgen -destination=../../testtools/mock_decompressor.go -package=testtools github.com/ureplay/ureplay/internal/compression Decompressor

// Decompressor expands one compressed block. dst has exactly the size the block declares.
type Decompressor interface {
	Decompress(dst []byte, src []byte) error
	AlgorithmName() string
}

// Compressor produces blocks its paired Decompressor can expand.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
	AlgorithmName() string
}

var Decompressors = map[string]Decompressor{
	lz4.AlgorithmName:  lz4.Decompressor{},
	lzma.AlgorithmName: lzma.Decompressor{},
	none.AlgorithmName: none.Decompressor{},
	zlib.AlgorithmName: zlib.Decompressor{},
	zstd.AlgorithmName: zstd.Decompressor{},
}

var Compressors = map[string]Compressor{
	lz4.AlgorithmName:  lz4.Compressor{},
	lzma.AlgorithmName: lzma.Compressor{},
	none.AlgorithmName: none.Compressor{},
	zlib.AlgorithmName: zlib.Compressor{},
	zstd.AlgorithmName: zstd.Compressor{},
}

type UnknownAlgorithmError struct {
	error
}

func NewUnknownAlgorithmError(name string) UnknownAlgorithmError {
	return UnknownAlgorithmError{
		errors.Errorf("unknown compression algorithm: '%s', supported: %v", name, AlgorithmNames())}
}

func (err UnknownAlgorithmError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func FindDecompressor(name string) (Decompressor, error) {
	decompressor, ok := Decompressors[name]
	if !ok {
		return nil, NewUnknownAlgorithmError(name)
	}
	return decompressor, nil
}

func GetDecompressorByCompressor(compressor Compressor) Decompressor {
	return Decompressors[compressor.AlgorithmName()]
}

func AlgorithmNames() []string {
	names := make([]string, 0, len(Decompressors))
	for name := range Decompressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
