package zstd

import (
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const AlgorithmName = "zstd"

// a nil reader builds a decoder that is only used through DecodeAll, which is safe for concurrent use
var decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))

type Decompressor struct{}

func (decompressor Decompressor) Decompress(dst []byte, src []byte) error {
	result, err := decoder.DecodeAll(src, dst[:0])
	if err != nil {
		return errors.Wrap(err, "DecompressZstd: failed to decode block")
	}
	if len(result) != len(dst) {
		return errors.Errorf("DecompressZstd: decoded %v bytes, expected %v", len(result), len(dst))
	}
	// the decoder may have grown a new buffer instead of filling dst
	copy(dst, result)
	return nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

type Compressor struct{}

func (compressor Compressor) Compress(src []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	return encoder.EncodeAll(src, nil), nil
}

func (compressor Compressor) AlgorithmName() string {
	return AlgorithmName
}
