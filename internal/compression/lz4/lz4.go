package lz4

import (
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

const AlgorithmName = "lz4"

// Decompressor expands raw lz4 blocks without frame headers.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(dst []byte, src []byte) error {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return errors.Wrap(err, "DecompressLz4: failed to decode block")
	}
	if n != len(dst) {
		return errors.Errorf("DecompressLz4: decoded %v bytes, expected %v", n, len(dst))
	}
	return nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

type Compressor struct{}

func (compressor Compressor) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var blockCompressor lz4.Compressor
	n, err := blockCompressor.CompressBlock(src, dst)
	if err != nil {
		return nil, errors.Wrap(err, "CompressLz4: failed to encode block")
	}
	return dst[:n], nil
}

func (compressor Compressor) AlgorithmName() string {
	return AlgorithmName
}
