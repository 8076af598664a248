package none

import "github.com/pkg/errors"

const AlgorithmName = "none"

// Decompressor treats the block as already expanded.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(dst []byte, src []byte) error {
	if len(src) != len(dst) {
		return errors.Errorf("DecompressNone: block holds %v bytes, expected %v", len(src), len(dst))
	}
	copy(dst, src)
	return nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

type Compressor struct{}

func (compressor Compressor) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (compressor Compressor) AlgorithmName() string {
	return AlgorithmName
}
