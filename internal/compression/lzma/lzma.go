package lzma

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"
)

const AlgorithmName = "lzma"

type Decompressor struct{}

func (decompressor Decompressor) Decompress(dst []byte, src []byte) error {
	lzReader, err := lzma.NewReader(bytes.NewReader(src))
	if err != nil {
		return errors.Wrap(err, "DecompressLzma: failed to read header")
	}
	if _, err = io.ReadFull(lzReader, dst); err != nil {
		return errors.Wrap(err, "DecompressLzma: failed to decode block")
	}
	var extra [1]byte
	switch _, err = io.ReadFull(lzReader, extra[:]); err {
	case io.EOF:
		return nil
	case nil:
		return errors.Errorf("DecompressLzma: block decodes to more than %v bytes", len(dst))
	default:
		return errors.Wrap(err, "DecompressLzma: failed to decode block")
	}
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

type Compressor struct{}

func (compressor Compressor) Compress(src []byte) ([]byte, error) {
	var compressed bytes.Buffer
	lzWriter, err := lzma.NewWriter(&compressed)
	if err != nil {
		return nil, err
	}
	if _, err = lzWriter.Write(src); err != nil {
		return nil, errors.Wrap(err, "CompressLzma: lzma write failed")
	}
	if err = lzWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "CompressLzma: lzma close failed")
	}
	return compressed.Bytes(), nil
}

func (compressor Compressor) AlgorithmName() string {
	return AlgorithmName
}
