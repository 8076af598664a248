package zlib

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

const AlgorithmName = "zlib"

type Decompressor struct{}

func (decompressor Decompressor) Decompress(dst []byte, src []byte) error {
	zReader, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return errors.Wrap(err, "DecompressZlib: failed to read header")
	}
	defer zReader.Close()
	if _, err = io.ReadFull(zReader, dst); err != nil {
		return errors.Wrap(err, "DecompressZlib: failed to decode block")
	}
	// reading on to the end also verifies the checksum
	var extra [1]byte
	switch _, err = io.ReadFull(zReader, extra[:]); err {
	case io.EOF:
		return nil
	case nil:
		return errors.Errorf("DecompressZlib: block decodes to more than %v bytes", len(dst))
	default:
		return errors.Wrap(err, "DecompressZlib: failed to decode block")
	}
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

type Compressor struct{}

func (compressor Compressor) Compress(src []byte) ([]byte, error) {
	var compressed bytes.Buffer
	zWriter := zlib.NewWriter(&compressed)
	if _, err := zWriter.Write(src); err != nil {
		return nil, errors.Wrap(err, "CompressZlib: zlib write failed")
	}
	if err := zWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "CompressZlib: zlib close failed")
	}
	return compressed.Bytes(), nil
}

func (compressor Compressor) AlgorithmName() string {
	return AlgorithmName
}
