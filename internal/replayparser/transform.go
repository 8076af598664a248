package replayparser

import (
	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/archive"
)

// decrypt reads size bytes at the current position into a derived archive, decrypting them if the replay is encrypted.
func (session *parseSession) decrypt(ar *archive.Archive, size int) (*archive.Archive, error) {
	payload, err := ar.ReadBytes(size)
	if err != nil {
		return nil, err
	}
	if !session.replay.Info.Encrypted {
		return ar.Derive(payload), nil
	}
	plaintext, err := session.reader.decrypter.Decrypt(session.replay.Info.EncryptionKey, payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decrypt %d bytes with %s", size, session.reader.decrypter.Name())
	}
	return ar.Derive(plaintext), nil
}

// decompress expands a decrypted block of a compressed replay. Uncompressed replays pass through unchanged.
func (session *parseSession) decompress(ar *archive.Archive) (*archive.Archive, error) {
	if !session.replay.Info.IsCompressed {
		return ar, nil
	}
	decompressedSize, err := ar.ReadInt32()
	if err != nil {
		return nil, err
	}
	compressedSize, err := ar.ReadInt32()
	if err != nil {
		return nil, err
	}
	if decompressedSize < 0 {
		return nil, archive.NewInvalidLengthError("decompressed block", int64(decompressedSize))
	}
	if compressedSize < 0 {
		return nil, archive.NewInvalidLengthError("compressed block", int64(compressedSize))
	}
	decompressor := session.reader.decompressor
	if decompressor == nil {
		return nil, NewDecompressorNotConfiguredError()
	}
	compressed, err := ar.ReadBytes(int(compressedSize))
	if err != nil {
		return nil, err
	}
	decompressed := make([]byte, decompressedSize)
	if err = decompressor.Decompress(decompressed, compressed); err != nil {
		return nil, errors.Wrapf(err, "failed to decompress %d bytes with %s", compressedSize, decompressor.AlgorithmName())
	}
	return ar.Derive(decompressed), nil
}

// resolve decrypts and then decompresses size bytes at offset.
func (session *parseSession) resolve(ar *archive.Archive, offset int, size int) (*archive.Archive, error) {
	if err := ar.Seek(offset); err != nil {
		return nil, err
	}
	decrypted, err := session.decrypt(ar, size)
	if err != nil {
		return nil, err
	}
	return session.decompress(decrypted)
}
