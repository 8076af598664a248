package replayparser

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ureplay/ureplay/internal/versions"
	"github.com/wal-g/tracelog"
)

type InvalidContainerError struct {
	error
}

func NewInvalidContainerError(what string, magic uint32, expected uint32) InvalidContainerError {
	return InvalidContainerError{errors.Errorf("invalid %s magic: 0x%08X, expected 0x%08X", what, magic, expected)}
}

func (err InvalidContainerError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type EncryptionStateError struct {
	error
}

func NewEncryptionStateError(isLive bool, keyLength int) EncryptionStateError {
	if isLive {
		return EncryptionStateError{errors.New("replay is marked encrypted but not yet marked as completed")}
	}
	return EncryptionStateError{errors.Errorf("completed replay is marked encrypted but has a key of %d bytes", keyLength)}
}

func (err EncryptionStateError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type InvalidChunkSizeError struct {
	error
}

func NewInvalidChunkSizeError(chunkType ChunkType, offset int, size int32, remaining int) InvalidChunkSizeError {
	return InvalidChunkSizeError{errors.Errorf("%v chunk at offset %d declares size %d, %d bytes remain",
		chunkType, offset, size, remaining)}
}

func (err InvalidChunkSizeError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type UnsupportedNetworkVersionError struct {
	error
}

func NewUnsupportedNetworkVersionError(version versions.NetworkVersion) UnsupportedNetworkVersionError {
	return UnsupportedNetworkVersionError{errors.Errorf("network version %d is older than the minimum supported %d",
		uint32(version), uint32(versions.MinNetworkVersion))}
}

func (err UnsupportedNetworkVersionError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type DecompressorNotConfiguredError struct {
	error
}

func NewDecompressorNotConfiguredError() DecompressorNotConfiguredError {
	return DecompressorNotConfiguredError{errors.New("replay is compressed but no decompressor is configured")}
}

func (err DecompressorNotConfiguredError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type ConcurrentParseNotSupportedError struct {
	error
}

func NewConcurrentParseNotSupportedError() ConcurrentParseNotSupportedError {
	return ConcurrentParseNotSupportedError{errors.New("reader is already parsing a replay, use one reader per goroutine")}
}

func (err ConcurrentParseNotSupportedError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type EventHandlerPanicError struct {
	error
}

func NewEventHandlerPanicError(key EventKey, recovered interface{}) EventHandlerPanicError {
	return EventHandlerPanicError{errors.Errorf("handler of %v panicked: %v", key, recovered)}
}

func (err EventHandlerPanicError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
