package netstream

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

type MalformedExternalDataError struct {
	error
}

func NewMalformedExternalDataError(netGUID uint32, numBits uint32) MalformedExternalDataError {
	return MalformedExternalDataError{
		errors.Errorf("external data for net guid %v declares %v bits, which is less than its 3 byte prefix",
			netGUID,
			numBits)}
}

func (err MalformedExternalDataError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type InvalidExportSizeError struct {
	error
}

func NewInvalidExportSizeError(size int32) InvalidExportSizeError {
	return InvalidExportSizeError{errors.Errorf("invalid net guid export size: %v", size)}
}

func (err InvalidExportSizeError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type GameSpecificDataTooLongError struct {
	error
}

func NewGameSpecificDataTooLongError(size uint64, remaining int) GameSpecificDataTooLongError {
	return GameSpecificDataTooLongError{
		errors.Errorf("game specific frame data of %v bytes exceeds the %v bytes left in the block", size, remaining)}
}

func (err GameSpecificDataTooLongError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
