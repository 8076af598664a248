package archive

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

type UnexpectedEndOfDataError struct {
	error
}

func NewUnexpectedEndOfDataError(position int, toRead int, limit int) UnexpectedEndOfDataError {
	return UnexpectedEndOfDataError{
		errors.Errorf("unexpected end of data: position: %v, trying to read: %v, limit: %v",
			position,
			toRead,
			limit)}
}

func (err UnexpectedEndOfDataError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type InvalidSeekError struct {
	error
}

func NewInvalidSeekError(target int, limit int) InvalidSeekError {
	return InvalidSeekError{errors.Errorf("seek target %v is outside of [0, %v]", target, limit)}
}

func (err InvalidSeekError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type InvalidLengthError struct {
	error
}

func NewInvalidLengthError(what string, length int64) InvalidLengthError {
	return InvalidLengthError{errors.Errorf("invalid %s length: %v", what, length)}
}

func (err InvalidLengthError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type BoundOutOfRangeError struct {
	error
}

func NewBoundOutOfRangeError(position int, size int, limit int) BoundOutOfRangeError {
	return BoundOutOfRangeError{
		errors.Errorf("bound of size %v at position %v exceeds current limit %v", size, position, limit)}
}

func (err BoundOutOfRangeError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type UnbalancedBoundError struct {
	error
}

func NewUnbalancedBoundError() UnbalancedBoundError {
	return UnbalancedBoundError{errors.New("popped bound is not the innermost one")}
}

func (err UnbalancedBoundError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

type UnknownNameIndexError struct {
	error
}

func NewUnknownNameIndexError(index uint32) UnknownNameIndexError {
	return UnknownNameIndexError{errors.Errorf("unknown hardcoded name index: %v", index)}
}

func (err UnknownNameIndexError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
