package iorun

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// CancelledError creates an error for a run interrupted by its context.
func CancelledError(err error) error {
	msg := "Analysis was cancelled, previous artifacts are kept"

	return &gn.Error{
		Code: errcode.RunCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("analysis cancelled: %w", err),
	}
}

// NoOperatorError creates an error for publishing without a database
// operator.
func NoOperatorError() error {
	msg := "Cannot publish results: no database connection was given"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("publish requested without database operator"),
	}
}
