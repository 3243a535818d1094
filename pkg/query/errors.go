package query

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownIntentError is returned for a question that matches no intent.
func UnknownIntentError(question string) error {
	msg := "Cannot understand the question '%s', try 'vocan ask aide'"
	return &gn.Error{
		Code: errcode.QueryUnknownIntentError,
		Msg:  msg,
		Vars: []any{question},
		Err:  fmt.Errorf("no intent matches %q", question),
	}
}
