package quality

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// InsufficientDataError is returned when no review has a rating that can
// be compared with its sentiment label.
func InsufficientDataError(total int, p Policy) error {
	msg := "Not enough data to grade sentiment: %d reviews, none with an unambiguous rating"
	return &gn.Error{
		Code: errcode.QualityInsufficientDataError,
		Msg:  msg,
		Vars: []any{total},
		Err: fmt.Errorf(
			"agreement denominator is zero (%d reviews, rating3 policy %s)",
			total, p,
		),
	}
}
