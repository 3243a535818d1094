package aggregate

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingStoreError is returned when a review refers to a store without
// metadata.
func MissingStoreError(reviewID, storeID string) error {
	msg := "Cannot aggregate review <em>%s</em>: store <em>%s</em> is unknown"
	return &gn.Error{
		Code: errcode.AggregateMissingStoreError,
		Msg:  msg,
		Vars: []any{reviewID, storeID},
		Err:  fmt.Errorf("review %s: no metadata for store %q", reviewID, storeID),
	}
}
