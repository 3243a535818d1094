package tagging

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// ZeroCoverageWarning reports a review left without any tag.
func ZeroCoverageWarning(reviewID string) error {
	msg := "Review <em>%s</em> has no tag, tag coverage is below 100%%"
	return &gn.Error{
		Code: errcode.TagZeroCoverageWarning,
		Msg:  msg,
		Vars: []any{reviewID},
		Err:  fmt.Errorf("review %s: no tag assigned", reviewID),
	}
}
