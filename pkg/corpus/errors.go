package corpus

import (
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// RatingRangeError is returned for a rating outside of 1..5.
func RatingRangeError(reviewID string, rating int) error {
	msg := "Review <em>%s</em> has rating %d, expected 1-5"
	return &gn.Error{
		Code: errcode.DataRatingRangeError,
		Msg:  msg,
		Vars: []any{reviewID, rating},
		Err:  fmt.Errorf("review %s: rating %d out of range", reviewID, rating),
	}
}

// EmptyTextError is returned for a review without text.
func EmptyTextError(reviewID string) error {
	msg := "Review <em>%s</em> has no text"
	return &gn.Error{
		Code: errcode.DataEmptyTextError,
		Msg:  msg,
		Vars: []any{reviewID},
		Err:  fmt.Errorf("review %s: empty text", reviewID),
	}
}

// DuplicateReviewError is returned when a review_id repeats.
func DuplicateReviewError(reviewID string) error {
	msg := "Review <em>%s</em> appears more than once, keeping the first"
	return &gn.Error{
		Code: errcode.DataDuplicateReviewError,
		Msg:  msg,
		Vars: []any{reviewID},
		Err:  fmt.Errorf("review %s: duplicate review_id", reviewID),
	}
}

// UnknownStoreError is returned when a review refers to a store missing
// from the store metadata.
func UnknownStoreError(reviewID, storeID string) error {
	msg := `Review <em>%s</em> refers to unknown store <em>%s</em>

<em>How to fix:</em>
  1. Add the store to the stores file
  2. Or remove the review from the reviews file`
	return &gn.Error{
		Code: errcode.DataUnknownStoreError,
		Msg:  msg,
		Vars: []any{reviewID, storeID},
		Err:  fmt.Errorf("review %s: unknown store_id %q", reviewID, storeID),
	}
}

// DuplicateStoreError is returned when store metadata repeats a store_id.
func DuplicateStoreError(storeID string) error {
	msg := "Store <em>%s</em> is described more than once"
	return &gn.Error{
		Code: errcode.DataDuplicateStoreError,
		Msg:  msg,
		Vars: []any{storeID},
		Err:  fmt.Errorf("store %s: duplicate store_id", storeID),
	}
}

// ZoneError is returned for a store with an unrecognized zone.
func ZoneError(storeID, zone string) error {
	msg := `Store <em>%s</em> has unknown zone '%s'
Valid zones: IntraMuros, ExtraMuros, Province`
	return &gn.Error{
		Code: errcode.DataZoneError,
		Msg:  msg,
		Vars: []any{storeID, zone},
		Err:  fmt.Errorf("store %s: unknown zone %q", storeID, zone),
	}
}

// AnonymizedTwiceError guards the write-once anonymized text.
func AnonymizedTwiceError(reviewID string) error {
	msg := "Review <em>%s</em> was already anonymized"
	return &gn.Error{
		Code: errcode.DataDuplicateReviewError,
		Msg:  msg,
		Vars: []any{reviewID},
		Err:  fmt.Errorf("review %s: anonymized text is already set", reviewID),
	}
}
