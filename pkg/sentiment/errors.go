package sentiment

import (
	"errors"
	"fmt"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// LexiconDecodeError is returned when a lexicon file is not valid YAML.
func LexiconDecodeError(err error) error {
	msg := "Cannot read sentiment lexicon"
	return &gn.Error{
		Code: errcode.LexiconLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot decode lexicon: %w", err),
	}
}

// LexiconEmptyError is returned for a lexicon without polarity terms.
func LexiconEmptyError() error {
	msg := `Sentiment lexicon has no terms

<em>How to fix:</em>
  Add 'positive' and 'negative' lists to the lexicon file`
	return &gn.Error{
		Code: errcode.LexiconLoadError,
		Msg:  msg,
		Err:  errors.New("lexicon has no positive or negative terms"),
	}
}
