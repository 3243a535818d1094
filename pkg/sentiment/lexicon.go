package sentiment

import (
	_ "embed"
	"io"
	"strings"

	"github.com/aladaia/vocan/pkg/textproc"
	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var defaultLexicon string

// Lexicon holds polarity terms and negators. All terms are normalized.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
	negators map[string]struct{}
}

type lexiconFile struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Negators []string `yaml:"negators"`
}

// DefaultLexicon returns the built-in French retail lexicon.
func DefaultLexicon() *Lexicon {
	lex, err := LoadLexicon(strings.NewReader(defaultLexicon))
	if err != nil {
		panic(err)
	}
	return lex
}

// LoadLexicon reads a lexicon from YAML with the keys positive, negative
// and negators.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	var lf lexiconFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, LexiconDecodeError(err)
	}
	if len(lf.Positive) == 0 && len(lf.Negative) == 0 {
		return nil, LexiconEmptyError()
	}
	return &Lexicon{
		positive: toSet(lf.Positive),
		negative: toSet(lf.Negative),
		negators: toSet(lf.Negators),
	}, nil
}

// Polarity returns +1 for a positive word, -1 for a negative one and 0
// otherwise. Besides the word itself it tries the word without a trailing
// "s" and then without a trailing "e" to match plural and feminine forms.
func (l *Lexicon) Polarity(word string) int {
	for _, w := range variants(word) {
		if _, ok := l.positive[w]; ok {
			return 1
		}
		if _, ok := l.negative[w]; ok {
			return -1
		}
	}
	return 0
}

// IsNegator is true for words that invert the polarity of following
// terms.
func (l *Lexicon) IsNegator(word string) bool {
	_, ok := l.negators[word]
	return ok
}

// IsTerm is true when a word carries polarity.
func (l *Lexicon) IsTerm(word string) bool {
	return l.Polarity(word) != 0
}

// Size returns the number of positive and negative terms.
func (l *Lexicon) Size() (pos, neg int) {
	return len(l.positive), len(l.negative)
}

func variants(word string) []string {
	res := []string{word}
	w := strings.TrimSuffix(word, "s")
	if w != word && w != "" {
		res = append(res, w)
	}
	if v := strings.TrimSuffix(w, "e"); v != w && v != "" {
		res = append(res, v)
	}
	return res
}

func toSet(words []string) map[string]struct{} {
	res := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = textproc.Normalize(w)
		if w == "" {
			continue
		}
		res[w] = struct{}{}
	}
	return res
}
