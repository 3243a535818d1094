// Package tagging derives topic tags from a corpus of redacted reviews and
// assigns them back to reviews.
//
// Derivation runs in two phases. Candidate mining counts in how many
// reviews every unigram and bigram of content words occurs; sentiment
// terms are left out so tags describe topics. Clustering then walks the
// candidates by decreasing frequency (ties in lexical order) and merges
// terms sharing a stem key, the most frequent member giving the tag its
// label.
//
// A review gets every tag whose stem key occurs in its text. Reviews
// matching no tag get the fallback tag, so every review carries at least
// one tag.
package tagging

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aladaia/vocan/pkg/textproc"
	"github.com/gnames/gnuuid"
)

// FallbackLabel is the label of the tag given to reviews without any
// derived tag.
const FallbackLabel = "unclassified"

// MinTermRunes is the shortest word considered as a topic term.
const MinTermRunes = 3

// Doc is a redacted review text.
type Doc struct {
	ReviewID string
	Text     string
}

// Tag is a derived topic.
type Tag struct {
	ID    string `json:"tag_id"`
	Label string `json:"label"`
	// Key is the stem key matched against review texts.
	Key     string   `json:"key"`
	Members []string `json:"members"`
	// Frequency is the document frequency of the label term.
	Frequency int `json:"frequency"`
	// SupportCount is the number of reviews the tag is assigned to.
	SupportCount int `json:"support_count"`
	// Coverage is SupportCount divided by the number of reviews.
	Coverage float64  `json:"coverage"`
	Fallback bool     `json:"fallback,omitempty"`
	Samples  []Sample `json:"samples"`
}

// Sample is an example review of a tag.
type Sample struct {
	ReviewID string `json:"review_id"`
	Text     string `json:"text"`
}

// Assignment lists tag IDs of one review in plan order.
type Assignment struct {
	ReviewID string   `json:"review_id"`
	TagIDs   []string `json:"tag_ids"`
}

// Plan is the tagging plan of a run.
type Plan struct {
	Reviews int `json:"reviews"`
	// Candidates is the number of terms that met the minimum support.
	Candidates int `json:"candidates"`
	// DerivedCoverage is the share of reviews carrying a derived tag.
	DerivedCoverage float64 `json:"derived_coverage"`
	// Coverage is the share of reviews carrying any tag, fallback
	// included.
	Coverage float64 `json:"coverage"`
	Tags     []Tag   `json:"tags"`
}

// Deriver mines tags from a corpus. Its zero value is not usable, create it
// with New.
type Deriver struct {
	topK       int
	minSupport int
	stemRunes  int
	maxSamples int
	exclude    func(string) bool
}

// New creates a Deriver with default settings changed by options.
func New(opts ...Option) *Deriver {
	res := &Deriver{
		topK:       16,
		minSupport: 3,
		stemRunes:  5,
		maxSamples: 4,
		exclude:    func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

type candidate struct {
	term string
	key  string
	df   int
}

// Derive builds the tagging plan for docs and assigns tags to every doc.
// Results depend only on the content and order of docs. The returned
// error is a ZeroCoverageWarning when some review ends up without a tag.
func (d *Deriver) Derive(docs []Doc) (Plan, []Assignment, error) {
	cands := d.mine(docs)
	tags := d.cluster(cands)
	tags = append(tags, Tag{
		ID:       TagID(FallbackLabel),
		Label:    FallbackLabel,
		Members:  []string{},
		Fallback: true,
	})

	plan := Plan{Reviews: len(docs), Candidates: len(cands)}
	assigns := make([]Assignment, len(docs))
	fallback := len(tags) - 1
	var derived int

	for i, doc := range docs {
		keys := d.docKeys(doc.Text)
		assigns[i] = Assignment{ReviewID: doc.ReviewID, TagIDs: []string{}}
		for j := range fallback {
			if _, ok := keys[tags[j].Key]; ok {
				d.assign(&tags[j], &assigns[i], doc)
			}
		}
		if len(assigns[i].TagIDs) > 0 {
			derived++
			continue
		}
		d.assign(&tags[fallback], &assigns[i], doc)
	}

	for i := range tags {
		tags[i].Coverage = share(tags[i].SupportCount, len(docs))
	}
	plan.Tags = tags
	plan.DerivedCoverage = share(derived, len(docs))

	err := checkCoverage(assigns)
	var covered int
	for _, a := range assigns {
		if len(a.TagIDs) > 0 {
			covered++
		}
	}
	plan.Coverage = share(covered, len(docs))
	if len(docs) == 0 {
		plan.Coverage = 1
	}
	return plan, assigns, err
}

func (d *Deriver) assign(t *Tag, a *Assignment, doc Doc) {
	t.SupportCount++
	a.TagIDs = append(a.TagIDs, t.ID)
	if len(t.Samples) < d.maxSamples {
		t.Samples = append(t.Samples, Sample{ReviewID: doc.ReviewID, Text: doc.Text})
	}
}

// mine returns terms with enough support sorted by frequency, then term.
func (d *Deriver) mine(docs []Doc) []candidate {
	df := make(map[string]int)
	for _, doc := range docs {
		for term := range d.docTerms(doc.Text) {
			df[term]++
		}
	}

	res := make([]candidate, 0, len(df))
	for term, n := range df {
		if n < d.minSupport {
			continue
		}
		res = append(res, candidate{term: term, key: d.key(term), df: n})
	}
	slices.SortFunc(res, func(a, b candidate) int {
		if c := cmp.Compare(b.df, a.df); c != 0 {
			return c
		}
		return strings.Compare(a.term, b.term)
	})
	return res
}

// cluster groups candidates by stem key. The first candidate of a key
// labels the tag. No new tag is started after topK tags exist.
func (d *Deriver) cluster(cands []candidate) []Tag {
	var res []Tag
	idx := make(map[string]int)
	for _, c := range cands {
		if i, ok := idx[c.key]; ok {
			res[i].Members = append(res[i].Members, c.term)
			continue
		}
		if len(res) >= d.topK {
			continue
		}
		idx[c.key] = len(res)
		res = append(res, Tag{
			ID:        TagID(c.term),
			Label:     c.term,
			Key:       c.key,
			Members:   []string{c.term},
			Frequency: c.df,
			Samples:   []Sample{},
		})
	}
	return res
}

// docTerms returns the set of candidate terms of a text: content words
// that are not excluded, and bigrams of two such words standing next to
// each other.
func (d *Deriver) docTerms(text string) map[string]struct{} {
	res := make(map[string]struct{})
	var prev string
	for _, w := range textproc.Words(text) {
		if !d.isTerm(w) {
			prev = ""
			continue
		}
		res[w] = struct{}{}
		if prev != "" {
			res[prev+" "+w] = struct{}{}
		}
		prev = w
	}
	return res
}

// docKeys returns stem keys of all unigrams and adjacent bigrams of
// content words in a text.
func (d *Deriver) docKeys(text string) map[string]struct{} {
	res := make(map[string]struct{})
	var prev string
	for _, w := range textproc.Words(text) {
		if utf8.RuneCountInString(w) < MinTermRunes || textproc.IsStopword(w) {
			prev = ""
			continue
		}
		k := textproc.Stem(w, d.stemRunes)
		res[k] = struct{}{}
		if prev != "" {
			res[prev+" "+k] = struct{}{}
		}
		prev = k
	}
	return res
}

func (d *Deriver) isTerm(w string) bool {
	return utf8.RuneCountInString(w) >= MinTermRunes &&
		!textproc.IsStopword(w) &&
		!d.exclude(w)
}

func (d *Deriver) key(term string) string {
	words := strings.Fields(term)
	for i := range words {
		words[i] = textproc.Stem(words[i], d.stemRunes)
	}
	return strings.Join(words, " ")
}

// TagID returns a stable identifier of a tag label.
func TagID(label string) string {
	return gnuuid.New("tag:" + label).String()
}

func checkCoverage(assigns []Assignment) error {
	for _, a := range assigns {
		if len(a.TagIDs) == 0 {
			return ZeroCoverageWarning(a.ReviewID)
		}
	}
	return nil
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
