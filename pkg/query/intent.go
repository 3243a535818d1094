package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/aladaia/vocan/pkg/textproc"
)

// Intent is a kind of question the engine can answer.
type Intent int

const (
	Unknown Intent = iota
	Help
	GlobalSummary
	ZoneComparison
	TopStores
	BottomStores
	TagDeepDive
	QualityCheck
	TaggingPlan
	StoreLookup
	RegionLookup
	SampleVerbatim
)

var intentNames = [...]string{
	Unknown:        "unknown",
	Help:           "help",
	GlobalSummary:  "global-summary",
	ZoneComparison: "zone-comparison",
	TopStores:      "top-stores",
	BottomStores:   "bottom-stores",
	TagDeepDive:    "tag-deep-dive",
	QualityCheck:   "quality-check",
	TaggingPlan:    "tagging-plan",
	StoreLookup:    "store-lookup",
	RegionLookup:   "region-lookup",
	SampleVerbatim: "sample-verbatim",
}

// String returns the name of the intent.
func (i Intent) String() string {
	if int(i) >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// Keywords are folded (lower case, no accents). French and English forms
// are accepted.
var (
	kwHelp     = []string{"aide", "help", "commandes", "que sais tu faire"}
	kwQuality  = []string{"qualite", "quality"}
	kwNLP      = []string{"fiabilite", "nlp", "accord", "agreement"}
	kwPlan     = []string{"plan", "taxonomie", "tagging", "liste des tags", "tags"}
	kwSample   = []string{"exemple", "exemples", "verbatim", "verbatims", "citation", "citations", "sample", "samples"}
	kwZone     = []string{"zone", "zones", "intra", "extra", "province", "compare", "comparer", "comparaison"}
	kwBottom   = []string{"pire", "pires", "moins bon", "moins bons", "worst", "bottom", "derniers", "flop"}
	kwTop      = []string{"meilleur", "meilleurs", "best", "top", "premiers", "classement"}
	kwSummary  = []string{"resume", "global", "globale", "summary", "synthese", "bilan", "overview"}
	kwStoreAll = []string{"magasin", "magasins", "store", "stores"}
)

// Query is a detected question.
type Query struct {
	Intent Intent
	// Arg is the store ID, region, city or tag label the question is about.
	Arg string
	// Limit is a number found in the question ("les 5 pires magasins").
	Limit int
}

// Detect finds the intent of a question. Checks run from the most
// specific to the most general intent. A bare "qualité" names the NLP
// quality check only when the question names no tag, so "qualité de la
// réparation" asks about the tag.
func (e *Engine) Detect(question string) Query {
	q := fold(question)
	res := Query{Limit: number(q)}

	switch {
	case strings.TrimSpace(q) == "" || hasAny(q, kwHelp):
		res.Intent = Help
	case hasAny(q, kwNLP) || hasAny(q, kwQuality) && e.findTag(q) == "":
		res.Intent = QualityCheck
	case hasAny(q, kwSample):
		res.Intent = SampleVerbatim
		res.Arg = e.findTag(q)
		if res.Arg == "" {
			res.Intent = Unknown
		}
	case hasAny(q, kwPlan) && e.findTag(q) == "":
		res.Intent = TaggingPlan
	default:
		e.detectSubject(q, &res)
	}
	return res
}

func (e *Engine) detectSubject(q string, res *Query) {
	if id := e.findStore(q); id != "" {
		res.Intent, res.Arg = StoreLookup, id
		return
	}
	switch {
	case hasAny(q, kwZone):
		res.Intent = ZoneComparison
	case hasAny(q, kwBottom):
		res.Intent = BottomStores
	case hasAny(q, kwTop) && hasAny(q, kwStoreAll):
		res.Intent = TopStores
	}
	if res.Intent != Unknown {
		return
	}
	if r := e.findRegion(q); r != "" {
		res.Intent, res.Arg = RegionLookup, r
		return
	}
	if t := e.findTag(q); t != "" {
		res.Intent, res.Arg = TagDeepDive, t
		return
	}
	switch {
	case hasAny(q, kwTop):
		res.Intent = TopStores
	case hasAny(q, kwSummary):
		res.Intent = GlobalSummary
	}
}

// findStore returns the ID of the store whose name or ID occurs in q. The
// longest name wins.
func (e *Engine) findStore(q string) string {
	var best string
	var bestLen int
	for _, st := range e.b.Stores {
		for _, s := range []string{st.Name, st.StoreID} {
			f := fold(s)
			if f == "" || len(f) <= bestLen || !hasWord(q, f) {
				continue
			}
			best, bestLen = st.StoreID, len(f)
		}
	}
	return best
}

// findRegion returns the region or city named in q, as spelled in store
// metadata.
func (e *Engine) findRegion(q string) string {
	var best string
	for _, st := range e.b.Stores {
		for _, s := range []string{st.Region, st.City} {
			f := fold(s)
			if f != "" && len(f) > len(fold(best)) && hasWord(q, f) {
				best = s
			}
		}
	}
	return best
}

// findTag returns the label of the tag named in q. A tag matches by its
// label, by any member term, or by the stem key of a question word.
func (e *Engine) findTag(q string) string {
	words := strings.Fields(q)
	for _, t := range e.b.Plan.Tags {
		if t.Fallback {
			continue
		}
		terms := append([]string{t.Label}, t.Members...)
		for _, term := range terms {
			if hasWord(q, fold(term)) {
				return t.Label
			}
		}
		key := fold(t.Key)
		if key != "" && !strings.Contains(key, " ") {
			for _, w := range words {
				if strings.HasPrefix(w, key) {
					return t.Label
				}
			}
		}
	}
	return ""
}

// fold lower-cases s, removes accents and replaces everything but letters
// and digits with single spaces.
func fold(s string) string {
	s = textproc.Fold(s)
	f := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(f, " ")
}

func hasWord(q, w string) bool {
	return strings.Contains(" "+q+" ", " "+w+" ")
}

func hasAny(q string, kws []string) bool {
	return slices.ContainsFunc(kws, func(kw string) bool {
		return hasWord(q, kw)
	})
}

// number returns the first integer in q, or 0.
func number(q string) int {
	for _, f := range strings.Fields(q) {
		if n, err := strconv.Atoi(f); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
