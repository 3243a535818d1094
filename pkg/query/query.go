// Package query answers fixed-intent questions about the results of a
// pipeline run.
//
// The engine only reads a Bundle of already computed artifacts. It never
// recomputes statistics, and its answers are plain French text.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/aladaia/vocan/pkg/aggregate"
	"github.com/aladaia/vocan/pkg/quality"
	"github.com/aladaia/vocan/pkg/tagging"
	"github.com/aladaia/vocan/pkg/textproc"
	"github.com/dustin/go-humanize"
)

// DefaultLimit is the number of stores listed in rankings.
const DefaultLimit = 5

// Bundle holds the artifacts of one run.
type Bundle struct {
	Summary aggregate.Summary
	Stores  []aggregate.StoreStats
	Zones   []aggregate.ZoneStats
	Tags    []aggregate.TagStats
	Quality quality.Report
	Plan    tagging.Plan
}

// Engine answers questions from a Bundle.
type Engine struct {
	b *Bundle
}

// New creates an Engine over a bundle.
func New(b *Bundle) *Engine {
	return &Engine{b: b}
}

// Answer is the reply to a question.
type Answer struct {
	Query Query
	Text  string
}

// Ask detects the intent of a question and answers it. For a question it
// cannot map to an intent it returns the help text with an
// UnknownIntentError.
func (e *Engine) Ask(question string) (Answer, error) {
	q := e.Detect(question)
	res := Answer{Query: q}

	switch q.Intent {
	case GlobalSummary:
		res.Text = e.globalSummary()
	case ZoneComparison:
		res.Text = e.zoneComparison()
	case TopStores:
		res.Text = e.ranking(q.Limit, true)
	case BottomStores:
		res.Text = e.ranking(q.Limit, false)
	case TagDeepDive:
		res.Text = e.tagDeepDive(q.Arg)
	case QualityCheck:
		res.Text = e.qualityCheck()
	case TaggingPlan:
		res.Text = e.taggingPlan()
	case StoreLookup:
		res.Text = e.storeLookup(q.Arg)
	case RegionLookup:
		res.Text = e.regionLookup(q.Arg)
	case SampleVerbatim:
		res.Text = e.samples(q.Arg, q.Limit)
	case Help:
		res.Text = helpText()
	default:
		res.Text = helpText()
		return res, UnknownIntentError(question)
	}
	return res, nil
}

func (e *Engine) globalSummary() string {
	s := e.b.Summary
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s avis, %s magasins (%s avec avis)\n",
		count(s.ReviewCount), count(s.StoreCount), count(s.StoresWithReviews))
	fmt.Fprintf(&sb, "Note moyenne : %s/5, NPS : %s\n",
		rating(s.MeanRating), nps(s.NPS))
	fmt.Fprintf(&sb, "Sentiment : positif %s, neutre %s, négatif %s\n",
		pct(s.PositiveShare), pct(s.NeutralShare), pct(s.NegativeShare))
	if s.Best != nil {
		fmt.Fprintf(&sb, "Meilleur magasin : %s (%.2f/5, %d avis)\n",
			s.Best.Name, s.Best.MeanRating, s.Best.ReviewCount)
	}
	if s.Worst != nil {
		fmt.Fprintf(&sb, "Magasin le moins bien noté : %s (%.2f/5, %d avis)\n",
			s.Worst.Name, s.Worst.MeanRating, s.Worst.ReviewCount)
	}
	fmt.Fprintf(&sb, "Qualité de l'analyse : %s", e.b.Quality.Grade)
	return sb.String()
}

func (e *Engine) zoneComparison() string {
	var sb strings.Builder
	sb.WriteString("Comparaison des zones :\n")
	for _, z := range e.b.Zones {
		fmt.Fprintf(&sb, "  %s : %s/5, NPS %s, %s avis, %d magasins\n",
			z.Zone, rating(z.MeanRating), nps(z.NPS), count(z.ReviewCount), z.StoreCount)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ranking lists stores with reviews by mean rating. Ties are broken by
// review count, then store ID, as in the summary.
func (e *Engine) ranking(limit int, best bool) string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var rated []aggregate.StoreStats
	for _, st := range e.b.Stores {
		if st.MeanRating != nil {
			rated = append(rated, st)
		}
	}
	slices.SortStableFunc(rated, func(a, b aggregate.StoreStats) int {
		c := cmp.Compare(*a.MeanRating, *b.MeanRating)
		if best {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c = cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
			return c
		}
		return cmp.Compare(a.StoreID, b.StoreID)
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}
	if len(rated) == 0 {
		return "Aucun magasin n'a d'avis."
	}

	var sb strings.Builder
	if best {
		fmt.Fprintf(&sb, "Les %d meilleurs magasins :\n", len(rated))
	} else {
		fmt.Fprintf(&sb, "Les %d magasins les moins bien notés :\n", len(rated))
	}
	for i, st := range rated {
		fmt.Fprintf(&sb, "  %d. %s (%s) : %s/5, NPS %s, %s avis\n",
			i+1, st.Name, st.City, rating(st.MeanRating), nps(st.NPS), count(st.ReviewCount))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Engine) tagDeepDive(label string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Thème « %s »\n", label)
	for _, ts := range e.b.Tags {
		if ts.Label != label {
			continue
		}
		fmt.Fprintf(&sb, "  %s avis (%s du corpus), note moyenne %s/5",
			count(ts.Count), pctv(ts.Share), rating(ts.MeanRating))
		if ts.RatingDelta != nil {
			fmt.Fprintf(&sb, " (%+.2f vs moyenne)", *ts.RatingDelta)
		}
		fmt.Fprintf(&sb, "\n  positif %s, négatif %s\n",
			pct(ts.PositiveShare), pct(ts.NegativeShare))
	}
	if t, ok := e.planTag(label); ok && len(t.Members) > 1 {
		fmt.Fprintf(&sb, "  termes regroupés : %s\n", strings.Join(t.Members, ", "))
	}

	var stores []string
	for _, st := range e.b.Stores {
		for _, tc := range st.TagCounts {
			if tc.Label == label {
				stores = append(stores, fmt.Sprintf("%s (%d)", st.Name, tc.Count))
			}
		}
	}
	if len(stores) > 0 {
		fmt.Fprintf(&sb, "  magasins concernés : %s\n", strings.Join(stores, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Engine) qualityCheck() string {
	r := e.b.Quality
	var sb strings.Builder
	fmt.Fprintf(&sb, "Qualité de l'analyse de sentiment : %s\n", r.Grade)
	fmt.Fprintf(&sb, "  accord avec les notes : %s (%d/%d avis, règle note 3 : %s)\n",
		pct(r.AgreementRate), r.Agreed, r.Counted, r.Policy)
	fmt.Fprintf(&sb, "  couverture du lexique : %s\n", pctv(r.LexiconCoverage))
	fmt.Fprintf(&sb, "  avis neutres : %s", pctv(r.NeutralRate))
	return sb.String()
}

func (e *Engine) taggingPlan() string {
	p := e.b.Plan
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan de tagging : %d tags, couverture %s (tags dérivés %s)\n",
		len(p.Tags), pctv(p.Coverage), pctv(p.DerivedCoverage))
	for _, t := range p.Tags {
		fmt.Fprintf(&sb, "  %s : %s avis (%s)\n", t.Label, count(t.SupportCount), pctv(t.Coverage))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Engine) storeLookup(id string) string {
	for _, st := range e.b.Stores {
		if st.StoreID != id {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s, %s (%s, %s)\n", st.Name, st.City, st.Zone, st.Region)
		fmt.Fprintf(&sb, "  %s avis, note moyenne %s/5, NPS %s\n",
			count(st.ReviewCount), rating(st.MeanRating), nps(st.NPS))
		fmt.Fprintf(&sb, "  positif %s, négatif %s\n",
			pct(st.PositiveShare), pct(st.NegativeShare))
		if len(st.TopTags) > 0 {
			fmt.Fprintf(&sb, "  thèmes principaux : %s\n", strings.Join(st.TopTags, ", "))
		}
		return strings.TrimRight(sb.String(), "\n")
	}
	return fmt.Sprintf("Magasin %s inconnu.", id)
}

func (e *Engine) regionLookup(region string) string {
	key := textproc.Fold(region)
	var sb strings.Builder
	var n, reviews int
	var sum float64
	for _, st := range e.b.Stores {
		if textproc.Fold(st.Region) != key && textproc.Fold(st.City) != key {
			continue
		}
		n++
		reviews += st.ReviewCount
		if st.MeanRating != nil {
			sum += *st.MeanRating * float64(st.ReviewCount)
		}
		fmt.Fprintf(&sb, "  %s (%s) : %s/5, %s avis\n",
			st.Name, st.City, rating(st.MeanRating), count(st.ReviewCount))
	}

	var mean *float64
	if reviews > 0 {
		m := sum / float64(reviews)
		mean = &m
	}
	head := fmt.Sprintf("%s : %d magasins, %s avis, note moyenne %s/5\n",
		region, n, count(reviews), rating(mean))
	return strings.TrimRight(head+sb.String(), "\n")
}

func (e *Engine) samples(label string, limit int) string {
	t, ok := e.planTag(label)
	if !ok || len(t.Samples) == 0 {
		return fmt.Sprintf("Aucun avis pour le thème « %s ».", label)
	}
	ss := t.Samples
	if limit > 0 && len(ss) > limit {
		ss = ss[:limit]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Exemples pour « %s » :\n", label)
	for _, s := range ss {
		fmt.Fprintf(&sb, "  [%s] %q\n", s.ReviewID, s.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (e *Engine) planTag(label string) (tagging.Tag, bool) {
	for _, t := range e.b.Plan.Tags {
		if t.Label == label {
			return t, true
		}
	}
	return tagging.Tag{}, false
}

func helpText() string {
	return `Questions possibles :
  résumé global
  comparer les zones
  les 5 meilleurs magasins / les pires magasins
  analyse du thème <tag>
  exemples pour <tag>
  qualité du NLP
  plan de tagging
  détail <nom du magasin>
  magasins à <ville ou région>`
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func rating(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func nps(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.0f", *v)
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return pctv(*v)
}

func pctv(v float64) string {
	return fmt.Sprintf("%.1f%%", 100*v)
}
