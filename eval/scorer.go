package eval

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/refer/model"
)

var (
	// ErrNoResults is returned when there is nothing to score.
	ErrNoResults = errors.New("eval: no results")
	// ErrMismatchedRefs is returned when hypotheses and references cover different refs.
	ErrMismatchedRefs = errors.New("eval: hypotheses and references cover different refs")
	// ErrHypothesisCount is returned when a ref has not exactly one hypothesis.
	ErrHypothesisCount = errors.New("eval: expected exactly one hypothesis per ref")
)

// Sentences maps a ref to its sentences. Each sentence is a string of
// tokens separated by single spaces, as produced by TokenizeJoined.
type Sentences map[model.RefID][]string

// Score is the output of one scorer.
type Score struct {
	// Metrics maps a method name such as "Bleu_4" to the corpus score.
	Metrics map[string]float64
	// PerRef maps a ref to its per-method scores.
	PerRef map[model.RefID]map[string]float64
}

func newScore(methods []string, ids []model.RefID) Score {
	s := Score{
		Metrics: make(map[string]float64, len(methods)),
		PerRef:  make(map[model.RefID]map[string]float64, len(ids)),
	}
	for _, id := range ids {
		s.PerRef[id] = make(map[string]float64, len(methods))
	}
	return s
}

// Scorer computes one family of metrics.
type Scorer interface {
	// Name identifies the scorer in logs, e.g. "Bleu".
	Name() string
	// Methods lists the metric names the scorer fills, in report order.
	Methods() []string
	// Score compares one hypothesis per ref in res with the references in gts.
	Score(gts, res Sentences) (Score, error)
}

// DefaultScorers returns BLEU-4, METEOR, ROUGE-L and CIDEr-D in that order.
func DefaultScorers() []Scorer {
	return []Scorer{Bleu{N: 4}, Meteor{}, Rouge{}, Cider{}}
}

// prepare validates gts and res and returns the ref ids in ascending order
// together with the split hypothesis and reference token lists.
func prepare(gts, res Sentences) ([]model.RefID, map[model.RefID][]string, map[model.RefID][][]string, error) {
	if len(res) == 0 {
		return nil, nil, nil, ErrNoResults
	}
	if len(gts) != len(res) {
		return nil, nil, nil, ErrMismatchedRefs
	}

	ids := make([]model.RefID, 0, len(res))
	hyps := make(map[model.RefID][]string, len(res))
	refs := make(map[model.RefID][][]string, len(gts))
	for id, hyp := range res {
		if len(hyp) != 1 {
			return nil, nil, nil, fmt.Errorf("ref %d has %d: %w", id, len(hyp), ErrHypothesisCount)
		}
		gt, ok := gts[id]
		if !ok || len(gt) == 0 {
			return nil, nil, nil, fmt.Errorf("ref %d: %w", id, ErrMismatchedRefs)
		}

		ids = append(ids, id)
		hyps[id] = strings.Fields(hyp[0])
		for _, s := range gt {
			refs[id] = append(refs[id], strings.Fields(s))
		}
	}
	slices.Sort(ids)
	return ids, hyps, refs, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
