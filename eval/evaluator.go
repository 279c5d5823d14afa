package eval

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/refer"
	"github.com/hupe1980/refer/model"
)

// RefSource supplies the ground truth refs. *refer.Refer satisfies it.
type RefSource interface {
	LoadRefs(ids ...model.RefID) ([]model.Ref, error)
}

// Result is one generated expression for a ref.
type Result struct {
	RefID model.RefID `json:"ref_id" yaml:"ref_id"`
	Sent  string      `json:"sent" yaml:"sent"`
}

// RefEval holds every metric of one ref.
type RefEval struct {
	RefID  model.RefID        `json:"ref_id" yaml:"ref_id"`
	Scores map[string]float64 `json:"scores" yaml:"scores"`
}

// Evaluation is the outcome of Evaluate.
type Evaluation struct {
	// Methods lists the metric names in scorer order.
	Methods []string `json:"methods" yaml:"methods"`
	// Eval maps a metric to its corpus score.
	Eval map[string]float64 `json:"eval" yaml:"eval"`
	// RefToEval maps a ref to its per-metric scores.
	RefToEval map[model.RefID]map[string]float64 `json:"-" yaml:"-"`
	// EvalRefs holds the per-ref scores sorted by ref id.
	EvalRefs []RefEval `json:"eval_refs" yaml:"eval_refs"`
	// Gts and Res are the tokenized references and hypotheses.
	Gts Sentences `json:"-" yaml:"-"`
	Res Sentences `json:"-" yaml:"-"`
}

// Evaluator scores a set of results against a RefSource.
type Evaluator struct {
	src     RefSource
	results []Result
	opts    options
}

// NewEvaluator creates an Evaluator. When a ref has several results the
// last one is scored.
func NewEvaluator(src RefSource, results []Result, optFns ...Option) *Evaluator {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Evaluator{
		src:     src,
		results: slices.Clone(results),
		opts:    opts,
	}
}

// Evaluate tokenizes the sentences and runs every scorer concurrently.
// Unknown ref ids fail with the error of the RefSource.
func (e *Evaluator) Evaluate(ctx context.Context) (*Evaluation, error) {
	if len(e.results) == 0 {
		return nil, ErrNoResults
	}

	gts, res, err := e.collect()
	if err != nil {
		return nil, err
	}

	scores := make([]Score, len(e.opts.scorers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.concurrency)
	for i, s := range e.opts.scorers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			sc, err := s.Score(gts, res)
			elapsed := time.Since(start)
			if err != nil {
				e.opts.metricsCollector.RecordEvaluate(s.Name(), elapsed, err)
				e.opts.logger.LogEvaluate(gctx, s.Name(), 0, err)
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			for _, m := range s.Methods() {
				e.opts.metricsCollector.RecordEvaluate(m, elapsed, nil)
			}
			scores[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Evaluation{
		Eval:      make(map[string]float64),
		RefToEval: make(map[model.RefID]map[string]float64, len(res)),
		Gts:       gts,
		Res:       res,
	}
	for i, s := range e.opts.scorers {
		for _, m := range s.Methods() {
			out.Methods = append(out.Methods, m)
			out.Eval[m] = scores[i].Metrics[m]
			e.opts.logger.LogEvaluate(ctx, m, out.Eval[m], nil)
		}
		for id, per := range scores[i].PerRef {
			if out.RefToEval[id] == nil {
				out.RefToEval[id] = make(map[string]float64)
			}
			maps.Copy(out.RefToEval[id], per)
		}
	}

	ids := slices.Sorted(maps.Keys(out.RefToEval))
	out.EvalRefs = make([]RefEval, 0, len(ids))
	for _, id := range ids {
		out.EvalRefs = append(out.EvalRefs, RefEval{RefID: id, Scores: maps.Clone(out.RefToEval[id])})
	}
	return out, nil
}

func (e *Evaluator) collect() (Sentences, Sentences, error) {
	hyp := make(map[model.RefID]string, len(e.results))
	for _, r := range e.results {
		hyp[r.RefID] = r.Sent
	}
	ids := slices.Sorted(maps.Keys(hyp))

	refs, err := e.src.LoadRefs(ids...)
	if err != nil {
		return nil, nil, err
	}

	gts := make(Sentences, len(ids))
	res := make(Sentences, len(ids))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.opts.concurrency)
	for _, ref := range refs {
		g.Go(func() error {
			toks := make([]string, 0, len(ref.Sentences))
			for _, s := range ref.Sentences {
				toks = append(toks, TokenizeJoined(s.Sent))
			}
			h := TokenizeJoined(hyp[ref.ID])

			mu.Lock()
			gts[ref.ID] = toks
			res[ref.ID] = []string{h}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	e.opts.logger.DebugContext(context.Background(), "tokenization completed", "refs", len(ids))
	return gts, res, nil
}

// Evaluate is a shorthand for NewEvaluator(src, results, optFns...).Evaluate(ctx).
func Evaluate(ctx context.Context, src RefSource, results []Result, optFns ...Option) (*Evaluation, error) {
	return NewEvaluator(src, results, optFns...).Evaluate(ctx)
}

var _ RefSource = (*refer.Refer)(nil)
