package eval

import (
	"fmt"
	"math"
)

const (
	bleuTiny  = 1e-15
	bleuSmall = 1e-9
)

// Bleu computes BLEU-1 to BLEU-N with the reference length closest to
// each hypothesis.
type Bleu struct {
	// N is the maximum n-gram order. Zero means 4.
	N int
}

func (b Bleu) order() int {
	if b.N <= 0 {
		return 4
	}
	return b.N
}

// Name implements Scorer.
func (Bleu) Name() string { return "Bleu" }

// Methods implements Scorer.
func (b Bleu) Methods() []string {
	methods := make([]string, b.order())
	for k := range methods {
		methods[k] = fmt.Sprintf("Bleu_%d", k+1)
	}
	return methods
}

type bleuStats struct {
	testLen int
	refLen  int
	guess   []int
	correct []int
}

// Score implements Scorer.
func (b Bleu) Score(gts, res Sentences) (Score, error) {
	ids, hyps, refs, err := prepare(gts, res)
	if err != nil {
		return Score{}, err
	}

	n := b.order()
	methods := b.Methods()
	out := newScore(methods, ids)

	total := bleuStats{guess: make([]int, n), correct: make([]int, n)}
	for _, id := range ids {
		st := b.cook(hyps[id], refs[id])

		total.testLen += st.testLen
		total.refLen += st.refLen
		for k := 0; k < n; k++ {
			total.guess[k] += st.guess[k]
			total.correct[k] += st.correct[k]
		}

		for k, v := range st.scores(n) {
			out.PerRef[id][methods[k]] = v
		}
	}

	for k, v := range total.scores(n) {
		out.Metrics[methods[k]] = v
	}
	return out, nil
}

func (b Bleu) cook(hyp []string, refs [][]string) bleuStats {
	n := b.order()

	maxCounts := make(map[string]int)
	for _, ref := range refs {
		for g, c := range ngramCounts(ref, n) {
			maxCounts[g] = max(maxCounts[g], c)
		}
	}

	st := bleuStats{
		testLen: len(hyp),
		refLen:  closestLength(refs, len(hyp)),
		guess:   make([]int, n),
		correct: make([]int, n),
	}
	for k := 0; k < n; k++ {
		st.guess[k] = max(0, len(hyp)-k)
	}
	for g, c := range ngramCounts(hyp, n) {
		st.correct[ngramOrder(g)-1] += min(maxCounts[g], c)
	}
	return st
}

// closestLength picks the reference length nearest to testLen, the shorter
// one on ties.
func closestLength(refs [][]string, testLen int) int {
	best := -1
	for _, ref := range refs {
		l := len(ref)
		if best < 0 {
			best = l
			continue
		}
		d, bd := absInt(l-testLen), absInt(best-testLen)
		if d < bd || (d == bd && l < best) {
			best = l
		}
	}
	return max(best, 0)
}

func (st bleuStats) scores(n int) []float64 {
	out := make([]float64, n)
	bleu := 1.0
	for k := 0; k < n; k++ {
		bleu *= (float64(st.correct[k]) + bleuTiny) / (float64(st.guess[k]) + bleuSmall)
		out[k] = math.Pow(bleu, 1/float64(k+1))
	}

	ratio := (float64(st.testLen) + bleuTiny) / (float64(st.refLen) + bleuSmall)
	if ratio < 1 {
		bp := math.Exp(1 - 1/ratio)
		for k := range out {
			out[k] *= bp
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
