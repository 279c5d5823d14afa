package eval

import (
	"math"
	"slices"
)

// Meteor computes METEOR with exact unigram matching only.
//
// Each hypothesis is aligned against every reference and the best
// segment score is kept. The corpus score is computed from the summed
// statistics of those best alignments.
type Meteor struct {
	// Alpha, Beta and Gamma are the METEOR parameters. Zero values mean
	// 0.9, 3 and 0.5.
	Alpha, Beta, Gamma float64
}

// Name implements Scorer.
func (Meteor) Name() string { return "METEOR" }

// Methods implements Scorer.
func (Meteor) Methods() []string { return []string{"METEOR"} }

type meteorStats struct {
	matches int
	chunks  int
	hypLen  int
	refLen  int
}

func (m Meteor) params() (alpha, beta, gamma float64) {
	alpha, beta, gamma = m.Alpha, m.Beta, m.Gamma
	if alpha == 0 {
		alpha = 0.9
	}
	if beta == 0 {
		beta = 3
	}
	if gamma == 0 {
		gamma = 0.5
	}
	return alpha, beta, gamma
}

// Score implements Scorer.
func (m Meteor) Score(gts, res Sentences) (Score, error) {
	ids, hyps, refs, err := prepare(gts, res)
	if err != nil {
		return Score{}, err
	}

	out := newScore(m.Methods(), ids)
	var total meteorStats
	for _, id := range ids {
		best, bestScore := meteorStats{}, -1.0
		for _, ref := range refs[id] {
			st := align(hyps[id], ref)
			if s := m.score(st); s > bestScore {
				best, bestScore = st, s
			}
		}
		out.PerRef[id]["METEOR"] = bestScore

		total.matches += best.matches
		total.chunks += best.chunks
		total.hypLen += best.hypLen
		total.refLen += best.refLen
	}
	out.Metrics["METEOR"] = m.score(total)
	return out, nil
}

func (m Meteor) score(st meteorStats) float64 {
	if st.matches == 0 || st.hypLen == 0 || st.refLen == 0 {
		return 0
	}
	alpha, beta, gamma := m.params()

	p := float64(st.matches) / float64(st.hypLen)
	r := float64(st.matches) / float64(st.refLen)
	fmean := p * r / (alpha*p + (1-alpha)*r)

	frag := float64(st.chunks) / float64(st.matches)
	pen := gamma * math.Pow(frag, beta)
	return fmean * (1 - pen)
}

// align matches hypothesis words to unused identical reference words,
// preferring the position right after the previous match so that
// contiguous runs stay in one chunk.
func align(hyp, ref []string) meteorStats {
	st := meteorStats{hypLen: len(hyp), refLen: len(ref)}
	used := make([]bool, len(ref))

	prev := -2
	for _, w := range hyp {
		j := -1
		if next := prev + 1; next >= 0 && next < len(ref) && !used[next] && ref[next] == w {
			j = next
		} else {
			j = slices.IndexFunc(ref, func(r string) bool { return r == w })
			for j >= 0 && used[j] {
				k := slices.Index(ref[j+1:], w)
				if k < 0 {
					j = -1
					break
				}
				j += k + 1
			}
		}

		if j < 0 {
			prev = -2
			continue
		}
		used[j] = true
		st.matches++
		if j != prev+1 {
			st.chunks++
		}
		prev = j
	}
	return st
}
