package eval

import (
	"math"

	"github.com/hupe1980/refer/model"
)

// Cider computes CIDEr-D: tf-idf weighted n-gram similarity with clipped
// hypothesis counts and a gaussian length penalty, scaled by 10.
//
// Document frequencies come from the references being scored, so the
// corpus must hold more than one ref for the idf term to be informative.
type Cider struct {
	// N is the maximum n-gram order. Zero means 4.
	N int
	// Sigma is the deviation of the length penalty. Zero means 6.
	Sigma float64
}

// Name implements Scorer.
func (Cider) Name() string { return "CIDEr" }

// Methods implements Scorer.
func (Cider) Methods() []string { return []string{"CIDEr"} }

type tfidf struct {
	vec    []map[string]float64
	norm   []float64
	length float64
}

// Score implements Scorer. The corpus score is the mean over refs.
func (c Cider) Score(gts, res Sentences) (Score, error) {
	ids, hyps, refs, err := prepare(gts, res)
	if err != nil {
		return Score{}, err
	}

	n := c.N
	if n <= 0 {
		n = 4
	}
	sigma := c.Sigma
	if sigma == 0 {
		sigma = 6
	}

	refCounts := make(map[model.RefID][]map[string]int, len(ids))
	docFreq := make(map[string]float64)
	for _, id := range ids {
		seen := make(map[string]struct{})
		for _, ref := range refs[id] {
			counts := ngramCounts(ref, n)
			refCounts[id] = append(refCounts[id], counts)
			for g := range counts {
				seen[g] = struct{}{}
			}
		}
		for g := range seen {
			docFreq[g]++
		}
	}
	refLen := math.Log(float64(len(ids)))

	vectorize := func(counts map[string]int) tfidf {
		v := tfidf{vec: make([]map[string]float64, n), norm: make([]float64, n)}
		for k := range v.vec {
			v.vec[k] = make(map[string]float64)
		}
		for g, tf := range counts {
			k := ngramOrder(g) - 1
			df := math.Log(max(1, docFreq[g]))
			w := float64(tf) * (refLen - df)
			v.vec[k][g] = w
			v.norm[k] += w * w
			// Length is measured in bigrams.
			if k == 1 {
				v.length += float64(tf)
			}
		}
		for k := range v.norm {
			v.norm[k] = math.Sqrt(v.norm[k])
		}
		return v
	}

	out := newScore(c.Methods(), ids)
	scores := make([]float64, 0, len(ids))
	for _, id := range ids {
		hyp := vectorize(ngramCounts(hyps[id], n))

		sum := make([]float64, n)
		for _, counts := range refCounts[id] {
			ref := vectorize(counts)
			for k, v := range ciderSim(hyp, ref, sigma) {
				sum[k] += v
			}
		}

		s := mean(sum) / float64(len(refCounts[id])) * 10
		out.PerRef[id]["CIDEr"] = s
		scores = append(scores, s)
	}
	out.Metrics["CIDEr"] = mean(scores)
	return out, nil
}

func ciderSim(hyp, ref tfidf, sigma float64) []float64 {
	delta := hyp.length - ref.length
	penalty := math.Exp(-(delta * delta) / (2 * sigma * sigma))

	val := make([]float64, len(hyp.vec))
	for k := range hyp.vec {
		for g, w := range hyp.vec[k] {
			r := ref.vec[k][g]
			val[k] += min(w, r) * r
		}
		if hyp.norm[k] != 0 && ref.norm[k] != 0 {
			val[k] /= hyp.norm[k] * ref.norm[k]
		}
		val[k] *= penalty
	}
	return val
}
