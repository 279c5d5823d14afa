package eval

// Rouge computes ROUGE-L, the LCS based F-measure with recall weighted by
// Beta.
type Rouge struct {
	// Beta weights recall over precision. Zero means 1.2.
	Beta float64
}

// Name implements Scorer.
func (Rouge) Name() string { return "Rouge" }

// Methods implements Scorer.
func (Rouge) Methods() []string { return []string{"ROUGE_L"} }

// Score implements Scorer. The corpus score is the mean over refs.
func (r Rouge) Score(gts, res Sentences) (Score, error) {
	ids, hyps, refs, err := prepare(gts, res)
	if err != nil {
		return Score{}, err
	}

	beta := r.Beta
	if beta == 0 {
		beta = 1.2
	}

	out := newScore(r.Methods(), ids)
	scores := make([]float64, 0, len(ids))
	for _, id := range ids {
		s := rougeL(hyps[id], refs[id], beta)
		out.PerRef[id]["ROUGE_L"] = s
		scores = append(scores, s)
	}
	out.Metrics["ROUGE_L"] = mean(scores)
	return out, nil
}

func rougeL(cand []string, refs [][]string, beta float64) float64 {
	if len(cand) == 0 {
		return 0
	}

	var precMax, recMax float64
	for _, ref := range refs {
		if len(ref) == 0 {
			continue
		}
		l := float64(lcs(ref, cand))
		precMax = max(precMax, l/float64(len(cand)))
		recMax = max(recMax, l/float64(len(ref)))
	}
	if precMax == 0 || recMax == 0 {
		return 0
	}

	b2 := beta * beta
	return ((1 + b2) * precMax * recMax) / (recMax + b2*precMax)
}

// lcs returns the length of the longest common subsequence of a and b.
func lcs(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
