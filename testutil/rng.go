package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/refer/model"
)

// RNG wraps a seeded random source. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Zipf returns a value in [0, n) following a Zipf distribution with exponent s.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	var norm float64
	for i := 1; i <= n; i++ {
		norm += 1 / math.Pow(float64(i), s)
	}
	u := r.rand.Float64() * norm
	var acc float64
	for i := 1; i <= n; i++ {
		acc += 1 / math.Pow(float64(i), s)
		if u <= acc {
			return i - 1
		}
	}
	return n - 1
}

var (
	syntheticCategories = []string{"person", "dog", "car", "chair", "cup", "bicycle", "horse", "umbrella"}
	syntheticSplits     = []string{"train", "train", "train", "train", "val", "testA", "testB"}
	syntheticWords      = []string{"left", "right", "red", "blue", "small", "big", "front", "back", "man", "woman", "dog", "car", "near", "the"}
)

// Dataset generates a synthetic dataset with the given number of images.
// Every image holds 1 to 4 annotations with Zipf-skewed categories; about
// three quarters of the annotations are referred to by one ref with 1 to 3
// sentences.
func (r *RNG) Dataset(name, splitBy string, images int) *model.RawData {
	b := NewBuilder(name, splitBy)
	for i, c := range syntheticCategories {
		b.Category(model.CatID(i+1), c)
	}

	var annID model.AnnID
	var refID model.RefID
	for i := 1; i <= images; i++ {
		h, w := 200+r.Intn(400), 200+r.Intn(400)
		b.Image(model.ImageID(i), fmt.Sprintf("synthetic_%06d.jpg", i), h, w)

		for range 1 + r.Intn(4) {
			annID++
			cat := model.CatID(r.Zipf(len(syntheticCategories), 1.1) + 1)
			bw, bh := 5+r.Intn(w/2), 5+r.Intn(h/2)
			x, y := r.Intn(w-bw), r.Intn(h-bh)
			b.Ann(annID, model.ImageID(i), cat, Rect(float64(x), float64(y), float64(bw), float64(bh)))

			if r.Intn(4) == 0 {
				continue
			}
			refID++
			sents := make([]string, 1+r.Intn(3))
			for s := range sents {
				sents[s] = r.sentence()
			}
			b.Ref(refID, annID, syntheticSplits[r.Intn(len(syntheticSplits))], sents...)
		}
	}
	return b.Build()
}

func (r *RNG) sentence() string {
	n := 2 + r.Intn(5)
	out := ""
	for i := range n {
		if i > 0 {
			out += " "
		}
		out += syntheticWords[r.Intn(len(syntheticWords))]
	}
	return out
}
