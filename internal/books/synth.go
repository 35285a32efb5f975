package books

import (
	"math/rand/v2"
	"strconv"
)

const (
	isbnPrefix  = "978"
	isbnMinBody = 1_000_000_000
	isbnMaxBody = 9_999_999_999

	minPriceCents = 199
	maxPriceCents = 999

	minCopies = 1
	maxCopies = 10
)

// Synthesizer generates the fields no dataset provides: ISBN, rental price and copy count.
// Values are drawn independently per call.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer on rng. A nil rng gets a randomly seeded source.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthesizer{rng: rng}
}

// ISBN returns "978" followed by a 10 digit number. Uniqueness is not guaranteed.
func (s *Synthesizer) ISBN() string {
	body := isbnMinBody + s.rng.Int64N(isbnMaxBody-isbnMinBody+1)
	return isbnPrefix + strconv.FormatInt(body, 10)
}

// RentalPrice returns a price in [1.99, 9.99] with at most two decimals
func (s *Synthesizer) RentalPrice() float64 {
	cents := minPriceCents + s.rng.IntN(maxPriceCents-minPriceCents+1)
	return float64(cents) / 100
}

// Copies returns an inventory count in [1, 10]
func (s *Synthesizer) Copies() int {
	return minCopies + s.rng.IntN(maxCopies-minCopies+1)
}
