package runtime

import (
	"math/rand/v2"
	"sync"
)

// RandSource supplies uniform values for the rand function, which scales
// them by its argument. Sources may return anything in [0, 1]. The built in
// ones draw from [0, 1), so rand(x) never returns x itself with them.
type RandSource interface {
	Float32() float32
}

// LockedRand is a RandSource safe for use by concurrent evaluators.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand returns a source seeded with seed.
func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *LockedRand) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float32()
}

type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// DefaultRand is the process wide source. The top level math/rand/v2
// functions are already safe for concurrent use.
var DefaultRand RandSource = globalRand{}
