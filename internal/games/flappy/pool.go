package flappy

import (
	"math"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Pair is an upper and a lower pipe sharing an x coordinate.
// The upper pipe covers [0, GapTop), the lower one [GapTop+GapSize, sceneHeight).
type Pair struct {
	X       float64 // Left edge
	GapTop  int     // Top edge of the opening
	GapSize int     // Height of the opening
}

// GapBottom returns the y-coordinate where the lower pipe starts.
func (p Pair) GapBottom() int {
	return p.GapTop + p.GapSize
}

// UpperRect returns the collision rectangle of the upper pipe.
func (p Pair) UpperRect(width float64) core.Rect {
	return core.NewRect(p.X, 0, width, float64(p.GapTop))
}

// LowerRect returns the collision rectangle of the lower pipe.
func (p Pair) LowerRect(width, sceneHeight float64) core.Rect {
	bottom := float64(p.GapBottom())
	return core.NewRect(p.X, bottom, width, sceneHeight-bottom)
}

// Pool owns a fixed set of pairs that are recycled forever.
type Pool struct {
	pairs       []Pair
	width       float64
	margin      int
	sceneHeight float64
	rng         *core.Random
}

// NewPool creates a pool of n pairs of the given width.
// Pairs are parked at -Inf until Initialize places them.
func NewPool(n int, width float64, margin int, rng *core.Random) *Pool {
	p := &Pool{
		pairs:  make([]Pair, n),
		width:  width,
		margin: margin,
		rng:    rng,
	}
	p.park()
	return p
}

func (p *Pool) park() {
	for i := range p.pairs {
		p.pairs[i] = Pair{X: math.Inf(-1)}
	}
}

// Initialize lays out every pair left to right. The first pair starts at
// sceneWidth, fully past the right edge; each following one is placed
// relative to its predecessor.
func (p *Pool) Initialize(sceneWidth, sceneHeight float64, params config.TierParams) {
	p.sceneHeight = sceneHeight
	p.park()
	if len(p.pairs) == 0 {
		return
	}

	p.placeAt(0, sceneWidth, params)
	for i := 1; i < len(p.pairs); i++ {
		p.Place(i, params, sceneHeight)
	}
}

// Advance scrolls every pair left by dx.
func (p *Pool) Advance(dx float64) {
	for i := range p.pairs {
		p.pairs[i].X -= dx
	}
}

// CollectPassed returns, in ascending order, the indices of the pairs whose
// right edge is at or left of leftEdge.
func (p *Pool) CollectPassed(leftEdge float64) []int {
	var passed []int
	for i, pair := range p.pairs {
		if pair.X+p.width <= leftEdge {
			passed = append(passed, i)
		}
	}
	return passed
}

// Place re-samples pair i and moves it ahead of the current rightmost pair.
// The new x depends on the rightmost pair, not on the pair being replaced,
// so spacing stays uniform whatever order pairs are recycled in.
func (p *Pool) Place(i int, params config.TierParams, sceneHeight float64) {
	p.sceneHeight = sceneHeight
	rightmost := p.RightmostX()
	gapTop, gapSize := p.sampleGap(params)
	spacing := p.rng.Between(params.Spacing.Min, params.Spacing.Max)

	p.pairs[i] = Pair{
		X:       rightmost + float64(spacing),
		GapTop:  gapTop,
		GapSize: gapSize,
	}
}

func (p *Pool) placeAt(i int, x float64, params config.TierParams) {
	gapTop, gapSize := p.sampleGap(params)
	p.pairs[i] = Pair{
		X:       x,
		GapTop:  gapTop,
		GapSize: gapSize,
	}
}

// sampleGap draws an opening that stays margin units away from both edges.
func (p *Pool) sampleGap(params config.TierParams) (top, size int) {
	size = p.rng.Between(params.Gap.Min, params.Gap.Max)
	top = p.rng.Between(p.margin, int(p.sceneHeight)-size-p.margin)
	return top, size
}

// RightmostX returns the largest x among all pairs.
func (p *Pool) RightmostX() float64 {
	rightmost := math.Inf(-1)
	for _, pair := range p.pairs {
		rightmost = math.Max(rightmost, pair.X)
	}
	return rightmost
}

// Collides reports whether r overlaps any pipe.
func (p *Pool) Collides(r core.Rect) bool {
	for _, pair := range p.pairs {
		if r.Intersects(pair.UpperRect(p.width)) || r.Intersects(pair.LowerRect(p.width, p.sceneHeight)) {
			return true
		}
	}
	return false
}

// Pair returns a copy of pair i.
func (p *Pool) Pair(i int) Pair {
	return p.pairs[i]
}

// Pairs returns a copy of every pair.
func (p *Pool) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Len returns the pool size.
func (p *Pool) Len() int {
	return len(p.pairs)
}

// Width returns the pipe width.
func (p *Pool) Width() float64 {
	return p.width
}
