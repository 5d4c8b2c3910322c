package flappy

import (
	"slices"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

var wideParams = config.TierParams{
	Spacing: config.Range{Min: 400, Max: 450},
	Gap:     config.Range{Min: 100, Max: 250},
}

func newTestPool(seed int64) *Pool {
	p := NewPool(4, 52, 20, core.NewRandom(seed))
	p.Initialize(800, 600, wideParams)
	return p
}

func checkGap(t *testing.T, i int, pair Pair, gap config.Range) {
	t.Helper()
	if !gap.Contains(pair.GapSize) {
		t.Errorf("pair %d gap size %d outside %s", i, pair.GapSize, gap)
	}
	if pair.GapTop < 20 {
		t.Errorf("pair %d gap top %d above margin", i, pair.GapTop)
	}
	if pair.GapBottom() > 580 {
		t.Errorf("pair %d gap bottom %d below margin", i, pair.GapBottom())
	}
}

func TestPoolInitialize(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		p := newTestPool(seed)
		pairs := p.Pairs()

		if len(pairs) != 4 {
			t.Fatalf("expected 4 pairs, got %d", len(pairs))
		}
		if pairs[0].X != 800 {
			t.Errorf("seed %d: first pair x = %g, expected 800", seed, pairs[0].X)
		}
		for i, pair := range pairs {
			checkGap(t, i, pair, wideParams.Gap)
			if i == 0 {
				continue
			}
			spacing := int(pair.X - pairs[i-1].X)
			if !wideParams.Spacing.Contains(spacing) {
				t.Errorf("seed %d: spacing before pair %d = %d, outside %s", seed, i, spacing, wideParams.Spacing)
			}
		}
	}
}

func TestPoolRecycleMovesForward(t *testing.T) {
	p := newTestPool(7)

	for round := 0; round < 20; round++ {
		// Scroll until the leftmost pair is fully off-screen.
		leftmost := p.Pair(0).X
		idx := 0
		for i, pair := range p.Pairs() {
			if pair.X < leftmost {
				leftmost, idx = pair.X, i
			}
		}
		p.Advance(leftmost + p.Width())

		passed := p.CollectPassed(0)
		if !slices.Equal(passed, []int{idx}) {
			t.Fatalf("round %d: CollectPassed = %v, expected [%d]", round, passed, idx)
		}

		before := p.RightmostX()
		p.Place(idx, wideParams, 600)
		got := p.Pair(idx)

		if got.X <= before {
			t.Fatalf("round %d: recycled x %g not ahead of rightmost %g", round, got.X, before)
		}
		if !wideParams.Spacing.Contains(int(got.X - before)) {
			t.Errorf("round %d: spacing %g outside %s", round, got.X-before, wideParams.Spacing)
		}
		checkGap(t, idx, got, wideParams.Gap)
	}
}

func TestPoolCollectPassedIsOrderedAndNonDestructive(t *testing.T) {
	p := newTestPool(3)
	p.Advance(p.RightmostX() + p.Width())

	want := []int{0, 1, 2, 3}
	if got := p.CollectPassed(0); !slices.Equal(got, want) {
		t.Errorf("CollectPassed = %v, expected %v", got, want)
	}
	if got := p.CollectPassed(0); !slices.Equal(got, want) {
		t.Errorf("second CollectPassed = %v, expected %v", got, want)
	}
}

func TestPoolCollectPassedEdge(t *testing.T) {
	p := newTestPool(3)
	p.Advance(p.Pair(0).X + p.Width() - 1)

	if got := p.CollectPassed(0); len(got) != 0 {
		t.Errorf("pair one unit on screen reported passed: %v", got)
	}

	p.Advance(1)
	if got := p.CollectPassed(0); !slices.Equal(got, []int{0}) {
		t.Errorf("pair with right edge at 0 not reported: %v", got)
	}
}

func TestPoolCollides(t *testing.T) {
	p := NewPool(1, 52, 20, core.NewRandom(1))
	p.sceneHeight = 600
	p.pairs[0] = Pair{X: 100, GapTop: 200, GapSize: 150}

	tests := []struct {
		name string
		rect core.Rect
		want bool
	}{
		{"inside gap", core.NewRect(110, 250, 20, 20), false},
		{"upper pipe", core.NewRect(110, 150, 20, 20), true},
		{"lower pipe", core.NewRect(110, 360, 20, 20), true},
		{"left of pair", core.NewRect(50, 100, 20, 20), false},
		{"touching left edge", core.NewRect(80, 100, 20, 20), false},
		{"grazing gap top", core.NewRect(110, 190, 20, 20), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Collides(tc.rect); got != tc.want {
				t.Errorf("Collides(%+v) = %v, expected %v", tc.rect, got, tc.want)
			}
		})
	}
}

func TestPoolDeterministic(t *testing.T) {
	a := newTestPool(99)
	b := newTestPool(99)

	if !slices.Equal(a.Pairs(), b.Pairs()) {
		t.Errorf("same seed produced different layouts:\n%v\n%v", a.Pairs(), b.Pairs())
	}
}
