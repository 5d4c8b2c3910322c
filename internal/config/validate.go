package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks the configuration once, before a session is built.
// All problems are reported together.
func (c FlappyConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		fail("scene must have positive dimensions, got %dx%d", c.Scene.Width, c.Scene.Height)
	}
	if c.Scene.Margin < 0 {
		fail("scene.margin must not be negative, got %d", c.Scene.Margin)
	}

	if c.Physics.Gravity <= 0 {
		fail("physics.gravity must be positive, got %g", c.Physics.Gravity)
	}
	if c.Physics.FlapImpulse <= 0 {
		fail("physics.flap_impulse must be positive, got %g", c.Physics.FlapImpulse)
	}
	if c.Physics.ScrollSpeed <= 0 {
		fail("physics.scroll_speed must be positive, got %g", c.Physics.ScrollSpeed)
	}

	if c.Actor.Width <= 0 || c.Actor.Height <= 0 {
		fail("actor must have positive dimensions, got %gx%g", c.Actor.Width, c.Actor.Height)
	} else if c.Scene.Height > 0 {
		h := float64(c.Scene.Height)
		if c.Actor.Y-c.Actor.Height/2 <= 0 || c.Actor.Y+c.Actor.Height/2 >= h {
			fail("actor start y %g puts the actor outside the scene", c.Actor.Y)
		}
	}
	if c.Actor.X < 0 || (c.Scene.Width > 0 && c.Actor.X > float64(c.Scene.Width)) {
		fail("actor start x %g is outside the scene", c.Actor.X)
	}

	if c.Obstacles.Count < 1 {
		fail("obstacles.count must be at least 1, got %d", c.Obstacles.Count)
	}
	if c.Obstacles.Width <= 0 {
		fail("obstacles.width must be positive, got %g", c.Obstacles.Width)
	}

	if c.Timing.GameOverDelay < 0 {
		fail("timing.game_over_delay must not be negative, got %g", c.Timing.GameOverDelay)
	}
	if c.Timing.CountdownFrom < 0 {
		fail("timing.countdown_from must not be negative, got %d", c.Timing.CountdownFrom)
	}
	if c.Timing.CountdownFrom > 0 && c.Timing.CountdownInterval <= 0 {
		fail("timing.countdown_interval must be positive, got %g", c.Timing.CountdownInterval)
	}

	d := c.Difficulty
	if d.NormalAt < 0 || d.HardAt < d.NormalAt {
		fail("difficulty thresholds must satisfy 0 <= normal_at <= hard_at, got %d and %d", d.NormalAt, d.HardAt)
	}
	for _, tier := range []Tier{TierEasy, TierNormal, TierHard} {
		p := d.ParametersFor(tier)
		if p.Spacing.Min < 1 || p.Spacing.Min > p.Spacing.Max {
			fail("%s spacing %s must be a non-empty range of positive values", tier, p.Spacing)
		}
		if p.Gap.Min < 1 || p.Gap.Min > p.Gap.Max {
			fail("%s gap %s must be a non-empty range of positive values", tier, p.Gap)
		}
		if c.Scene.Height > 0 && p.Gap.Max+2*c.Scene.Margin > c.Scene.Height {
			fail("%s gap %s does not fit a scene of height %d with margin %d",
				tier, p.Gap, c.Scene.Height, c.Scene.Margin)
		}
	}

	return errors.Join(errs...)
}
