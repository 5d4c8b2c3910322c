package flappy

import (
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Actor is the controllable bird. Y is the vertical centre; the simulation
// never constrains it, leaving boundary checks to the session.
type Actor struct {
	X      float64 // Fixed horizontal centre
	Y      float64 // Vertical centre, grows downward
	VelY   float64 // Vertical velocity, negative = up
	Width  float64
	Height float64
	Alive  bool

	gravity float64
	impulse float64
}

// NewActor creates an actor at the configured start position.
func NewActor(actor config.ActorConfig, physics config.PhysicsConfig) *Actor {
	return &Actor{
		X:       actor.X,
		Y:       actor.Y,
		Width:   actor.Width,
		Height:  actor.Height,
		Alive:   true,
		gravity: physics.Gravity,
		impulse: physics.FlapImpulse,
	}
}

// Tick integrates gravity over dt seconds.
func (a *Actor) Tick(dt float64) {
	a.VelY += a.gravity * dt
	a.Y += a.VelY * dt
}

// Flap sets the velocity to the upward impulse. Repeated flaps do not stack.
func (a *Actor) Flap() {
	a.VelY = -a.impulse
}

// IsOutOfBounds reports whether the actor touches the ceiling or the floor.
func (a *Actor) IsOutOfBounds(sceneHeight float64) bool {
	half := a.Height / 2
	return a.Y-half <= 0 || a.Y+half >= sceneHeight
}

// Bounds returns the collision rectangle.
func (a *Actor) Bounds() core.Rect {
	return core.CenteredRect(a.X, a.Y, a.Width, a.Height)
}
