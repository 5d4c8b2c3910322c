// Package config provides YAML/TOML game configuration loading, validation
// and the difficulty tier table.
package config

// FlappyConfig contains all configuration for a flappy session.
// Every length is in scene units, every duration in seconds.
type FlappyConfig struct {
	Scene      SceneConfig     `yaml:"scene" toml:"scene"`
	Physics    PhysicsConfig   `yaml:"physics" toml:"physics"`
	Actor      ActorConfig     `yaml:"actor" toml:"actor"`
	Obstacles  ObstacleConfig  `yaml:"obstacles" toml:"obstacles"`
	Timing     TimingConfig    `yaml:"timing" toml:"timing"`
	Difficulty DifficultyTable `yaml:"difficulty" toml:"difficulty"`
}

// SceneConfig defines the scene geometry.
type SceneConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	Margin int `yaml:"margin" toml:"margin"` // Minimum distance between a gap and the scene edges
}

// PhysicsConfig defines the actor and scroll physics.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`           // Downward acceleration, units/s²
	FlapImpulse float64 `yaml:"flap_impulse" toml:"flap_impulse"` // Upward speed set by a flap, units/s
	ScrollSpeed float64 `yaml:"scroll_speed" toml:"scroll_speed"` // Leftward obstacle speed, units/s
}

// ActorConfig defines the actor start position and hitbox.
type ActorConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// ObstacleConfig defines the obstacle pool.
type ObstacleConfig struct {
	Count int     `yaml:"count" toml:"count"` // Number of pairs in the pool
	Width float64 `yaml:"width" toml:"width"` // Visual and collision width of a pair
}

// TimingConfig defines the deferred transitions.
type TimingConfig struct {
	GameOverDelay     float64 `yaml:"game_over_delay" toml:"game_over_delay"`
	CountdownFrom     int     `yaml:"countdown_from" toml:"countdown_from"`
	CountdownInterval float64 `yaml:"countdown_interval" toml:"countdown_interval"`
}
