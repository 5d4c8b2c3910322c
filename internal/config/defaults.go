package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It matches defaults/flappy.yaml and is used when the embedded file cannot
// be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Scene: SceneConfig{
			Width:  800,
			Height: 600,
			Margin: 20,
		},
		Physics: PhysicsConfig{
			Gravity:     800,
			FlapImpulse: 300,
			ScrollSpeed: 200,
		},
		Actor: ActorConfig{
			X:      80,
			Y:      300,
			Width:  34,
			Height: 24,
		},
		Obstacles: ObstacleConfig{
			Count: 4,
			Width: 52,
		},
		Timing: TimingConfig{
			GameOverDelay:     1.0,
			CountdownFrom:     3,
			CountdownInterval: 1.0,
		},
		Difficulty: DifficultyTable{
			NormalAt: 1,
			HardAt:   3,
			Tiers: Tiers{
				Easy: TierParams{
					Spacing: Range{Min: 400, Max: 450},
					Gap:     Range{Min: 100, Max: 250},
				},
				Normal: TierParams{
					Spacing: Range{Min: 360, Max: 410},
					Gap:     Range{Min: 100, Max: 210},
				},
				Hard: TierParams{
					Spacing: Range{Min: 320, Max: 370},
					Gap:     Range{Min: 90, Max: 170},
				},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
