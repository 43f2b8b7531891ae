// File: utils/config.go
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds every parameter read once at process start. Field geometry
// constants live in geometry.go since a deployment never overrides them;
// SwapSides only flips BlueIsLeftSide.
type Config struct {
	ThreadFrequency int `json:"threadFrequency"` // Hz; drives the Referee's tick loop (the Replacer has no tick loop and handles each message as it arrives)

	RefereeAddress       string        `json:"refereeAddress"`
	RefereePort          int           `json:"refereePort"`
	TransitionTime       time.Duration `json:"transitionTime"`
	BallRadius           float64       `json:"ballRadius"`
	RobotLength          float64       `json:"robotLength"`
	HalfTime             time.Duration `json:"halfTime"`
	BallMinSpeedForStuck float64       `json:"ballMinSpeedForStuck"`
	StuckedBallTime      time.Duration `json:"stuckedBallTime"`
	RandomSeed           int64         `json:"randomSeed"` // seeds the goal-kick top/bottom PRNG; 0 means seed from the current time

	VisionAddress string `json:"visionAddress"`
	VisionPort    int    `json:"visionPort"`

	ReplacerAddress string `json:"replacerAddress"`
	ReplacerPort    int    `json:"replacerPort"`

	SimulatorAddress string `json:"simulatorAddress"`
	SimulatorPort    int    `json:"simulatorPort"`

	QtPlayers      int    `json:"qtPlayers"`
	BlueTeamName   string `json:"blueTeamName"`
	YellowTeamName string `json:"yellowTeamName"`
	BlueIsLeftSide bool   `json:"blueIsLeftSide"`
}

// DefaultConfig mirrors the values the original Constants class read from
// its JSON document, tuned for the 3v3 field declared in geometry.go.
func DefaultConfig() Config {
	return Config{
		ThreadFrequency: 60,

		RefereeAddress:       "127.0.0.1",
		RefereePort:          10001,
		TransitionTime:       4 * time.Second,
		BallRadius:           0.02135,
		RobotLength:          0.08,
		HalfTime:             300 * time.Second,
		BallMinSpeedForStuck: 0.05,
		StuckedBallTime:      4 * time.Second,
		RandomSeed:           0,

		VisionAddress: "224.0.0.1",
		VisionPort:    10002,

		ReplacerAddress: "224.5.23.2",
		ReplacerPort:    10004,

		SimulatorAddress: "127.0.0.1",
		SimulatorPort:    10003,

		QtPlayers:      3,
		BlueTeamName:   "Blue",
		YellowTeamName: "Yellow",
		BlueIsLeftSide: true,
	}
}

// FastMatchConfig shortens every timer for tests that need to run a full
// half without waiting on real clocks.
func FastMatchConfig() Config {
	cfg := DefaultConfig()
	cfg.ThreadFrequency = 240
	cfg.TransitionTime = 40 * time.Millisecond
	cfg.HalfTime = 2 * time.Second
	cfg.StuckedBallTime = 40 * time.Millisecond
	return cfg
}

// SwapSides flips which side blue defends; called only by the Referee
// Engine between halves.
func (c *Config) SwapSides() {
	c.BlueIsLeftSide = !c.BlueIsLeftSide
}

// LoadConfig reads a JSON document at path into a Config seeded with
// DefaultConfig, so a partial file only overrides the fields it sets.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("utils: read config %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("utils: parse config %q: %w", path, err)
	}
	return cfg, nil
}
