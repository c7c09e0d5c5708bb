package hazard

import "fmt"

const (
	DefaultPauseUnpauseFrames    = 116
	DefaultPauseFadeOutFrames    = 42
	DefaultHitIFrames            = 96
	DefaultReserveRefillPerFrame = 1

	DefaultPauseSpamSlackFrames    = 10
	DefaultManualRefillSlackEnergy = 20
	DefaultPauseTimingSlackFrames  = 5
	DefaultDoubleHitIFrames        = 20

	punctualFloor = 1
)

// Config describes how much reserve and pause management the player is
// assumed to pull off.
type Config struct {
	MayTapReservesMidHazard bool `yaml:"may_tap_reserves_mid_hazard" json:"may_tap_reserves_mid_hazard"`
	MayUsePartialReserves   bool `yaml:"may_use_partial_reserves" json:"may_use_partial_reserves"`
	PauseSpamSlackFrames    int  `yaml:"pause_spam_slack_frames" json:"pause_spam_slack_frames"`
	ManualRefillSlackEnergy int  `yaml:"manual_refill_slack_energy" json:"manual_refill_slack_energy"`
	PauseTimingSlackFrames  int  `yaml:"pause_timing_slack_frames" json:"pause_timing_slack_frames"`
	DoubleHitIFrames        int  `yaml:"double_hit_iframes" json:"double_hit_iframes"`
}

func DefaultConfig() Config {
	return Config{
		MayTapReservesMidHazard: true,
		MayUsePartialReserves:   true,
		PauseSpamSlackFrames:    DefaultPauseSpamSlackFrames,
		ManualRefillSlackEnergy: DefaultManualRefillSlackEnergy,
		PauseTimingSlackFrames:  DefaultPauseTimingSlackFrames,
		DoubleHitIFrames:        DefaultDoubleHitIFrames,
	}
}

func (c Config) Validate() error {
	for name, v := range map[string]int{
		"pause_spam_slack_frames":    c.PauseSpamSlackFrames,
		"manual_refill_slack_energy": c.ManualRefillSlackEnergy,
		"pause_timing_slack_frames":  c.PauseTimingSlackFrames,
		"double_hit_iframes":         c.DoubleHitIFrames,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// Rules are the game's fixed timing constants plus the known hazard kinds.
type Rules struct {
	PauseUnpauseFrames    int             `yaml:"pause_unpause_frames" json:"pause_unpause_frames"`
	PauseFadeOutFrames    int             `yaml:"pause_fade_out_frames" json:"pause_fade_out_frames"`
	HitIFrames            int             `yaml:"hit_iframes" json:"hit_iframes"`
	ReserveRefillPerFrame int             `yaml:"reserve_refill_per_frame" json:"reserve_refill_per_frame"`
	Kinds                 map[string]Kind `yaml:"kinds" json:"kinds"`
}

func DefaultRules() Rules {
	return Rules{
		PauseUnpauseFrames:    DefaultPauseUnpauseFrames,
		PauseFadeOutFrames:    DefaultPauseFadeOutFrames,
		HitIFrames:            DefaultHitIFrames,
		ReserveRefillPerFrame: DefaultReserveRefillPerFrame,
		Kinds:                 DefaultKinds(),
	}
}

func (r Rules) Validate() error {
	switch {
	case r.PauseUnpauseFrames < 0:
		return fmt.Errorf("%w: pause_unpause_frames is negative (%d)", ErrInvalidConfig, r.PauseUnpauseFrames)
	case r.PauseFadeOutFrames < 0:
		return fmt.Errorf("%w: pause_fade_out_frames is negative (%d)", ErrInvalidConfig, r.PauseFadeOutFrames)
	case r.HitIFrames < 0:
		return fmt.Errorf("%w: hit_iframes is negative (%d)", ErrInvalidConfig, r.HitIFrames)
	case r.ReserveRefillPerFrame <= 0:
		return fmt.Errorf("%w: reserve_refill_per_frame must be positive (%d)", ErrInvalidConfig, r.ReserveRefillPerFrame)
	}
	return nil
}
