// Package config loads robot settings from a TOML (or YAML/JSON) file
// with sane defaults for every field.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// CANConfig names the bus interface and bounds receive operations.
type CANConfig struct {
	Interface string        `mapstructure:"interface"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ControlConfig tunes the control session.
type ControlConfig struct {
	MaxSpeed    float64       `mapstructure:"max_speed"`
	Deadzone    float64       `mapstructure:"deadzone"`
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

// RecoveryConfig tunes the retry/reinitialize policy.
type RecoveryConfig struct {
	MaxAttempts uint          `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

// LedConfig is the startup LED color.
type LedConfig struct {
	Red   uint8 `mapstructure:"red"`
	Green uint8 `mapstructure:"green"`
	Blue  uint8 `mapstructure:"blue"`
}

// Config is the top-level configuration.
type Config struct {
	CAN      CANConfig      `mapstructure:"can"`
	Control  ControlConfig  `mapstructure:"control"`
	Recovery RecoveryConfig `mapstructure:"recovery"`
	Led      LedConfig      `mapstructure:"led"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("can.interface", "can0")
	v.SetDefault("can.timeout", 200*time.Millisecond)
	v.SetDefault("control.max_speed", 1.0)
	v.SetDefault("control.deadzone", 0.1)
	v.SetDefault("control.settle_delay", 500*time.Millisecond)
	v.SetDefault("recovery.max_attempts", 5)
	v.SetDefault("recovery.retry_delay", time.Second)
	v.SetDefault("led.red", 255)
	v.SetDefault("led.green", 255)
	v.SetDefault("led.blue", 255)
}

// Default returns the configuration with every field at its default.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// Defaults always decode; a failure here is a programming error.
		panic(err)
	}
	return cfg
}

// Load reads a configuration file and applies it over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
