package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Timer     TimerConfig     `yaml:"timer"`
	ADC       ADCConfig       `yaml:"adc"`
	Scale     ScaleConfig     `yaml:"scale"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Consumer  ConsumerConfig  `yaml:"consumer"`
	Serial    SerialConfig    `yaml:"serial"`
	Sim       SimConfig       `yaml:"sim"`
}

// TimerConfig contains the sampling alarm timer configuration.
type TimerConfig struct {
	BaseClockHz uint32 `yaml:"base_clock_hz"` // timer base clock before the divider
	Divider     uint32 `yaml:"divider"`       // prescaler: 80 gives a 1 us tick from 80 MHz
	AlarmCount  uint64 `yaml:"alarm_count"`   // ticks per alarm: 100000 us = 100 ms
	OneShot     bool   `yaml:"one_shot"`      // fire a single alarm instead of reloading
}

// ADCConfig contains the measurement device configuration.
type ADCConfig struct {
	Channel  uint8  `yaml:"channel"`   // converter input to sample
	Port     string `yaml:"port"`      // serial-fed device port, empty = simulated device
	BaudRate int    `yaml:"baud_rate"` // device stream baud rate
}

// ScaleConfig contains the raw-to-volts conversion parameters.
type ScaleConfig struct {
	VRef      float64 `yaml:"vref"`       // reference voltage (V)
	FullScale float64 `yaml:"full_scale"` // raw divisor, 4096 for a 12-bit converter
}

// IndicatorConfig contains the heartbeat output configuration.
type IndicatorConfig struct {
	Chip   string `yaml:"chip"`   // gpiochip name, empty = in-memory pin
	Offset int    `yaml:"offset"` // line offset on the chip
}

// ConsumerConfig contains the reporting task configuration.
type ConsumerConfig struct {
	CPU int `yaml:"cpu"` // core to pin the reporting task to, -1 = unpinned
}

// SerialConfig contains the reporting sink configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`      // reporting port, empty = stdout
	BaudRate int    `yaml:"baud_rate"` // reporting baud rate
}

// SimConfig contains simulated device configuration.
type SimConfig struct {
	Bias       float64       `yaml:"bias"`        // center voltage (V)
	Amplitude  float64       `yaml:"amplitude"`   // sweep amplitude (V)
	Period     time.Duration `yaml:"period"`      // full sweep period
	NoiseLevel float64       `yaml:"noise_level"` // noise level (V)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			BaseClockHz: 80000000, // 80 MHz
			Divider:     80,       // 1 us tick
			AlarmCount:  100000,   // 100 ms alarm
			OneShot:     false,
		},
		ADC: ADCConfig{
			Channel:  34,
			Port:     "", // simulated unless a port is set
			BaudRate: 115200,
		},
		Scale: ScaleConfig{
			VRef:      3.3,
			FullScale: 4096,
		},
		Indicator: IndicatorConfig{
			Chip:   "", // in-memory unless a chip is set
			Offset: 23,
		},
		Consumer: ConsumerConfig{
			CPU: -1, // unpinned
		},
		Serial: SerialConfig{
			Port:     "", // stdout unless a port is set
			BaudRate: 115200,
		},
		Sim: SimConfig{
			Bias:       1.65,
			Amplitude:  1.0,
			Period:     10 * time.Second,
			NoiseLevel: 0.01,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist
// or fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values
// if missing. Fields whose zero value is meaningful (ports, chip,
// channel, cpu) are left alone.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Timer.BaseClockHz == 0 {
		c.Timer.BaseClockHz = def.Timer.BaseClockHz
	}
	if c.Timer.Divider == 0 {
		c.Timer.Divider = def.Timer.Divider
	}
	if c.Timer.AlarmCount == 0 {
		c.Timer.AlarmCount = def.Timer.AlarmCount
	}

	if c.ADC.BaudRate == 0 {
		c.ADC.BaudRate = def.ADC.BaudRate
	}

	if c.Scale.VRef == 0 {
		c.Scale.VRef = def.Scale.VRef
	}
	if c.Scale.FullScale == 0 {
		c.Scale.FullScale = def.Scale.FullScale
	}

	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Sim.Period == 0 {
		c.Sim.Period = def.Sim.Period
	}
	if c.Sim.NoiseLevel == 0 {
		c.Sim.NoiseLevel = def.Sim.NoiseLevel
	}
}
