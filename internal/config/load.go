package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/flashdeck/internal/scheduler"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/supplier"
)

// EnvPrefix prefixes every environment override, e.g.
// FLASHDECK_SCHEDULING_ADVENTURE.
const EnvPrefix = "FLASHDECK"

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	sc, sp, su := scheduler.DefaultConfig(), spacedrep.DefaultConfig(), supplier.DefaultConfig()

	v.SetDefault("scheduling.history", sc.History)
	v.SetDefault("scheduling.default_delay", sp.DefaultDelay)
	v.SetDefault("scheduling.noise", sp.Noise)
	v.SetDefault("scheduling.optimal_streak", sc.OptimalStreak)
	v.SetDefault("scheduling.magic", sc.Magic)
	v.SetDefault("scheduling.adventure", su.Adventure)
	v.SetDefault("scheduling.seed", 0)
	v.SetDefault("store.driver", "yaml")
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.textfile", "")
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment apply. Environment variables take precedence over
// values from the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its validate tag. Callers that
// override fields after Load should validate again.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
