package settings

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "WAITQUEUE"

// Load reads the config file at path (format picked from its extension),
// applies defaults and WAITQUEUE_* environment overrides.
// An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", "info")
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.max_size", 100)

	v.SetDefault("queue.name", "default")
	v.SetDefault("queue.slow_wait_threshold", 0)
	v.SetDefault("queue.clock_resolution", 0)

	v.SetDefault("worker.workers", 4)
	v.SetDefault("worker.shutdown_timeout", 5000)
}
