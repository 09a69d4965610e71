// Package config loads the application configuration for the dilab CLI.
//
// Values come from an optional YAML file and from DILAB_* environment
// variables ("notification.smtp_server" -> DILAB_NOTIFICATION_SMTP_SERVER).
// The lab specific keys are left to the labs and read through the returned
// property source.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sghaida/dilab/di"
	"github.com/sghaida/dilab/logging"
	"github.com/spf13/viper"
)

const EnvPrefix = "DILAB"

// Config is the part of the configuration the composition root needs before
// any lab is wired.
type Config struct {
	Env string         `mapstructure:"env" validate:"required"`
	Log logging.Config `mapstructure:"log"`
}

// LabKeys are the property keys the labs read. They are bound to the
// environment so they show up in Decode even without a config file.
var LabKeys = []string{
	"user.db_type",
	"hello.name",
	"hello.names",
	"notification.smtp_server",
	"notification.port",
	"notification.sms_provider",
	"order.definitions",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path (when non-empty) and the environment.
func Load(path string) (Config, *di.ViperProperties, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "local")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	for _, key := range LabKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	props := di.NewViperProperties(v)

	var cfg Config
	if err := props.Decode("", &cfg); err != nil {
		return Config{}, nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, props, nil
}
