package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token            string
		UpdateTimeoutSec int `mapstructure:"update_timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Reflect struct {
		// Период сканирования просроченных отложенных покупок.
		PollInterval time.Duration `mapstructure:"poll_interval"`
		// Период обновления обратного отсчёта в сообщении.
		TickInterval time.Duration `mapstructure:"tick_interval"`
	} `mapstructure:"reflect"`
}

func Load(path string) (Config, error) {
	// Локальный .env удобен в dev; в проде значения приходят через ENV.
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	if c.Telegram.UpdateTimeoutSec == 0 {
		c.Telegram.UpdateTimeoutSec = 30
	}
	if c.Reflect.PollInterval == 0 {
		c.Reflect.PollInterval = 2 * time.Second
	}
	if c.Reflect.TickInterval == 0 {
		c.Reflect.TickInterval = time.Second
	}
	return c, nil
}
