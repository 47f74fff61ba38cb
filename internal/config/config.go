package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceSettings is the static (file-level) configuration for one fetcher.
// Runtime toggles live in the store and override these at request time.
type SourceSettings struct {
	Enabled    bool `yaml:"enabled"`
	Weight     int  `yaml:"weight"`       // relative share of the requested limit
	RatePerMin int  `yaml:"rate_per_min"` // sliding-window budget; 0 = unlimited
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
		PageSize     int `yaml:"page_size"`
	} `yaml:"search"`

	Fetch struct {
		HostRatePerSec float64 `yaml:"host_rate_per_sec"`
		HostBurst      int     `yaml:"host_burst"`
	} `yaml:"fetch"`

	Sources struct {
		AllJobs SourceSettings `yaml:"alljobs"`
		Drushim SourceSettings `yaml:"drushim"`
		GSearch struct {
			SourceSettings `yaml:",inline"`
			CX             string `yaml:"cx"`
			Site           string `yaml:"site"`
		} `yaml:"gsearch"`
		Synthetic SourceSettings `yaml:"synthetic"`
	} `yaml:"sources"`

	Alerts struct {
		Enabled         bool     `yaml:"enabled"`
		Keywords        []string `yaml:"keywords"`
		Location        string   `yaml:"location"`
		IntervalMinutes int      `yaml:"interval_minutes"`
		TelegramChatID  int64    `yaml:"telegram_chat_id"`
	} `yaml:"alerts"`

	// Secrets never live in the YAML file and never leave the process:
	// env (.env) or OS keyring only, excluded from every serialization.
	GSearchAPIKey string `yaml:"-" json:"-"`
	TelegramToken string `yaml:"-" json:"-"`
}

func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38472
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 10
	}
	if cfg.Fetch.HostRatePerSec == 0 {
		cfg.Fetch.HostRatePerSec = 1.0
	}
	if cfg.Fetch.HostBurst == 0 {
		cfg.Fetch.HostBurst = 2
	}
	if cfg.Alerts.IntervalMinutes == 0 {
		cfg.Alerts.IntervalMinutes = 60
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GSEARCH_API_KEY"); v != "" {
		cfg.GSearchAPIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Alerts.TelegramChatID = id
		}
	}
	if v := os.Getenv("JOBPILOT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
}
