package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CRMConfig holds tunable CRM behavior loaded from crm.yml and hot-reloaded
// on change. Everything here has a safe default so the file is optional.
type CRMConfig struct {
	Currencies          []string      `mapstructure:"currencies"`
	QuoteValidDays      int           `mapstructure:"quoteValidDays"`
	NameCollisionRetries int          `mapstructure:"nameCollisionRetries"`
	AICacheTTL          time.Duration `mapstructure:"aiCacheTTL"`
}

func DefaultCRMConfig() CRMConfig {
	return CRMConfig{
		Currencies:           []string{"USD", "EUR", "GBP", "CAD"},
		QuoteValidDays:       30,
		NameCollisionRetries: 3,
		AICacheTTL:           5 * time.Minute,
	}
}

type CRMConfigHolder struct {
	current atomic.Value // holds CRMConfig
}

func NewCRMConfigHolder() (*CRMConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("crm")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/lancer")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LANCER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCRMConfig()
	v.SetDefault("crm.currencies", defaults.Currencies)
	v.SetDefault("crm.quoteValidDays", defaults.QuoteValidDays)
	v.SetDefault("crm.nameCollisionRetries", defaults.NameCollisionRetries)
	v.SetDefault("crm.aiCacheTTL", defaults.AICacheTTL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg CRMConfig
	if err := v.UnmarshalKey("crm", &cfg); err != nil {
		return nil, err
	}
	if err := validateCRMConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CRMConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CRMConfig
		if err := v.UnmarshalKey("crm", &updated); err != nil {
			log.Printf("[crm-config] reload failed: %v", err)
			return
		}
		if err := validateCRMConfig(updated); err != nil {
			log.Printf("[crm-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[crm-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CRMConfigHolder) Get() CRMConfig {
	return h.current.Load().(CRMConfig)
}

// NewStaticCRMConfigHolder wraps a fixed config, for tests.
func NewStaticCRMConfigHolder(cfg CRMConfig) *CRMConfigHolder {
	holder := &CRMConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateCRMConfig(cfg CRMConfig) error {
	if len(cfg.Currencies) == 0 {
		return errors.New("crm.currencies cannot be empty")
	}
	if cfg.QuoteValidDays <= 0 {
		return errors.New("crm.quoteValidDays must be positive")
	}
	if cfg.NameCollisionRetries < 0 {
		return errors.New("crm.nameCollisionRetries cannot be negative")
	}
	if cfg.AICacheTTL <= 0 {
		return errors.New("crm.aiCacheTTL must be positive")
	}
	return nil
}
