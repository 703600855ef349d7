package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DocumentConfig holds quotation document defaults applied when the request
// leaves the corresponding fields empty.
type DocumentConfig struct {
	PaymentTerm      string `mapstructure:"paymentTerm"`
	DeliveryLeadTime string `mapstructure:"deliveryLeadTime"`
	Warranty         string `mapstructure:"warranty"`
	ValidityDays     int    `mapstructure:"validityDays"`
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		PaymentTerm:      "50% advance, 50% on delivery",
		DeliveryLeadTime: "4-6 weeks after order confirmation",
		Warranty:         "12 months from date of delivery",
		ValidityDays:     30,
	}
}

// DocumentConfigHolder keeps the active document defaults and swaps them
// atomically when the config file changes on disk.
type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
}

func NewDocumentConfigHolder(log *zap.Logger) (*DocumentConfigHolder, error) {
	log = log.Named("config.document")
	v := viper.New()

	v.SetConfigName("document")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/quotehub/config") // Volume-mounted config
	v.AddConfigPath("/etc/quotehub")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("QUOTEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDocumentConfig()
		v.SetDefault("document.paymentTerm", defaults.PaymentTerm)
		v.SetDefault("document.deliveryLeadTime", defaults.DeliveryLeadTime)
		v.SetDefault("document.warranty", defaults.Warranty)
		v.SetDefault("document.validityDays", defaults.ValidityDays)
	}

	var cfg DocumentConfig
	if err := v.UnmarshalKey("document", &cfg); err != nil {
		return nil, err
	}
	if err := validateDocumentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DocumentConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DocumentConfig
		if err := v.UnmarshalKey("document", &updated); err != nil {
			log.Error("reload failed", zap.Error(err))
			return
		}
		if err := validateDocumentConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// StaticDocumentConfigHolder pins the holder to cfg without watching any
// file. Used where hot reload is not wanted.
func StaticDocumentConfigHolder(cfg DocumentConfig) *DocumentConfigHolder {
	holder := &DocumentConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *DocumentConfigHolder) Get() DocumentConfig {
	return h.current.Load().(DocumentConfig)
}

func validateDocumentConfig(cfg DocumentConfig) error {
	if cfg.ValidityDays < 0 {
		return errors.New("document.validityDays cannot be negative")
	}
	return nil
}
