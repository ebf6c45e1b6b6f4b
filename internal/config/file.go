package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// applyFileOverrides layers an optional nestlog.yml over the env-derived
// config. Missing file is fine; a malformed one is reported and ignored so a
// bad edit never prevents startup.
func applyFileOverrides(cfg *Config) {
	v := viper.New()

	v.SetConfigName("nestlog")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/nestlog")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NESTLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[config] ignoring nestlog.yml: %v", err)
		}
		return
	}

	if addr := strings.TrimSpace(v.GetString("server.addr")); addr != "" {
		cfg.HTTPAddr = addr
	}
	if dbType := strings.TrimSpace(v.GetString("database.type")); dbType != "" {
		cfg.DBType = dbType
	}
	if host := strings.TrimSpace(v.GetString("database.host")); host != "" {
		cfg.DBHost = host
	}
	if port := strings.TrimSpace(v.GetString("database.port")); port != "" {
		cfg.DBPort = port
	}
	if name := strings.TrimSpace(v.GetString("database.name")); name != "" {
		cfg.DBName = name
	}
	if user := strings.TrimSpace(v.GetString("database.user")); user != "" {
		cfg.DBUser = user
	}
	if password := v.GetString("database.password"); password != "" {
		cfg.DBPassword = password
	}
	if schedule := strings.TrimSpace(v.GetString("summary.schedule")); schedule != "" {
		cfg.SummarySchedule = schedule
	}
	if v.IsSet("summary.enabled") {
		cfg.SummaryEnabled = v.GetBool("summary.enabled")
	}
}
