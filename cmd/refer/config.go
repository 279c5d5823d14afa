package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by every command. Values come from
// flags, REFER_* environment variables and refer.yaml, in that order.
type Config struct {
	DataRoot  string `mapstructure:"data-root"`
	Dataset   string `mapstructure:"dataset"`
	SplitBy   string `mapstructure:"split-by"`
	Codec     string `mapstructure:"codec"`
	Store     string `mapstructure:"store"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
	Insecure  bool   `mapstructure:"insecure"`

	CacheBytes  int64 `mapstructure:"cache-bytes"`
	RateLimit   int64 `mapstructure:"rate-limit"`
	MaxReads    int64 `mapstructure:"max-reads"`
	MemoryLimit int64 `mapstructure:"memory-limit"`

	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
	MetricsAddr string `mapstructure:"metrics-addr"`
}

func setupFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./refer.yaml)")
	fs.String("data-root", "./data", "directory holding datasets and images (local store)")
	fs.StringP("dataset", "d", "refcoco", "dataset name")
	fs.StringP("split-by", "s", "", "split scheme (default: first scheme of the dataset)")
	fs.String("codec", "go-json", "record file codec")
	fs.String("store", "local", "record store: local, s3 or minio")
	fs.String("bucket", "", "bucket for s3 and minio stores")
	fs.String("prefix", "", "key prefix inside the bucket")
	fs.String("endpoint", "", "endpoint for s3 and minio stores")
	fs.String("region", "", "AWS region for the s3 store")
	fs.String("access-key", "", "access key for the minio store")
	fs.String("secret-key", "", "secret key for the minio store")
	fs.Bool("insecure", false, "use plain http for the minio store")
	fs.Int64("cache-bytes", 0, "block cache size for remote reads (0 disables)")
	fs.Int64("rate-limit", 0, "remote read limit in bytes per second (0 disables)")
	fs.Int64("max-reads", 0, "maximum concurrent remote reads (0 is unlimited)")
	fs.Int64("memory-limit", 0, "memory budget for caches in bytes (0 is unlimited)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
}

func loadConfig(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	v.SetEnvPrefix("REFER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("refer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString("config") != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Store {
	case "local":
	case "s3", "minio":
		if c.Bucket == "" {
			return fmt.Errorf("store %s requires --bucket", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Store == "minio" && c.Endpoint == "" {
		return errors.New("store minio requires --endpoint")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
