package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Cookie    CookieConfig    `mapstructure:"cookie"`
	Media     MediaConfig     `mapstructure:"media"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type HTTPConfig struct {
	Port           int    `mapstructure:"port"`
	CORSOrigin     string `mapstructure:"cors_origin"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	// TrustedProxies lists the addresses or CIDR ranges whose forwarding
	// headers are believed. Requests from anywhere else are keyed on the peer.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry"`
}

type CookieConfig struct {
	Secure bool `mapstructure:"secure"`
}

type MediaConfig struct {
	CloudName      string `mapstructure:"cloud_name"`
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	Folder         string `mapstructure:"folder"`
	DeleteReplaced bool   `mapstructure:"delete_replaced"`
}

type StorageConfig struct {
	TempPath string `mapstructure:"temp_path"`
}

type RateLimitConfig struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
}

var defaults = map[string]any{
	"http.port":                 8000,
	"http.cors_origin":          "*",
	"http.max_upload_bytes":     32 << 20,
	"http.trusted_proxies":      []string{},
	"log.level":                 "info",
	"db.uri":                    "",
	"db.name":                   "videotube",
	"jwt.access_secret":         "",
	"jwt.access_expiry":         "15m",
	"jwt.refresh_secret":        "",
	"jwt.refresh_expiry":        "240h",
	"cookie.secure":             true,
	"media.cloud_name":          "",
	"media.api_key":             "",
	"media.api_secret":          "",
	"media.folder":              "videotube",
	"media.delete_replaced":     true,
	"storage.temp_path":         "./public/temp",
	"ratelimit.auth_per_minute": 20,
}

// envAliases keeps the variable names used by existing deployments working.
var envAliases = map[string]string{
	"http.port":          "PORT",
	"http.cors_origin":   "CORS_ORIGIN",
	"db.uri":             "MONGODB_URI",
	"jwt.access_secret":  "ACCESS_TOKEN_SECRET",
	"jwt.access_expiry":  "ACCESS_TOKEN_EXPIRY",
	"jwt.refresh_secret": "REFRESH_TOKEN_SECRET",
	"jwt.refresh_expiry": "REFRESH_TOKEN_EXPIRY",
	"media.cloud_name":   "CLOUDINARY_CLOUD_NAME",
	"media.api_key":      "CLOUDINARY_API_KEY",
	"media.api_secret":   "CLOUDINARY_API_SECRET",
}

// Load reads .env, then configs/settings.yml, then the environment. Every key
// has a default so that environment-only deployments unmarshal completely.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, alias := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), alias); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DB.URI == "" {
		errs = append(errs, errors.New("db.uri is required"))
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("jwt.access_secret and jwt.refresh_secret are required"))
	} else if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("jwt.access_secret and jwt.refresh_secret must differ"))
	}
	if c.JWT.AccessExpiry <= 0 || c.JWT.RefreshExpiry <= 0 {
		errs = append(errs, errors.New("token expiries must be positive"))
	}
	if _, err := ParseTrustedProxies(c.HTTP.TrustedProxies); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseTrustedProxies accepts bare addresses and CIDR ranges. Invalid entries
// are reported in the error; the valid ones are still returned.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	var (
		prefixes []netip.Prefix
		errs     []error
	)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				errs = append(errs, fmt.Errorf("http.trusted_proxies: %w", err))
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("http.trusted_proxies: %w", err))
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, errors.Join(errs...)
}
