package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values. Values are layered in order:
// built-in defaults, then an optional YAML file, then environment
// variables prefixed with "AUTHDNS_".
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ZoneDir is the directory containing zone files to serve.
	ZoneDir string `koanf:"zone_dir" validate:"required"`

	// Listen4 is the IPv4 host:port to bind. Empty disables the listener.
	Listen4 string `koanf:"listen4" validate:"omitempty,host_port"`

	// Listen6 is the IPv6 host:port to bind. Empty disables the listener.
	Listen6 string `koanf:"listen6" validate:"omitempty,host_port"`

	// StatsInterval is how often query totals are logged, in seconds.
	// Zero disables the periodic summary.
	StatsInterval int `koanf:"stats_interval" validate:"gte=0"`
}

// DEFAULT_APP_CONFIG defines the default application configuration: a
// production server bound to port 53 on both address families.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:           "prod",
	LogLevel:      "info",
	ZoneDir:       "/etc/authdns/zones/",
	Listen4:       "0.0.0.0:53",
	Listen6:       "[::]:53",
	StatsInterval: 60,
}

// validHostPort validates a host:port listen address. The host part must
// be a literal IP address; the port must be 0-65535, where 0 means an
// ephemeral port.
func validHostPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if net.ParseIP(host) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum <= 65535
}

// envLoader loads environment variables with the prefix "AUTHDNS_",
// lowercasing keys and stripping the prefix. It can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "AUTHDNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "AUTHDNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG into the Koanf instance using the
// structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// fileLoader loads the YAML file named by AUTHDNS_CONFIG, when set.
var fileLoader = func(k *koanf.Koanf) error {
	path := os.Getenv("AUTHDNS_CONFIG")
	if path == "" {
		return nil
	}
	return k.Load(file.Provider(path), yamlparser.Parser())
}

// registerValidation registers the custom "host_port" validation used for
// the listen addresses.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("host_port", validHostPort)
}

// Load assembles the configuration from defaults, file, and environment,
// then validates it.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := fileLoader(k); err != nil {
		return nil, fmt.Errorf("error loading config file: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if cfg.Listen4 == "" && cfg.Listen6 == "" {
		return nil, fmt.Errorf("validation failed: at least one of listen4 and listen6 must be set")
	}

	return &cfg, nil
}
