package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// HostConfig configures one host device and its status server.
type HostConfig struct {
	Name             string   `toml:"name"`
	CPortMax         uint16   `toml:"cport_max"`
	OperationTimeout duration `toml:"operation_timeout"`
	StatusAddr       string   `toml:"status_addr"`
	CorsOrigins      []string `toml:"cors_origins"`
}

// duration lets TOML carry values like "2s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func LoadHostConfig(path string) (HostConfig, error) {
	var cfg HostConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return HostConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = "gbhost"
	}
	if cfg.CPortMax == 0 {
		cfg.CPortMax = 128
	}
	if cfg.OperationTimeout.Duration == 0 {
		cfg.OperationTimeout.Duration = 2 * time.Second
	}
	if cfg.StatusAddr == "" {
		cfg.StatusAddr = ":9400"
	}
	if err := ValidateHostConfig(cfg); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

func ValidateHostConfig(cfg HostConfig) error {
	if cfg.OperationTimeout.Duration < 0 {
		return errors.New("config: operation_timeout must not be negative")
	}
	return nil
}

const hostTemplate = `name = "gbhost"
cport_max = 128
operation_timeout = "2s"
status_addr = ":9400"
cors_origins = ["http://localhost:3000"]
`

// WriteTemplate drops a starter config at path. Refuses to overwrite
// unless forced.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s exists (use force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(hostTemplate), 0o644)
}
