package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/herver/jbod-rs/internal/runner"
)

// Config holds the runtime settings. Everything has a sensible default
// so the tool works without a config file on a stock sg3-utils install.
type Config struct {
	Tools      Tools      `yaml:"tools"`
	Thresholds Thresholds `yaml:"thresholds"`
	Exporter   Exporter   `yaml:"exporter"`
}

// Tools overrides the paths of the external binaries.
type Tools struct {
	Lsscsi          string `yaml:"lsscsi,omitempty"`
	SgInq           string `yaml:"sg_inq,omitempty"`
	SgSes           string `yaml:"sg_ses,omitempty"`
	ScsiTemperature string `yaml:"scsi_temperature,omitempty"`
}

// Thresholds control how temperatures are colorized in table output.
// They do not gate or alert on anything.
type Thresholds struct {
	WarningTemp  int `yaml:"warning_temp"`
	CriticalTemp int `yaml:"critical_temp"`
}

// Exporter configures the embedded Prometheus endpoint.
type Exporter struct {
	ListenAddress string `yaml:"listen_address,omitempty"`
	Port          int    `yaml:"port,omitempty"`
}

var defaultConfig = Config{
	Tools: Tools{
		Lsscsi:          "lsscsi",
		SgInq:           "sg_inq",
		SgSes:           "sg_ses",
		ScsiTemperature: "scsi_temperature",
	},
	Thresholds: Thresholds{
		WarningTemp:  45,
		CriticalTemp: 50,
	},
	Exporter: Exporter{
		ListenAddress: "0.0.0.0",
		Port:          9945,
	},
}

// Load reads the config from path, or from the first default location
// that exists. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		candidates := []string{
			"/etc/jbod/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/jbod/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply defaults for anything the file left empty.
	if cfg.Tools.Lsscsi == "" {
		cfg.Tools.Lsscsi = defaultConfig.Tools.Lsscsi
	}
	if cfg.Tools.SgInq == "" {
		cfg.Tools.SgInq = defaultConfig.Tools.SgInq
	}
	if cfg.Tools.SgSes == "" {
		cfg.Tools.SgSes = defaultConfig.Tools.SgSes
	}
	if cfg.Tools.ScsiTemperature == "" {
		cfg.Tools.ScsiTemperature = defaultConfig.Tools.ScsiTemperature
	}
	if cfg.Thresholds.WarningTemp == 0 {
		cfg.Thresholds.WarningTemp = defaultConfig.Thresholds.WarningTemp
	}
	if cfg.Thresholds.CriticalTemp == 0 {
		cfg.Thresholds.CriticalTemp = defaultConfig.Thresholds.CriticalTemp
	}
	if cfg.Exporter.ListenAddress == "" {
		cfg.Exporter.ListenAddress = defaultConfig.Exporter.ListenAddress
	}
	if cfg.Exporter.Port == 0 {
		cfg.Exporter.Port = defaultConfig.Exporter.Port
	}

	return &cfg, nil
}

// Requirements returns the binary requirements for an inventory pass,
// honoring any configured path overrides.
func (c *Config) Requirements() []runner.Requirement {
	return []runner.Requirement{
		{Tool: c.Tools.Lsscsi, Package: "lsscsi"},
		{Tool: c.Tools.SgInq, Package: "sg3-utils"},
		{Tool: c.Tools.SgSes, Package: "sg3-utils"},
		{Tool: c.Tools.ScsiTemperature, Package: "sg3-utils: scsi_temperature"},
	}
}
