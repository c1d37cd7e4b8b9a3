// Package builder implements the definitions ETL pipeline: extract a
// TrID RIFF package, transform it into validated, ranked Definitions,
// and load the result as a binary/JSON package pair plus per-bucket
// log files.
package builder

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// Config drives one Build invocation. Decodable from YAML, mirroring
// the way syncthing's own components take a config struct.
type Config struct {
	TrIDPackagePath string `yaml:"trid_package_path"`
	AllowListPath   string `yaml:"allow_list_path"`
	OutputDir       string `yaml:"output_dir"`
	LogDir          string `yaml:"log_dir"`
	PackageName     string `yaml:"package_name"` // filename stem, default "definitions"
	Version         string `yaml:"version"`
}

func (c *Config) applyDefaults() {
	if c.PackageName == "" {
		c.PackageName = "definitions"
	}
	if c.Version == "" {
		c.Version = "0.0.0"
	}
	if c.LogDir == "" {
		c.LogDir = c.OutputDir
	}
}

func (c *Config) validate() error {
	const op = "builder.Config.validate"
	if c.TrIDPackagePath == "" {
		return rheoerr.New(rheoerr.InvalidArgument, op, "trid_package_path", nil)
	}
	if c.AllowListPath == "" {
		return rheoerr.New(rheoerr.InvalidArgument, op, "allow_list_path", nil)
	}
	if c.OutputDir == "" {
		return rheoerr.New(rheoerr.InvalidArgument, op, "output_dir", nil)
	}
	return nil
}

// LoadConfig reads and decodes a YAML config file, applying defaults
// and validating the result.
func LoadConfig(path string) (*Config, error) {
	const op = "builder.LoadConfig"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rheoerr.FromOS(op, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
