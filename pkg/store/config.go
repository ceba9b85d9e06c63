package store

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultPath is where habits live unless configured otherwise.
const DefaultPath = "~/.consistency.db"

// Config locates the habit store on disk.
type Config interface {
	BasePath() string
}

// LoadConfig reads .consistency.yaml from $CONSISTENCY_CONFIG_PATH or the
// working directory. CONSISTENCY_* environment variables override the file.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("verbose", false)
	viper.SetConfigName(".consistency") // .yaml is implicit
	viper.SetEnvPrefix("CONSISTENCY")
	viper.AutomaticEnv()

	if override := os.Getenv("CONSISTENCY_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path, Verbose: viper.GetBool("verbose")}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	Verbose bool   `json:"verbose"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// Verbose reports whether the config asked for debug logging.
func Verbose(cfg Config) bool {
	if fc, ok := cfg.(*fileConfig); ok {
		return fc.Verbose
	}
	return false
}

// PathConfig is a Config fixed to a directory, used by tests and --path.
type PathConfig string

// BasePath implements Config.
func (p PathConfig) BasePath() string {
	return string(p)
}
