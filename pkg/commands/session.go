package commands

import (
	homedir "github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/store"
)

// rootOptions are the persistent flags every subcommand shares.
type rootOptions struct {
	Path    string
	Verbose bool

	loggers []*zap.Logger
}

// config resolves the store location: --path wins over the config file.
func (o *rootOptions) config() (store.Config, error) {
	if o.Path == "" {
		return store.LoadConfig()
	}
	path, err := homedir.Expand(o.Path)
	if err != nil {
		return nil, err
	}
	return store.PathConfig(path), nil
}

// Service builds the app service backed by the configured store.
func (o *rootOptions) Service() (*app.Service, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(o.Verbose || store.Verbose(cfg))
	if err != nil {
		return nil, err
	}
	o.loggers = append(o.loggers, log)
	return &app.Service{Persistence: p, Logger: log}, nil
}

// syncLoggers flushes every logger handed out by Service.
func (o *rootOptions) syncLoggers() {
	for _, log := range o.loggers {
		// stderr cannot be synced on some platforms
		_ = log.Sync()
	}
	o.loggers = nil
}

// newLogger returns a development logger when verbose, otherwise a
// production logger that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
