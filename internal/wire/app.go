package wire

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/config"
	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/internal/session"
	"github.com/mithrel/inkleaf/internal/storage"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      config.Config
	V        *viper.Viper
	Log      *zap.Logger
	Storage  storage.Storage
	Renderer *render.Renderer
	Session  *session.Session

	closer io.Closer
}

// BuildApp wires dependencies from the loaded Viper instance.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	store, closer, err := storage.Open(ctx, cfg.StorageURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", zap.String("url", cfg.StorageURL))

	r := render.New(render.WithLogger(logger), render.WithCacheSize(cfg.Render.CacheSize))
	sess := session.Open(ctx, store,
		session.WithLogger(logger),
		session.WithConfirmer(confirm.NewTerminal("This cannot be undone.")),
	)
	return &App{
		Cfg:      cfg,
		V:        v,
		Log:      logger,
		Storage:  store,
		Renderer: r,
		Session:  sess,
		closer:   closer,
	}, nil
}

// Close releases storage and flushes the logger.
func (a *App) Close() error {
	var err error
	if a.closer != nil {
		err = a.closer.Close()
	}
	_ = a.Log.Sync()
	return err
}

// NewLogger builds a zap logger writing to stderr at cfg.Level.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "error":
		zc.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
