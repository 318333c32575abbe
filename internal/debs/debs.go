package deps

import (
	"github.com/bwise1/court_cases/config"
	"github.com/bwise1/court_cases/internal/db"
	"github.com/bwise1/court_cases/util/websockets"
	"go.uber.org/zap"
)

type Dependencies struct {
	DB     *db.DB
	Logger *zap.Logger
	Hub    *websockets.Hub
}

func New(cfg *config.Config) (*Dependencies, error) {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.New(cfg.Dsn)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	deps := Dependencies{
		DB:     database,
		Logger: logger,
		Hub:    websockets.NewHub(),
	}
	return &deps, nil
}

func (d *Dependencies) Pool() db.Pool {
	return d.DB.Pool()
}

// Close releases the database pool and flushes the logger.
func (d *Dependencies) Close() {
	d.DB.Close()
	_ = d.Logger.Sync()
}
