package detectionRepository

import (
	"FaceGuard/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Results:  &resultRepository{q: db, log: r.log},
		Logs:     &logRepository{q: db, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Results interface {
		CreateResult(ctx context.Context, result entity.DetectionResult) error
		ListResults(ctx context.Context, skip, limit int) ([]entity.DetectionResult, int, error)
		DeleteResult(ctx context.Context, id string) error
		GetStats(ctx context.Context) (entity.DetectionStats, error)
	}

	Logs interface {
		CreateLog(ctx context.Context, logEntry entity.DetectionLog) error
		ListLogs(ctx context.Context, skip, limit int) ([]entity.DetectionLog, int, error)
	}

	Commit   func() error
	Rollback func() error
}

type resultRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type logRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
