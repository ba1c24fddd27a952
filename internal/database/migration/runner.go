package migration

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Runner applies the embedded goose migrations against a database/sql handle.
type Runner struct {
	FS     fs.FS
	Logger *zap.Logger
}

func (r Runner) provider(db *sql.DB) (*goose.Provider, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if r.FS == nil {
		return nil, errors.New("nil migrations fs")
	}
	return goose.NewProvider(goose.DialectPostgres, db, r.FS)
}

func (r Runner) Up(ctx context.Context, db *sql.DB) error {
	p, err := r.provider(db)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	for _, res := range results {
		r.logResult("migration applied", res)
	}
	return err
}

// Down rolls back the most recently applied migration.
func (r Runner) Down(ctx context.Context, db *sql.DB) error {
	p, err := r.provider(db)
	if err != nil {
		return err
	}

	res, err := p.Down(ctx)
	if res != nil {
		r.logResult("migration rolled back", res)
	}
	return err
}

type Status struct {
	Version int64
	Path    string
	Applied bool
}

func (r Runner) Status(ctx context.Context, db *sql.DB) ([]Status, error) {
	p, err := r.provider(db)
	if err != nil {
		return nil, err
	}

	items, err := p.Status(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(items))
	for _, it := range items {
		if it == nil || it.Source == nil {
			continue
		}
		out = append(out, Status{
			Version: it.Source.Version,
			Path:    it.Source.Path,
			Applied: it.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (r Runner) logResult(msg string, res *goose.MigrationResult) {
	if r.Logger == nil || res == nil || res.Source == nil {
		return
	}
	r.Logger.Info(msg,
		zap.Int64("version", res.Source.Version),
		zap.String("path", res.Source.Path),
		zap.Duration("duration", res.Duration),
	)
}
