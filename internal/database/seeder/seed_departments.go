package seeder

import (
	"context"
	"fmt"
	"strings"

	"estagios/internal/database"
)

type DepartmentsSeeder struct {
	Names []string
}

func (DepartmentsSeeder) Name() string { return "departamentos" }

func (s DepartmentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "departamentos", "nome", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range s.Names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, err := tx.Exec(ctx, `INSERT INTO departamentos (nome) VALUES ($1) ON CONFLICT (nome) DO NOTHING`, name); err != nil {
				return fmt.Errorf("insert %q: %w", name, err)
			}
		}
		return nil
	})
}
