package catalog

import "time"

func (r *SQLiteRepository) SetNow(now func() time.Time) { r.now = now }

func (r *PostgresRepository) SetNow(now func() time.Time) { r.now = now }
