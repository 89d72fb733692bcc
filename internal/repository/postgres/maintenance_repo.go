package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

type MaintenanceRepo struct{ db *pgxpool.Pool }

func NewMaintenanceRepo(db *pgxpool.Pool) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

func (r *MaintenanceRepo) List(ctx context.Context) ([]models.MaintenanceLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, asset_id, description, vendor, cost, date, status
		FROM maintenance_logs
		ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MaintenanceLog
	for rows.Next() {
		var m models.MaintenanceLog
		if err := rows.Scan(&m.ID, &m.AssetID, &m.Description, &m.Vendor, &m.Cost, &m.Date, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Upsert inserts a log or flips its status on conflict.
func (r *MaintenanceRepo) Upsert(ctx context.Context, m *models.MaintenanceLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO maintenance_logs (id, asset_id, description, vendor, cost, date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status
	`, m.ID, m.AssetID, m.Description, m.Vendor, m.Cost, m.Date, m.Status)
	return err
}
