package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
)

type AssetRepo struct{ db *pgxpool.Pool }

func NewAssetRepo(db *pgxpool.Pool) *AssetRepo { return &AssetRepo{db: db} }

func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter) ([]models.Asset, error) {
	conds := []string{"1=1"}
	args := []any{}

	if q := strings.TrimSpace(f.Q); q != "" {
		p := "%" + q + "%"
		args = append(args, p, p, p)
		conds = append(conds, "(tag ILIKE $"+itoa(len(args)-2)+" OR name ILIKE $"+itoa(len(args)-1)+" OR serial_number ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		conds = append(conds, "status = $"+itoa(len(args)))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		args = append(args, c)
		conds = append(conds, "category = $"+itoa(len(args)))
	}

	sql := `
		SELECT id, tag, name, serial_number, category, vendor, purchase_date, cost,
			status, condition, location, COALESCE(assigned_to, ''), COALESCE(image, '')
		FROM assets
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY purchase_date DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += " LIMIT $" + itoa(len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.Tag, &a.Name, &a.SerialNumber, &a.Category, &a.Vendor,
			&a.PurchaseDate, &a.Cost, &a.Status, &a.Condition, &a.Location,
			&a.AssignedTo, &a.Image,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert writes a fully-formed asset. IDs are generated client-side, so create
// and update share one statement.
func (r *AssetRepo) Upsert(ctx context.Context, a *models.Asset) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO assets (id, tag, name, serial_number, category, vendor, purchase_date, cost, status, condition, location, assigned_to, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			tag=EXCLUDED.tag, name=EXCLUDED.name, serial_number=EXCLUDED.serial_number,
			category=EXCLUDED.category, vendor=EXCLUDED.vendor, purchase_date=EXCLUDED.purchase_date,
			cost=EXCLUDED.cost, status=EXCLUDED.status, condition=EXCLUDED.condition,
			location=EXCLUDED.location, assigned_to=EXCLUDED.assigned_to, image=EXCLUDED.image
	`,
		a.ID, a.Tag, a.Name, a.SerialNumber, a.Category, a.Vendor, a.PurchaseDate,
		a.Cost, a.Status, a.Condition, a.Location, nullIfEmpty(a.AssignedTo), nullIfEmpty(a.Image),
	)
	return err
}

func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id=$1`, id)
	return err
}

// CountByStatus feeds the summary report.
func (r *AssetRepo) CountByStatus(ctx context.Context) (map[models.AssetStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM assets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.AssetStatus]int{}
	for rows.Next() {
		var s models.AssetStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// small helper to avoid fmt for query building.
func itoa(i int) string { return strconv.Itoa(i) }
