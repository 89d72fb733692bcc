package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

type AssignmentRepo struct{ db *pgxpool.Pool }

func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo { return &AssignmentRepo{db: db} }

func (r *AssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, asset_id, employee_id, borrow_date,
			COALESCE(expected_return_date, ''), COALESCE(returned_date, ''),
			COALESCE(notes, ''), is_active
		FROM assignments
		ORDER BY borrow_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(
			&a.ID, &a.AssetID, &a.EmployeeID, &a.BorrowDate,
			&a.ExpectedReturnDate, &a.ReturnedDate, &a.Notes, &a.IsActive,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert inserts a new assignment or records a return on an existing one.
// Only the return-related columns change on conflict.
func (r *AssignmentRepo) Upsert(ctx context.Context, a *models.Assignment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO assignments (id, asset_id, employee_id, borrow_date, expected_return_date, returned_date, notes, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			returned_date=EXCLUDED.returned_date, notes=EXCLUDED.notes, is_active=EXCLUDED.is_active
	`,
		a.ID, a.AssetID, a.EmployeeID, a.BorrowDate,
		nullIfEmpty(a.ExpectedReturnDate), nullIfEmpty(a.ReturnedDate), nullIfEmpty(a.Notes), a.IsActive,
	)
	return err
}
