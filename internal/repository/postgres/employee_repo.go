package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

type EmployeeRepo struct{ db *pgxpool.Pool }

func NewEmployeeRepo(db *pgxpool.Pool) *EmployeeRepo { return &EmployeeRepo{db: db} }

func (r *EmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, department, role, join_date, COALESCE(avatar, '')
		FROM employees
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Role, &e.JoinDate, &e.Avatar); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Upsert writes the employee and keeps a linked account's email in sync,
// inside one transaction.
func (r *EmployeeRepo) Upsert(ctx context.Context, e *models.Employee) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO employees (id, name, email, department, role, join_date, avatar)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE SET
				name=EXCLUDED.name, email=EXCLUDED.email, department=EXCLUDED.department,
				role=EXCLUDED.role, join_date=EXCLUDED.join_date, avatar=EXCLUDED.avatar
		`, e.ID, e.Name, e.Email, e.Department, e.Role, e.JoinDate, nullIfEmpty(e.Avatar)); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE users SET email=$1 WHERE employee_id=$2`, e.Email, e.ID)
		return err
	})
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	return err
}
