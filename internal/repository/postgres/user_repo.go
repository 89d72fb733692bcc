package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

// Create stores the account (bcrypt hash in password_h) and, when requested,
// an employee record reusing any existing one with the same email.
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string, createEmployee bool, department string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var employeeID string
		err := tx.QueryRow(ctx, `SELECT id FROM employees WHERE email=$1`, u.Email).Scan(&employeeID)
		if err != nil && err != pgx.ErrNoRows {
			return err
		}

		if employeeID == "" && createEmployee {
			employeeID = uuid.NewString()
			role := "Employee"
			if u.Role == models.RoleAdmin {
				role = "Administrator"
			}
			if department == "" {
				department = "Staff"
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO employees (id, name, email, department, role, join_date)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, employeeID, u.Name, u.Email, department, role, time.Now().Format("2006-01-02")); err != nil {
				return err
			}
		}
		u.EmployeeID = employeeID

		return tx.QueryRow(ctx, `
			INSERT INTO users (id, name, email, password_h, role, employee_id)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING created_at
		`, u.ID, u.Name, u.Email, passwordHash, u.Role, nullIfEmpty(employeeID)).Scan(&u.CreatedAt)
	})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, COALESCE(employee_id, ''), password_h, created_at
		FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.EmployeeID, &ph, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, COALESCE(employee_id, ''), created_at
		FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.EmployeeID, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, role, COALESCE(employee_id, ''), created_at
		FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.EmployeeID, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_h=$1 WHERE id=$2`, passwordHash, id)
	return err
}
