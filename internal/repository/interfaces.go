package repository

import (
	"context"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

type AssetRepository interface {
	List(ctx context.Context, f AssetFilter) ([]models.Asset, error)
	Upsert(ctx context.Context, a *models.Asset) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[models.AssetStatus]int, error)
}

type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	Upsert(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Upsert(ctx context.Context, a *models.Assignment) error
}

type MaintenanceRepository interface {
	List(ctx context.Context) ([]models.MaintenanceLog, error)
	Upsert(ctx context.Context, m *models.MaintenanceLog) error
}

// RequestMeta records the account behind a request, captured server-side.
type RequestMeta struct {
	UserID    string
	UserName  string
	UserEmail string
	RequestIP string
}

type RequestRepository interface {
	List(ctx context.Context) ([]models.AssetRequest, error)
	ListForUser(ctx context.Context, employeeID, userID string) ([]models.AssetRequest, error)
	Upsert(ctx context.Context, r *models.AssetRequest, meta RequestMeta) error
	CountPending(ctx context.Context) (int, error)
	Messages(ctx context.Context, requestID string) ([]models.TicketMessage, error)
	AddMessage(ctx context.Context, msg *models.TicketMessage) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string, createEmployee bool, department string) error
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
