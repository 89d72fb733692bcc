package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
)

type RequestRepo struct{ db *pgxpool.Pool }

func NewRequestRepo(db *pgxpool.Pool) *RequestRepo { return &RequestRepo{db: db} }

// The message count rides along with every listing; the client diffs it to
// detect new replies between polls.
const requestSelect = `
	SELECT r.id, r.employee_id, r.category, r.reason, r.status, r.request_date,
		COALESCE(m.user_id, ''), COALESCE(m.user_name, ''), COALESCE(m.user_email, ''), COALESCE(m.request_ip, ''),
		(SELECT COUNT(*) FROM ticket_messages tm WHERE tm.request_id = r.id) AS message_count
	FROM asset_requests r
	LEFT JOIN request_metadata m ON m.request_id = r.id`

func (r *RequestRepo) List(ctx context.Context) ([]models.AssetRequest, error) {
	rows, err := r.db.Query(ctx, requestSelect+` ORDER BY r.request_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListForUser returns only requests raised by the given employee or account.
func (r *RequestRepo) ListForUser(ctx context.Context, employeeID, userID string) ([]models.AssetRequest, error) {
	rows, err := r.db.Query(ctx,
		requestSelect+` WHERE r.employee_id = $1 OR m.user_id = $2 ORDER BY r.request_date DESC`,
		employeeID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]models.AssetRequest, error) {
	var out []models.AssetRequest
	for rows.Next() {
		var q models.AssetRequest
		if err := rows.Scan(
			&q.ID, &q.EmployeeID, &q.Category, &q.Reason, &q.Status, &q.RequestDate,
			&q.UserID, &q.UserName, &q.UserEmail, &q.RequestIP, &q.MessageCount,
		); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Upsert writes the request and its requester metadata in one transaction.
func (r *RequestRepo) Upsert(ctx context.Context, q *models.AssetRequest, meta repository.RequestMeta) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO asset_requests (id, employee_id, category, reason, status, request_date)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO UPDATE SET
				status=EXCLUDED.status, category=EXCLUDED.category, reason=EXCLUDED.reason
		`, q.ID, q.EmployeeID, q.Category, q.Reason, q.Status, q.RequestDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO request_metadata (request_id, user_id, user_name, user_email, request_ip)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (request_id) DO UPDATE SET
				user_name=EXCLUDED.user_name, user_email=EXCLUDED.user_email, request_ip=EXCLUDED.request_ip
		`, q.ID, meta.UserID, meta.UserName, meta.UserEmail, meta.RequestIP)
		return err
	})
}

func (r *RequestRepo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM asset_requests WHERE status='Pending'`).Scan(&n)
	return n, err
}

func (r *RequestRepo) Messages(ctx context.Context, requestID string) ([]models.TicketMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, request_id, sender_id, sender_name, message, timestamp
		FROM ticket_messages
		WHERE request_id = $1
		ORDER BY timestamp ASC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TicketMessage
	for rows.Next() {
		var m models.TicketMessage
		if err := rows.Scan(&m.ID, &m.RequestID, &m.SenderID, &m.SenderName, &m.Message, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *RequestRepo) AddMessage(ctx context.Context, msg *models.TicketMessage) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ticket_messages (id, request_id, sender_id, sender_name, message)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING timestamp
	`, msg.ID, msg.RequestID, msg.SenderID, msg.SenderName, msg.Message).Scan(&msg.Timestamp)
}
