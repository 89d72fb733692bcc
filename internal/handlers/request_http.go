package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apto-jkhatri/it-asset-management-app/internal/middleware"
	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

// RequestHTTP serves asset requests (service tickets) and their chat messages.
type RequestHTTP struct {
	requests repository.RequestRepository
	users    repository.UserRepository
}

func NewRequestHTTP(requests repository.RequestRepository, users repository.UserRepository) *RequestHTTP {
	return &RequestHTTP{requests: requests, users: users}
}

func (h *RequestHTTP) currentUser(r *http.Request) *models.User {
	uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	if uid == "" {
		return nil
	}
	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		return nil
	}
	return u
}

// GET /api/requests: admins see everything, users only their own.
func (h *RequestHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := h.currentUser(r)
		if u == nil {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		var items []models.AssetRequest
		var err error
		if u.Role == models.RoleAdmin {
			items, err = h.requests.List(r.Context())
		} else {
			items, err = h.requests.ListForUser(r.Context(), u.EmployeeID, u.ID)
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.AssetRequest{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/requests is an upsert. The employee id always comes from the session
// for non-admins, so a user cannot file tickets on someone else's behalf.
func (h *RequestHTTP) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := h.currentUser(r)
		if u == nil {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		var q models.AssetRequest
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(q.ID) == "" {
			utils.Error(w, http.StatusBadRequest, "id is required")
			return
		}
		if u.Role != models.RoleAdmin || strings.TrimSpace(q.EmployeeID) == "" {
			q.EmployeeID = u.EmployeeID
		}

		meta := repository.RequestMeta{
			UserID:    u.ID,
			UserName:  u.Name,
			UserEmail: u.Email,
			RequestIP: clientIP(r),
		}
		if err := h.requests.Upsert(r.Context(), &q, meta); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, q)
	}
}

// GET /api/requests/{id}/messages
func (h *RequestHTTP) Messages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		msgs, err := h.requests.Messages(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if msgs == nil {
			msgs = []models.TicketMessage{}
		}
		utils.JSON(w, http.StatusOK, msgs)
	}
}

// POST /api/requests/{id}/messages appends to the ticket chat.
func (h *RequestHTTP) AddMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := h.currentUser(r)
		if u == nil {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		var in struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Message = strings.TrimSpace(in.Message)
		if in.Message == "" {
			utils.Error(w, http.StatusBadRequest, "message is required")
			return
		}

		msg := models.TicketMessage{
			ID:         uuid.NewString(),
			RequestID:  id,
			SenderID:   u.ID,
			SenderName: u.Name,
			Message:    in.Message,
		}
		if err := h.requests.AddMessage(r.Context(), &msg); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, msg)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return r.RemoteAddr
}
