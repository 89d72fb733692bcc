package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/service"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

// UserHTTP is the admin account-management surface.
type UserHTTP struct {
	svc   *service.AuthService
	users repository.UserRepository
}

func NewUserHTTP(svc *service.AuthService, users repository.UserRepository) *UserHTTP {
	return &UserHTTP{svc: svc, users: users}
}

// GET /api/users
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.users.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.User{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/users creates an account, optionally with a linked employee record.
func (h *UserHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name                 string `json:"name"`
			Email                string `json:"email"`
			Password             string `json:"password"`
			Role                 string `json:"role"`
			Department           string `json:"department"`
			ShouldCreateEmployee bool   `json:"shouldCreateEmployee"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := h.svc.CreateUser(r.Context(), service.NewUser{
			Name:           in.Name,
			Email:          in.Email,
			Password:       in.Password,
			Role:           in.Role,
			Department:     in.Department,
			CreateEmployee: in.ShouldCreateEmployee,
		})
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// DELETE /api/users/{id}
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := h.users.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PUT /api/users/{id}/password: self or admin, enforced by route middleware.
func (h *UserHTTP) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := h.svc.ResetPassword(r.Context(), id, in.Password); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
