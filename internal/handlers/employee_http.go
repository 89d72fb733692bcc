package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

type EmployeeHTTP struct {
	employees repository.EmployeeRepository
}

func NewEmployeeHTTP(employees repository.EmployeeRepository) *EmployeeHTTP {
	return &EmployeeHTTP{employees: employees}
}

func (h *EmployeeHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.employees.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Employee{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

func (h *EmployeeHTTP) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.Employee
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.Email) == "" {
			utils.Error(w, http.StatusBadRequest, "id and email are required")
			return
		}
		if err := h.employees.Upsert(r.Context(), &e); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

func (h *EmployeeHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := h.employees.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
