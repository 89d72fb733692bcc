package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

type AssignmentHTTP struct {
	assignments repository.AssignmentRepository
}

func NewAssignmentHTTP(assignments repository.AssignmentRepository) *AssignmentHTTP {
	return &AssignmentHTTP{assignments: assignments}
}

func (h *AssignmentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.assignments.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Assignment{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

func (h *AssignmentHTTP) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.Assignment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.AssetID) == "" || strings.TrimSpace(a.EmployeeID) == "" {
			utils.Error(w, http.StatusBadRequest, "id, assetId and employeeId are required")
			return
		}
		if err := h.assignments.Upsert(r.Context(), &a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, a)
	}
}
