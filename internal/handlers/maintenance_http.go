package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

type MaintenanceHTTP struct {
	logs repository.MaintenanceRepository
}

func NewMaintenanceHTTP(logs repository.MaintenanceRepository) *MaintenanceHTTP {
	return &MaintenanceHTTP{logs: logs}
}

func (h *MaintenanceHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.logs.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.MaintenanceLog{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

func (h *MaintenanceHTTP) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m models.MaintenanceLog
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.AssetID) == "" {
			utils.Error(w, http.StatusBadRequest, "id and assetId are required")
			return
		}
		if err := h.logs.Upsert(r.Context(), &m); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, m)
	}
}
