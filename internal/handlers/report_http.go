package handlers

import (
	"net/http"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository"
	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

type ReportsHTTP struct {
	assets   repository.AssetRepository
	requests repository.RequestRepository
}

func NewReportsHTTP(assets repository.AssetRepository, requests repository.RequestRepository) *ReportsHTTP {
	return &ReportsHTTP{assets: assets, requests: requests}
}

// GET /api/reports/summary
// Returns asset counts by status plus the pending-request backlog.
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		byStatus, err := h.assets.CountByStatus(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		pending, err := h.requests.CountPending(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		total := 0
		for _, n := range byStatus {
			total += n
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"totalAssets":     total,
			"available":       byStatus[models.StatusAvailable],
			"assigned":        byStatus[models.StatusAssigned],
			"inRepair":        byStatus[models.StatusInRepair],
			"retired":         byStatus[models.StatusRetired],
			"pendingRequests": pending,
		})
	}
}
