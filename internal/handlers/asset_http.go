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

type AssetHTTP struct {
	assets repository.AssetRepository
}

func NewAssetHTTP(assets repository.AssetRepository) *AssetHTTP {
	return &AssetHTTP{assets: assets}
}

// GET /api/assets?q=&status=&category=
func (h *AssetHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		items, err := h.assets.List(r.Context(), repository.AssetFilter{
			Q:        strings.TrimSpace(qv.Get("q")),
			Status:   strings.TrimSpace(qv.Get("status")),
			Category: strings.TrimSpace(qv.Get("category")),
			Limit:    utils.QueryInt(qv, "limit", 0),
		})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Asset{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/assets upserts a fully-formed entity with a client-supplied ID.
func (h *AssetHTTP) Upsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.Asset
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.Tag) == "" {
			utils.Error(w, http.StatusBadRequest, "id and tag are required")
			return
		}
		if err := h.assets.Upsert(r.Context(), &a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, a)
	}
}

// DELETE /api/assets/{id}
func (h *AssetHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := h.assets.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
