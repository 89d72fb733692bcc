package handlers

import (
	"net/http"

	"github.com/apto-jkhatri/it-asset-management-app/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
