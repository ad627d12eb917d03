package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"triviagame/db"
)

type HealthHandler struct {
	database *sql.DB
}

func NewHealthHandler(database *sql.DB) *HealthHandler {
	return &HealthHandler{database: database}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx, h.database); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{"status": "healthy"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
