package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/aksara-server/internal/logger"
	"github.com/dtroode/aksara-server/internal/model"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
	Stat() model.PoolStat
}

// Status handles the liveness and database reachability probe.
type Status struct {
	pinger Pinger
	logger *logger.Logger
}

func NewStatus(pinger Pinger, logger *logger.Logger) *Status {
	return &Status{pinger: pinger, logger: logger}
}

type statusResponse struct {
	Status  string `json:"status"`
	DB      string `json:"db"`
	Message string `json:"message"`
}

func (h *Status) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		stat := h.pinger.Stat()
		h.logger.Error("Status handler: database check failed",
			"acquired", stat.Acquired,
			"total", stat.Total,
			"max", stat.Max,
			"error", err.Error())

		message := "database connection failed"
		if errors.Is(err, model.ErrNotConfigured) {
			message = msgNotConfigured
		}
		WriteJSON(w, http.StatusInternalServerError, statusResponse{
			Status:  "Error",
			DB:      "Failed",
			Message: message,
		})
		return
	}

	WriteJSON(w, http.StatusOK, statusResponse{
		Status:  "OK",
		DB:      "Connected",
		Message: "API is running successfully",
	})
}
