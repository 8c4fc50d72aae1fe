package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/priority-items/internal/service"
	"go.uber.org/zap"
)

type PriorityHandler struct {
	svc service.PriorityService
	log *zap.Logger
}

func NewPriorityHandler(svc service.PriorityService, log *zap.Logger) *PriorityHandler {
	return &PriorityHandler{svc: svc, log: log}
}

type PriorityResponse struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

func (h *PriorityHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	resp := make([]PriorityResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, PriorityResponse{ID: p.ID, Label: p.Label})
	}
	return c.JSON(http.StatusOK, resp)
}
