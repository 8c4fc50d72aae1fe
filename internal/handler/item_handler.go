package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/priority-items/internal/model"
	"github.com/shinyyama/priority-items/internal/service"
	"go.uber.org/zap"
)

type ItemHandler struct {
	svc service.ItemService
	log *zap.Logger
}

func NewItemHandler(svc service.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: log}
}

type ItemResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriorityID    uint64 `json:"priorityId"`
	PriorityLabel string `json:"priorityLabel"`
}

// ItemRequest is the body of both create and update. All three fields must be
// present; description may be the empty string.
type ItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
	PriorityID  uint64  `json:"priorityId" validate:"required"`
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Create(c echo.Context) error {
	req, err := bindItemRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.Create(c.Request().Context(), req.Name, *req.Description, req.PriorityID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	req, err := bindItemRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.Update(c.Request().Context(), id, req.Name, *req.Description, req.PriorityID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, c.Param("id"))
	}
	return id, nil
}

func bindItemRequest(c echo.Context) (*ItemRequest, error) {
	var req ItemRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return nil, fmt.Errorf("%w: invalid json", errBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return &req, nil
}

func toItemResponse(item *model.ItemView) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		PriorityID:    item.PriorityID,
		PriorityLabel: item.PriorityLabel,
	}
}
