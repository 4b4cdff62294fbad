package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/repository"
	"audio-marketplace/internal/service"
)

type CustomAudioHandler struct {
	requestService service.CustomRequestService
}

func NewCustomAudioHandler(requestService service.CustomRequestService) *CustomAudioHandler {
	return &CustomAudioHandler{
		requestService: requestService,
	}
}

func (h *CustomAudioHandler) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCustomRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	request, err := h.requestService.CreateRequest(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Custom audio request created successfully",
		"data":    request,
	})
}

func (h *CustomAudioHandler) UpdateRequest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCustomRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	request, err := h.requestService.UpdateRequest(ctx, id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Custom audio request updated successfully",
		"data":    request,
	})
}

func (h *CustomAudioHandler) ListRequests(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &repository.CustomRequestFilter{
		Status: c.QueryParam("status"),
		Page:   1,
		Limit:  10,
	}
	if v := c.QueryParam("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := c.QueryParam("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.QueryParam("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndDate = &t
		}
	}

	result, err := h.requestService.ListRequests(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
