package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) FreeAudioReports(c echo.Context) error {
	ctx := c.Request().Context()

	reports, err := h.reportService.FreeAudioReports(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) PaidAudioReports(c echo.Context) error {
	ctx := c.Request().Context()

	reports, err := h.reportService.PaidAudioReports(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) CustomAudioReports(c echo.Context) error {
	ctx := c.Request().Context()

	reports, err := h.reportService.CustomAudioReports(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reports)
}
