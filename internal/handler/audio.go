package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/service"
)

type AudioHandler struct {
	catalogService service.CatalogService
}

func NewAudioHandler(catalogService service.CatalogService) *AudioHandler {
	return &AudioHandler{
		catalogService: catalogService,
	}
}

// parseUpload reads the optional multipart audio file. A missing file is
// not an error here; create/update decide whether it is required.
func parseUpload(c echo.Context) (*service.Upload, error) {
	fileHeader, err := c.FormFile("audioFile")
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read audio file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read audio file")
	}

	return &service.Upload{
		Data:         data,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		OriginalName: fileHeader.Filename,
	}, nil
}

func parseAudioInput(c echo.Context, paid bool) (*service.AudioInput, error) {
	rating, _ := strconv.ParseFloat(c.FormValue("rating"), 64)
	categoryID, _ := strconv.ParseUint(c.FormValue("categoryId"), 10, 64)
	subCategoryID, _ := strconv.ParseUint(c.FormValue("subCategoryId"), 10, 64)

	input := &service.AudioInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Rating:        rating,
		CategoryID:    uint(categoryID),
		SubCategoryID: uint(subCategoryID),
		Language:      c.FormValue("language"),
		Voice:         c.FormValue("voice"),
	}

	if paid {
		price, err := decimal.NewFromString(c.FormValue("priceAmount"))
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "priceAmount is required")
		}
		input.PriceAmount = price
	}

	return input, nil
}

// audioUpdates collects the multipart fields present on an update request
// into a partial column map.
func audioUpdates(c echo.Context, paid bool) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if v := c.FormValue("title"); v != "" {
		updates["title"] = v
	}
	if v := c.FormValue("description"); v != "" {
		updates["description"] = v
	}
	if v := c.FormValue("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "rating must be between 0 and 5")
		}
		updates["rating"] = rating
	}
	if v := c.FormValue("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		updates["category_id"] = uint(id)
	}
	if v := c.FormValue("subCategoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid subCategoryId")
		}
		updates["sub_category_id"] = uint(id)
	}
	if v := c.FormValue("language"); v != "" {
		updates["language"] = v
	}
	if v := c.FormValue("voice"); v != "" {
		updates["voice"] = v
	}
	if paid {
		if v := c.FormValue("priceAmount"); v != "" {
			price, err := decimal.NewFromString(v)
			if err != nil || price.IsNegative() {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "priceAmount must be greater than or equal to 0")
			}
			updates["price_amount"] = price
		}
	}

	return updates, nil
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ---- free audio ----

func (h *AudioHandler) AddFreeAudio(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := parseAudioInput(c, false)
	if err != nil {
		return err
	}
	upload, err := parseUpload(c)
	if err != nil {
		return err
	}

	audio, err := h.catalogService.CreateFreeAudio(ctx, input, upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Audio uploaded successfully",
		"audio":   audio,
	})
}

func (h *AudioHandler) GetFreeAudios(c echo.Context) error {
	ctx := c.Request().Context()

	audios, err := h.catalogService.ListFreeAudios(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    audios,
		"count":   len(audios),
	})
}

func (h *AudioHandler) UpdateFreeAudio(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}
	updates, err := audioUpdates(c, false)
	if err != nil {
		return err
	}
	upload, err := parseUpload(c)
	if err != nil {
		return err
	}

	audio, err := h.catalogService.UpdateFreeAudio(ctx, id, updates, upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Audio updated successfully",
		"data":    audio,
	})
}

func (h *AudioHandler) DeleteFreeAudio(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.catalogService.DeleteFreeAudio(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Audio deleted successfully",
		"deletedAudio": map[string]interface{}{
			"title": deleted.Title,
		},
	})
}

func (h *AudioHandler) SendFreeAudio(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SendFreeAudioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.catalogService.SendFreeAudio(ctx, req.AudioID, req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Audio sent successfully",
	})
}

// ---- paid audio ----

func (h *AudioHandler) AddPaidAudio(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := parseAudioInput(c, true)
	if err != nil {
		return err
	}
	upload, err := parseUpload(c)
	if err != nil {
		return err
	}

	audio, err := h.catalogService.CreatePaidAudio(ctx, input, upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Paid audio uploaded successfully",
		"audio":   audio,
	})
}

func (h *AudioHandler) GetPaidAudios(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.catalogService.ListPaidAudios(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AudioHandler) UpdatePaidAudio(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}
	updates, err := audioUpdates(c, true)
	if err != nil {
		return err
	}
	upload, err := parseUpload(c)
	if err != nil {
		return err
	}

	audio, err := h.catalogService.UpdatePaidAudio(ctx, id, updates, upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Paid Audio updated successfully",
		"data":    audio,
	})
}

func (h *AudioHandler) DeletePaidAudio(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.catalogService.DeletePaidAudio(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Paid audio deleted successfully",
		"deletedAudio": map[string]interface{}{
			"title":       deleted.Title,
			"priceAmount": deleted.PriceAmount,
		},
	})
}
