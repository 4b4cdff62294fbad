package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/service"
)

type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
	}
}

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
}

type subCategoryRequest struct {
	Name       string `json:"name"`
	CategoryID uint   `json:"categoryId"`
}

func (h *TaxonomyHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.taxonomyService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    categories,
	})
}

func (h *TaxonomyHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.taxonomyService.CreateCategory(ctx, req.CategoryName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    category,
	})
}

func (h *TaxonomyHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.taxonomyService.UpdateCategory(ctx, id, req.CategoryName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    category,
	})
}

func (h *TaxonomyHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taxonomyService.DeleteCategory(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Category deleted successfully",
	})
}

func (h *TaxonomyHandler) GetSubCategories(c echo.Context) error {
	ctx := c.Request().Context()

	subCategories, err := h.taxonomyService.ListSubCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    subCategories,
	})
}

func (h *TaxonomyHandler) GetSubCategoriesByCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	subCategories, err := h.taxonomyService.ListSubCategoriesByCategory(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    subCategories,
	})
}

func (h *TaxonomyHandler) CreateSubCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req subCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subCategory, err := h.taxonomyService.CreateSubCategory(ctx, req.Name, req.CategoryID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    subCategory,
	})
}

func (h *TaxonomyHandler) UpdateSubCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req subCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subCategory, err := h.taxonomyService.UpdateSubCategory(ctx, id, req.Name, req.CategoryID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    subCategory,
	})
}

func (h *TaxonomyHandler) DeleteSubCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taxonomyService.DeleteSubCategory(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Subcategory deleted successfully",
	})
}
