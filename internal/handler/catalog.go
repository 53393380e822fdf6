package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/service"
)

type CatalogHandler struct {
	svc      *service.CatalogService
	password string
	log      *slog.Logger
}

func NewCatalogHandler(svc *service.CatalogService, password string, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, password: password, log: log}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	cat, err := h.svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.CreatedResponse{ID: cat.ID, Name: cat.Name})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.Admin
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	var categoryID int64
	if raw := c.Param("id"); raw != "" {
		var ok bool
		if categoryID, ok = pathID(c, "id"); !ok {
			return
		}
	}

	subs, err := h.svc.Subcategories(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *CatalogHandler) CreateSubcategory(c *gin.Context) {
	var req dto.CreateSubcategoryRequest
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	sub, err := h.svc.CreateSubcategory(c.Request.Context(), req.CategoryID, req.Name)
	if err != nil {
		respondError(c, h.log, err, "category not found")
		return
	}
	c.JSON(http.StatusOK, dto.CreatedResponse{ID: sub.ID, Name: sub.Name})
}

func (h *CatalogHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.Admin
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	if err := h.svc.DeleteSubcategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	// a non-numeric filter is ignored, not rejected
	var subcategoryID int64
	if raw := c.Query("subcategoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			subcategoryID = id
		}
	}

	prods, err := h.svc.Products(c.Request.Context(), subcategoryID)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, prods)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Product(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "subcategory not found")
		return
	}
	c.JSON(http.StatusOK, dto.CreatedResponse{ID: p.ID, Name: p.Name})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	if err := h.svc.UpdateProduct(c.Request.Context(), id, req); err != nil {
		respondError(c, h.log, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.Admin
	if !bindBody(c, &req) {
		return
	}
	if !authorize(c, req.Password, h.password) {
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
