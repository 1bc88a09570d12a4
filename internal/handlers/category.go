package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"finbook/internal/auth"
	dom "finbook/internal/domain"
	"finbook/internal/dto"
	"finbook/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category CRUD.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler returns a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListCategoriesResponse
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list categories failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Items: categoriesToResponses(list)})
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCategoryRequest  true  "Category body"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), userID, req.Name, req.Type, req.Icon)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and type (income|expense) required"})
		case errors.Is(err, service.ErrDuplicateCategory):
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		default:
			slog.Error("create category failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(cat))
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id   path  int  true  "Category ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "category in use"})
		default:
			slog.Error("delete category failed", "user_id", userID, "category_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func categoryToResponse(cat dom.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Type:      string(cat.Type),
		Icon:      cat.Icon,
		CreatedAt: cat.CreatedAt,
	}
}

func categoriesToResponses(list []dom.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, len(list))
	for i := range list {
		out[i] = categoryToResponse(list[i])
	}
	return out
}
