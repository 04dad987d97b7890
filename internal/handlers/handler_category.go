package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler serves petty-cash categories and cash-flow sub-categories.
type categoryHandler struct {
	categoryService    portssvc.CategorySvcFacade
	subCategoryService portssvc.SubCategorySvcFacade
}

func registerCategoryRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade, scs portssvc.SubCategorySvcFacade) {
	h := &categoryHandler{categoryService: cs, subCategoryService: scs}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/:id", h.getCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}

	subCategories := rg.Group("/sub-categories")
	{
		subCategories.GET("", h.listSubCategories)
		subCategories.POST("", h.createSubCategory)
		subCategories.GET("/:id", h.getSubCategory)
		subCategories.PUT("/:id", h.updateSubCategory)
		subCategories.DELETE("/:id", h.deleteSubCategory)
	}
}

// @Summary List petty-cash categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// @Summary Create a petty-cash category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} ErrorResponse "Name already used"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), id, userID); err != nil {
		respondError(c, logger, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List cash-flow sub-categories
// @Description Ordered by kind, then sort order, then id.
// @Tags sub-categories
// @Produce json
// @Success 200 {array} dto.SubCategoryResponse
// @Security BearerAuth
// @Router /sub-categories [get]
func (h *categoryHandler) listSubCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	subCats, err := h.subCategoryService.ListSubCategories(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list sub-categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubCategoryResponse(subCats))
}

// @Summary Create a cash-flow sub-category
// @Tags sub-categories
// @Accept json
// @Produce json
// @Param subCategory body dto.CreateSubCategoryRequest true "Sub-category"
// @Success 201 {object} dto.SubCategoryResponse
// @Security BearerAuth
// @Router /sub-categories [post]
func (h *categoryHandler) createSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	subCat, err := h.subCategoryService.CreateSubCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create sub-category")
		return
	}
	logger.Info("Sub-category created", slog.Int64("sub_category_id", subCat.ID))
	c.JSON(http.StatusCreated, dto.ToSubCategoryResponse(subCat))
}

func (h *categoryHandler) getSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	subCat, err := h.subCategoryService.GetSubCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sub-category")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubCategoryResponse(subCat))
}

func (h *categoryHandler) updateSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	subCat, err := h.subCategoryService.UpdateSubCategory(c.Request.Context(), id, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update sub-category")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubCategoryResponse(subCat))
}

// deleteSubCategory godoc
// @Summary Delete a sub-category
// @Tags sub-categories
// @Param id path int true "Sub-category ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Still referenced by cash-flow entries"
// @Security BearerAuth
// @Router /sub-categories/{id} [delete]
func (h *categoryHandler) deleteSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	id, ok := int64Param(c, logger, "id")
	if !ok {
		return
	}
	if err := h.subCategoryService.DeleteSubCategory(c.Request.Context(), id, userID); err != nil {
		respondError(c, logger, err, "Failed to delete sub-category")
		return
	}
	c.Status(http.StatusNoContent)
}
