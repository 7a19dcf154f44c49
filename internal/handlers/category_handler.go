package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kharcha/internal/errors"
	"kharcha/internal/services"
)

// deleteWarning is returned with every category/subcategory delete:
// expenses hold the name by value and are deliberately left untouched.
const deleteWarning = "Existing expenses keep the deleted name; they are not updated"

// CategoryHandler handles category and subcategory requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the payload for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// SubCategoryRequest represents the payload for creating or renaming a subcategory
type SubCategoryRequest struct {
	Name       string  `json:"name" binding:"required"`
	CategoryID *string `json:"category_id"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new expense category in the user's partition
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} map[string]interface{} "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category name already exists"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(owner, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles the retrieval of all categories
// @Summary     Get all categories
// @Description Get all categories in the user's partition, ordered by name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "List of categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(owner)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCategory handles renaming a category
// @Summary     Rename category
// @Description Rename an existing category; the new name must be unused
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body CategoryRequest true "New category name"
// @Success     200 {object} map[string]interface{} "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category name already exists"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.RenameCategory(owner, categoryID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category by ID; expenses referencing it are untouched
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(owner, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
		"warning": deleteWarning,
	})
}

// CreateSubCategory handles the creation of a new subcategory
// @Summary     Create a subcategory
// @Description Create a new expense subcategory in the user's partition
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubCategoryRequest true "Subcategory details"
// @Success     201 {object} map[string]interface{} "Subcategory created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Subcategory name already exists"
// @Router      /categories/subcategories [post]
func (h *CategoryHandler) CreateSubCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.categoryService.CreateSubCategory(owner, req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subcategory": sub})
}

// GetSubCategories handles the retrieval of all subcategories
// @Summary     Get all subcategories
// @Description Get all subcategories in the user's partition, ordered by name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "List of subcategories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/subcategories [get]
func (h *CategoryHandler) GetSubCategories(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subs, err := h.categoryService.ListSubCategories(owner)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategories": subs})
}

// UpdateSubCategory handles renaming a subcategory
// @Summary     Rename subcategory
// @Description Rename a subcategory and replace its parent category reference
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subcategory ID"
// @Param       request body SubCategoryRequest true "New subcategory details"
// @Success     200 {object} map[string]interface{} "Updated subcategory"
// @Failure     400 {object} ErrorResponse "Invalid input or subcategory ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subcategory not found"
// @Failure     409 {object} ErrorResponse "Subcategory name already exists"
// @Router      /categories/subcategories/{id} [put]
func (h *CategoryHandler) UpdateSubCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subCategoryID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub, err := h.categoryService.RenameSubCategory(owner, subCategoryID, req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcategory": sub})
}

// DeleteSubCategory handles deleting a subcategory
// @Summary     Delete subcategory
// @Description Delete a subcategory by ID; expenses referencing it are untouched
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Subcategory ID"
// @Success     200 {object} MessageResponse "Subcategory deleted"
// @Failure     400 {object} ErrorResponse "Invalid subcategory ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Subcategory not found"
// @Router      /categories/subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subCategoryID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteSubCategory(owner, subCategoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory deleted successfully",
		"warning": deleteWarning,
	})
}
