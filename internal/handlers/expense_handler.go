package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kharcha/internal/dateutil"
	apperrors "kharcha/internal/errors"
	"kharcha/internal/pagination"
	"kharcha/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Date is an ISO-8601 timestamp or a YYYY-MM-DD date; when absent or
// unparsable the current time is used.
type CreateExpenseRequest struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"sub_category"`
	Amount      *float64 `json:"amount" binding:"required"`
	Date        string   `json:"date"`
	Comments    string   `json:"comments"`
}

// UpdateExpenseRequest represents a partial expense update. Absent fields
// are left unchanged; a date that fails to parse counts as absent.
type UpdateExpenseRequest struct {
	Title       *string  `json:"title"`
	Category    *string  `json:"category"`
	SubCategory *string  `json:"sub_category"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Comments    *string  `json:"comments"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record a new expense, auto-creating its category and subcategory if unknown
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(
		owner,
		req.Title,
		req.Category,
		req.SubCategory,
		*req.Amount,
		dateutil.ParseOrNow(req.Date),
		req.Comments,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles the filtered, paginated expense listing
// @Summary     List expenses
// @Description List expenses filtered by category, subcategory, and date range, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Exact category match"
// @Param       sub_category query string false "Exact subcategory match"
// @Param       start_date query string false "Inclusive lower date bound"
// @Param       end_date query string false "Inclusive upper date bound"
// @Param       skip query int false "Offset (default 0)"
// @Param       limit query int false "Page size, 1-1000 (default 100)"
// @Success     200 {object} map[string]interface{} "List of expenses"
// @Failure     400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := pagination.Parse(c.Query("skip"), c.Query("limit"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.ExpenseFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("sub_category"),
		Start:       dateutil.ParseOptional(c.Query("start_date")),
		End:         dateutil.ParseOptional(c.Query("end_date")),
	}

	expenses, err := h.expenseService.ListExpenses(owner, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpenseByID handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(owner, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles a partial expense update
// @Summary     Update expense
// @Description Update selected fields of an expense; absent fields are unchanged
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input, expense ID, or empty update"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.ExpenseUpdate{
		Title:       req.Title,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Amount:      req.Amount,
		Comments:    req.Comments,
	}
	if req.Date != nil {
		// Unparsable dates degrade to "leave unchanged" rather than an error.
		update.Date = dateutil.ParseOptional(*req.Date)
	}

	expense, err := h.expenseService.UpdateExpense(owner, expenseID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parseRecordID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(owner, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
