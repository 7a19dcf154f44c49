package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kharcha/internal/dateutil"
	"kharcha/internal/services"
)

// AnalyticsHandler handles aggregation requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// dateRange reads the optional date bounds. An unparsable bound means "no
// bound" here, unlike expense creation where it means "now".
func dateRange(c *gin.Context) services.ExpenseFilter {
	return services.ExpenseFilter{
		Start: dateutil.ParseOptional(c.Query("start_date")),
		End:   dateutil.ParseOptional(c.Query("end_date")),
	}
}

// GetSummary returns the overall aggregates for the filtered expenses
// @Summary     Expense summary
// @Description Total, count, and average amount over the filtered expenses
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Exact category match"
// @Param       sub_category query string false "Exact subcategory match"
// @Param       start_date query string false "Inclusive lower date bound"
// @Param       end_date query string false "Inclusive upper date bound"
// @Success     200 {object} services.Summary "Aggregates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := dateRange(c)
	filter.Category = c.Query("category")
	filter.SubCategory = c.Query("sub_category")

	summary, err := h.analyticsService.Summarize(owner, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetByCategory returns the per-category aggregates
// @Summary     Expenses by category
// @Description Aggregates grouped by category, ordered by total amount descending
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive lower date bound"
// @Param       end_date query string false "Inclusive upper date bound"
// @Success     200 {array} services.CategorySummary "Aggregates per category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/by-category [get]
func (h *AnalyticsHandler) GetByCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := dateRange(c)

	result, err := h.analyticsService.ByCategory(owner, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBySubCategory returns the per-(category, subcategory) aggregates
// @Summary     Expenses by subcategory
// @Description Aggregates grouped by category and subcategory, ordered by total amount descending
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Exact category match"
// @Param       start_date query string false "Inclusive lower date bound"
// @Param       end_date query string false "Inclusive upper date bound"
// @Success     200 {array} services.SubCategorySummary "Aggregates per pair"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/by-subcategory [get]
func (h *AnalyticsHandler) GetBySubCategory(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := dateRange(c)
	filter.Category = c.Query("category")

	result, err := h.analyticsService.BySubCategory(owner, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByDate returns the date-bucketed aggregates
// @Summary     Expenses by date bucket
// @Description Aggregates grouped into day/week/month/year buckets, ordered by bucket key ascending
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       grouping query string false "Bucket granularity: day, week, month, or year (default day)"
// @Param       category query string false "Exact category match"
// @Param       sub_category query string false "Exact subcategory match"
// @Param       start_date query string false "Inclusive lower date bound"
// @Param       end_date query string false "Inclusive upper date bound"
// @Success     200 {array} services.DateBucket "Aggregates per bucket"
// @Failure     400 {object} ErrorResponse "Invalid grouping"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/by-date [get]
func (h *AnalyticsHandler) GetByDate(c *gin.Context) {
	owner, err := getOwner(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	grouping, err := services.ParseGrouping(c.Query("grouping"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := dateRange(c)
	filter.Category = c.Query("category")
	filter.SubCategory = c.Query("sub_category")

	result, err := h.analyticsService.ByDate(owner, filter, grouping)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
