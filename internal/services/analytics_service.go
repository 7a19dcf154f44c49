package services

import (
	"fmt"
	"sort"
	"time"

	apperrors "kharcha/internal/errors"
	"kharcha/internal/models"
	"kharcha/internal/tenant"
)

// analyticsService computes the aggregation views over a tenant's expenses.
// All views share the expense filter predicate and differ only in grouping
// key and output ordering, so each one is a small fold over the same
// filtered row set. The fold runs in Go rather than SQL to keep the bucket
// key formats identical across the SQLite and Postgres drivers.
type analyticsService struct {
	tenants *tenant.Locator
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(tenants *tenant.Locator) AnalyticsServicer {
	return &analyticsService{tenants: tenants}
}

// ParseGrouping validates a raw grouping value. Empty defaults to day.
func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "":
		return GroupingDay, nil
	case "day", "week", "month", "year":
		return Grouping(s), nil
	}
	return "", apperrors.ErrInvalidGrouping
}

// matching loads the columns the aggregations need for every expense
// matching the filter.
func (s *analyticsService) matching(owner tenant.ID, filter ExpenseFilter) ([]models.Expense, error) {
	db, err := s.tenants.Partition(owner)
	if err != nil {
		return nil, err
	}

	var rows []models.Expense
	if err := db.Model(&models.Expense{}).
		Select("category", "sub_category", "amount", "date").
		Scopes(filterScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// agg accumulates the three aggregates for one group.
type agg struct {
	total float64
	count int64
}

func (a *agg) avg() float64 {
	if a.count == 0 {
		return 0
	}
	return a.total / float64(a.count)
}

// Summarize computes the overall aggregates for the filtered set. An empty
// set yields all zeros, not a division error.
func (s *analyticsService) Summarize(owner tenant.ID, filter ExpenseFilter) (*Summary, error) {
	rows, err := s.matching(owner, filter)
	if err != nil {
		return nil, err
	}

	var a agg
	for _, row := range rows {
		a.total += row.Amount
		a.count++
	}
	return &Summary{TotalAmount: a.total, Count: a.count, AvgAmount: a.avg()}, nil
}

// ByCategory groups the filtered set by category, ordered by total amount
// descending. Ties may appear in any order.
func (s *analyticsService) ByCategory(owner tenant.ID, filter ExpenseFilter) ([]CategorySummary, error) {
	rows, err := s.matching(owner, filter)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*agg)
	for _, row := range rows {
		a := groups[row.Category]
		if a == nil {
			a = &agg{}
			groups[row.Category] = a
		}
		a.total += row.Amount
		a.count++
	}

	result := make([]CategorySummary, 0, len(groups))
	for category, a := range groups {
		result = append(result, CategorySummary{
			Category:    category,
			TotalAmount: a.total,
			Count:       a.count,
			AvgAmount:   a.avg(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TotalAmount > result[j].TotalAmount })
	return result, nil
}

// BySubCategory groups the filtered set by (category, subcategory) pairs,
// ordered by total amount descending.
func (s *analyticsService) BySubCategory(owner tenant.ID, filter ExpenseFilter) ([]SubCategorySummary, error) {
	rows, err := s.matching(owner, filter)
	if err != nil {
		return nil, err
	}

	type pair struct{ category, subCategory string }
	groups := make(map[pair]*agg)
	for _, row := range rows {
		key := pair{row.Category, row.SubCategory}
		a := groups[key]
		if a == nil {
			a = &agg{}
			groups[key] = a
		}
		a.total += row.Amount
		a.count++
	}

	result := make([]SubCategorySummary, 0, len(groups))
	for key, a := range groups {
		result = append(result, SubCategorySummary{
			Category:    key.category,
			SubCategory: key.subCategory,
			TotalAmount: a.total,
			Count:       a.count,
			AvgAmount:   a.avg(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TotalAmount > result[j].TotalAmount })
	return result, nil
}

// ByDate groups the filtered set into date buckets of the given granularity,
// ordered by bucket key ascending. Keys are zero-padded and year-first, so
// lexicographic order is chronological.
func (s *analyticsService) ByDate(owner tenant.ID, filter ExpenseFilter, grouping Grouping) ([]DateBucket, error) {
	rows, err := s.matching(owner, filter)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*agg)
	for _, row := range rows {
		key := bucketKey(row.Date, grouping)
		a := groups[key]
		if a == nil {
			a = &agg{}
			groups[key] = a
		}
		a.total += row.Amount
		a.count++
	}

	result := make([]DateBucket, 0, len(groups))
	for key, a := range groups {
		result = append(result, DateBucket{
			Date:        key,
			TotalAmount: a.total,
			Count:       a.count,
			AvgAmount:   a.avg(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// bucketKey derives the group-by key from an expense date. Week keys use
// the ISO week number, so a bucket near a year boundary belongs to the ISO
// year of its week.
func bucketKey(t time.Time, grouping Grouping) string {
	t = t.UTC()
	switch grouping {
	case GroupingWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GroupingMonth:
		return t.Format("2006-01")
	case GroupingYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
