package services

import (
	"testing"

	"kharcha/internal/tenant"
	"kharcha/internal/testutil"
)

// setupAnalytics seeds a tenant with a known expense set and returns the
// analytics service over the same locator.
func setupAnalytics(t *testing.T) (AnalyticsServicer, ExpenseServicer, tenant.ID) {
	t.Helper()
	locator := testutil.SetupTestLocator(t)
	catSvc := NewCategoryService(locator)
	expSvc := NewExpenseService(locator, catSvc, false)
	return NewAnalyticsService(locator), expSvc, testutil.NextTenant(t)
}

func TestParseGrouping(t *testing.T) {
	t.Run("empty_defaults_to_day", func(t *testing.T) {
		g, err := ParseGrouping("")
		testutil.AssertNoError(t, err)
		if g != GroupingDay {
			t.Errorf("expected day, got %s", g)
		}
	})

	t.Run("valid_values", func(t *testing.T) {
		for _, s := range []string{"day", "week", "month", "year"} {
			g, err := ParseGrouping(s)
			testutil.AssertNoError(t, err)
			if string(g) != s {
				t.Errorf("expected %s, got %s", s, g)
			}
		}
	})

	t.Run("invalid_value", func(t *testing.T) {
		_, err := ParseGrouping("quarter")
		testutil.AssertAppError(t, err, "INVALID_GROUPING")
	})
}

func TestSummarize(t *testing.T) {
	t.Run("aggregates", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "", 30, testTime("2024-01-10"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Dinner", "Food", "", 20, testTime("2024-01-11"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Bus", "Transport", "", 15, testTime("2024-01-12"), "")
		testutil.AssertNoError(t, err)

		summary, err := svc.Summarize(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if summary.TotalAmount != 65 || summary.Count != 3 {
			t.Errorf("expected total 65 count 3, got %+v", summary)
		}
	})

	t.Run("empty_set_is_all_zeros", func(t *testing.T) {
		svc, _, owner := setupAnalytics(t)

		summary, err := svc.Summarize(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if summary.TotalAmount != 0 || summary.Count != 0 || summary.AvgAmount != 0 {
			t.Errorf("expected zeros for empty set, got %+v", summary)
		}
	})

	t.Run("filtered", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "", 30, testTime("2024-01-10"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Bus", "Transport", "", 15, testTime("2024-01-12"), "")
		testutil.AssertNoError(t, err)

		summary, err := svc.Summarize(owner, ExpenseFilter{Category: "Food"})
		testutil.AssertNoError(t, err)
		if summary.TotalAmount != 30 || summary.Count != 1 || summary.AvgAmount != 30 {
			t.Errorf("expected Food-only aggregates, got %+v", summary)
		}
	})
}

func TestByCategory(t *testing.T) {
	t.Run("ordered_by_total_desc", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "", 30, testTime("2024-01-10"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Dinner", "Food", "", 20, testTime("2024-01-11"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Bus", "Transport", "", 15, testTime("2024-01-12"), "")
		testutil.AssertNoError(t, err)

		groups, err := svc.ByCategory(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}

		food := groups[0]
		if food.Category != "Food" || food.TotalAmount != 50 || food.Count != 2 || food.AvgAmount != 25 {
			t.Errorf("expected Food 50/2/25 first, got %+v", food)
		}
		transport := groups[1]
		if transport.Category != "Transport" || transport.TotalAmount != 15 || transport.Count != 1 || transport.AvgAmount != 15 {
			t.Errorf("expected Transport 15/1/15 second, got %+v", transport)
		}
	})

	t.Run("empty_set", func(t *testing.T) {
		svc, _, owner := setupAnalytics(t)
		groups, err := svc.ByCategory(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(groups) != 0 {
			t.Errorf("expected empty result, got %v", groups)
		}
	})
}

func TestBySubCategory(t *testing.T) {
	t.Run("groups_by_pair", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "Restaurants", 30, testTime("2024-01-10"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Snack", "Food", "Groceries", 10, testTime("2024-01-11"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Dinner", "Food", "Restaurants", 20, testTime("2024-01-12"), "")
		testutil.AssertNoError(t, err)

		groups, err := svc.BySubCategory(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(groups) != 2 {
			t.Fatalf("expected 2 pairs, got %d", len(groups))
		}

		first := groups[0]
		if first.Category != "Food" || first.SubCategory != "Restaurants" || first.TotalAmount != 50 || first.Count != 2 {
			t.Errorf("expected Food/Restaurants 50/2 first, got %+v", first)
		}
		second := groups[1]
		if second.SubCategory != "Groceries" || second.TotalAmount != 10 {
			t.Errorf("expected Food/Groceries 10 second, got %+v", second)
		}
	})

	t.Run("empty_subcategory_is_its_own_group", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "Restaurants", 30, testTime("2024-01-10"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Misc", "Food", "", 5, testTime("2024-01-11"), "")
		testutil.AssertNoError(t, err)

		groups, err := svc.BySubCategory(owner, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if len(groups) != 2 {
			t.Fatalf("expected 2 pairs, got %d", len(groups))
		}
	})
}

func TestByDate(t *testing.T) {
	t.Run("month_buckets_ascending", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Feb rent", "Housing", "", 800, testTime("2024-02-01"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Jan rent", "Housing", "", 800, testTime("2024-01-01"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Jan groceries", "Food", "", 120, testTime("2024-01-20"), "")
		testutil.AssertNoError(t, err)

		buckets, err := svc.ByDate(owner, ExpenseFilter{}, GroupingMonth)
		testutil.AssertNoError(t, err)
		if len(buckets) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(buckets))
		}
		if buckets[0].Date != "2024-01" || buckets[0].TotalAmount != 920 || buckets[0].Count != 2 {
			t.Errorf("expected 2024-01 bucket 920/2, got %+v", buckets[0])
		}
		if buckets[1].Date != "2024-02" || buckets[1].TotalAmount != 800 {
			t.Errorf("expected 2024-02 bucket 800, got %+v", buckets[1])
		}
	})

	t.Run("day_buckets", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Lunch", "Food", "", 10, testTime("2024-03-15"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "Dinner", "Food", "", 20, testTime("2024-03-15"), "")
		testutil.AssertNoError(t, err)

		buckets, err := svc.ByDate(owner, ExpenseFilter{}, GroupingDay)
		testutil.AssertNoError(t, err)
		if len(buckets) != 1 || buckets[0].Date != "2024-03-15" || buckets[0].TotalAmount != 30 {
			t.Errorf("expected one 2024-03-15 bucket of 30, got %v", buckets)
		}
	})

	t.Run("year_buckets", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		_, err := expSvc.CreateExpense(owner, "Old", "Misc", "", 10, testTime("2023-12-31"), "")
		testutil.AssertNoError(t, err)
		_, err = expSvc.CreateExpense(owner, "New", "Misc", "", 20, testTime("2024-01-01"), "")
		testutil.AssertNoError(t, err)

		buckets, err := svc.ByDate(owner, ExpenseFilter{}, GroupingYear)
		testutil.AssertNoError(t, err)
		if len(buckets) != 2 || buckets[0].Date != "2023" || buckets[1].Date != "2024" {
			t.Errorf("expected 2023 then 2024, got %v", buckets)
		}
	})

	t.Run("week_key_uses_iso_year", func(t *testing.T) {
		svc, expSvc, owner := setupAnalytics(t)

		// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
		_, err := expSvc.CreateExpense(owner, "Year boundary", "Misc", "", 10, testTime("2024-12-30"), "")
		testutil.AssertNoError(t, err)

		buckets, err := svc.ByDate(owner, ExpenseFilter{}, GroupingWeek)
		testutil.AssertNoError(t, err)
		if len(buckets) != 1 || buckets[0].Date != "2025-W01" {
			t.Errorf("expected 2025-W01, got %v", buckets)
		}
	})
}

func TestBucketKey(t *testing.T) {
	cases := []struct {
		date     string
		grouping Grouping
		want     string
	}{
		{"2024-03-15", GroupingDay, "2024-03-15"},
		{"2024-03-15", GroupingWeek, "2024-W11"},
		{"2024-03-15", GroupingMonth, "2024-03"},
		{"2024-03-15", GroupingYear, "2024"},
		{"2024-01-05", GroupingMonth, "2024-01"},
	}
	for _, c := range cases {
		if got := bucketKey(testTime(c.date), c.grouping); got != c.want {
			t.Errorf("bucketKey(%s, %s): expected %s, got %s", c.date, c.grouping, c.want, got)
		}
	}
}
