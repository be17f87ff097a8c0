package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
)

// Line is one category's share of a report.
type Line struct {
	Category string
	Total    decimal.Decimal
	Percent  decimal.Decimal
}

// Summary is the aggregated view of one (user, window) pair.
type Summary struct {
	Total decimal.Decimal
	Lines []Line
}

var hundred = decimal.NewFromInt(100)

// Summarize reduces a non-empty expense list into a grand total and a
// per-category breakdown sorted by descending spend. Ties are broken by
// ascending category name so the output is deterministic. A window may
// legitimately total zero (zero-amount records are valid expenses); every
// percentage is then zero instead of dividing by the zero total.
func Summarize(expenses []models.Expense) Summary {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, exp := range expenses {
		amount := decimal.NewFromFloat(exp.Amount)
		total = total.Add(amount)
		byCategory[exp.Category] = byCategory[exp.Category].Add(amount)
	}

	lines := make([]Line, 0, len(byCategory))
	for category, sum := range byCategory {
		percent := decimal.Zero
		if !total.IsZero() {
			percent = sum.Mul(hundred).Div(total)
		}
		lines = append(lines, Line{
			Category: category,
			Total:    sum,
			Percent:  percent,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].Total.Equal(lines[j].Total) {
			return lines[i].Total.GreaterThan(lines[j].Total)
		}
		return lines[i].Category < lines[j].Category
	})

	return Summary{Total: total, Lines: lines}
}

// Format renders a summary as the outbound report message. Monetary values
// are rounded half-up to two decimals, percentages to one.
func Format(period string, s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *%s Expense Report* 📊\n", period)
	fmt.Fprintf(&b, "Total Expenses: ₹`%s`\n\n", s.Total.StringFixed(2))
	b.WriteString("*Category Breakdown:*\n")
	for _, line := range s.Lines {
		fmt.Fprintf(&b, " • %s: ₹`%s` (`%s`%%)\n",
			line.Category, line.Total.StringFixed(2), line.Percent.StringFixed(1))
	}

	return b.String()
}

// PeriodLabel derives the human label for a report selector ("week" -> "Week").
func PeriodLabel(selector string) string {
	if selector == "" {
		return ""
	}
	return strings.ToUpper(selector[:1]) + selector[1:]
}
