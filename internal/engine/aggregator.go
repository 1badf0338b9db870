package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"salesanalyzer/internal/models"
)

// ErrNoSalesData is returned when the amount column holds no values.
var ErrNoSalesData = errors.New("no sales records to analyze")

// amounts parses the amount column. Null cells are reported invalid and
// contribute nothing; any other unparsable cell is an error.
func (t *SalesTable) amounts(name string) ([]float64, []bool, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, nil, err
	}
	out := make([]float64, len(col.values))
	for i, raw := range col.values {
		if !col.valid[i] {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("column %q row %d: invalid amount %q", name, i+1, raw)
		}
		out[i] = v
	}
	return out, col.valid, nil
}

// Statistics computes sum, mean, max and min over the non-null amounts.
func (t *SalesTable) Statistics(amountCol string) (models.Statistics, error) {
	vals, valid, err := t.amounts(amountCol)
	if err != nil {
		return models.Statistics{}, err
	}

	var st models.Statistics
	for i, v := range vals {
		if !valid[i] {
			continue
		}
		if st.Count == 0 || v > st.Highest {
			st.Highest = v
		}
		if st.Count == 0 || v < st.Lowest {
			st.Lowest = v
		}
		st.Total += v
		st.Count++
	}
	if st.Count == 0 {
		return models.Statistics{}, ErrNoSalesData
	}
	st.Average = st.Total / float64(st.Count)
	return st, nil
}

// ProductTotals sums amounts per product, highest total first. Products with
// equal totals stay in the order they first appear in the table.
func (t *SalesTable) ProductTotals(productCol, amountCol string) ([]models.ProductTotal, error) {
	products, err := t.column(productCol)
	if err != nil {
		return nil, err
	}
	vals, valid, err := t.amounts(amountCol)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var totals []models.ProductTotal
	for i, name := range products.values {
		if !products.valid[i] {
			continue
		}
		id, ok := index[name]
		if !ok {
			id = len(totals)
			index[name] = id
			totals = append(totals, models.ProductTotal{Product: name})
		}
		if valid[i] {
			totals[id].Total += vals[i]
		}
	}

	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Total > totals[j].Total })
	return totals, nil
}

// TopProducts returns at most n leading entries of sorted totals.
func TopProducts(totals []models.ProductTotal, n int) []models.ProductTotal {
	if len(totals) > n {
		return totals[:n]
	}
	return totals
}

// DailyTotals sums amounts per calendar day in ascending date order.
// Rows with a null date are skipped.
func (t *SalesTable) DailyTotals(dateCol, amountCol string) ([]models.DailyTotal, error) {
	dates, err := t.column(dateCol)
	if err != nil {
		return nil, err
	}
	vals, valid, err := t.amounts(amountCol)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]float64)
	for i, raw := range dates.values {
		if !dates.valid[i] {
			continue
		}
		day, err := parseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", dateCol, i+1, err)
		}
		total := byDay[day]
		if valid[i] {
			total += vals[i]
		}
		byDay[day] = total
	}

	daily := make([]models.DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		daily = append(daily, models.DailyTotal{Day: day, Total: total})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Day.Before(daily[j].Day) })
	return daily, nil
}
