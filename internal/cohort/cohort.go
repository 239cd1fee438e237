package cohort

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

const monthLabelLayout = "2006-01"

// Retention is the next-month repeat rate of one first-order cohort
type Retention struct {
	CohortMonth       string  `json:"cohort_month"`
	Customers         int     `json:"customers"`
	RetainedNextMonth int     `json:"retained_next_month"`
	RetentionPct      float64 `json:"retention_pct"`
}

// Analyze groups customers by the month of their first order and counts those who ordered again the following month.
// Input rows may arrive in any order and may repeat.
func Analyze(activity []aggregation.CustomerMonth) []Retention {
	months := make(map[uuid.UUID]map[time.Time]struct{})
	first := make(map[uuid.UUID]time.Time)

	for _, a := range activity {
		m := aggregation.MonthStart(a.Month)
		set, ok := months[a.CustomerID]
		if !ok {
			set = make(map[time.Time]struct{})
			months[a.CustomerID] = set
		}
		set[m] = struct{}{}

		if f, seen := first[a.CustomerID]; !seen || m.Before(f) {
			first[a.CustomerID] = m
		}
	}

	type tally struct{ customers, retained int }
	cohorts := make(map[time.Time]*tally)
	for customerID, firstMonth := range first {
		c, ok := cohorts[firstMonth]
		if !ok {
			c = &tally{}
			cohorts[firstMonth] = c
		}
		c.customers++
		if _, again := months[customerID][firstMonth.AddDate(0, 1, 0)]; again {
			c.retained++
		}
	}

	keys := make([]time.Time, 0, len(cohorts))
	for k := range cohorts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	result := make([]Retention, 0, len(keys))
	for _, k := range keys {
		c := cohorts[k]
		result = append(result, Retention{
			CohortMonth:       k.Format(monthLabelLayout),
			Customers:         c.customers,
			RetainedNextMonth: c.retained,
			RetentionPct:      common.Percentage(float64(c.retained), float64(c.customers)),
		})
	}
	return result
}

// LatestComplete returns the newest cohort whose following month has fully elapsed at now, or nil.
// cohorts must be sorted by month as Analyze returns them.
func LatestComplete(cohorts []Retention, now time.Time) *Retention {
	cutoff := aggregation.MonthStart(now).AddDate(0, -2, 0).Format(monthLabelLayout)
	for i := len(cohorts) - 1; i >= 0; i-- {
		if cohorts[i].CohortMonth <= cutoff {
			c := cohorts[i]
			return &c
		}
	}
	return nil
}
