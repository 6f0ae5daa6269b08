// Package query computes derived views over activity collections. Every
// function is pure: it takes a slice, never mutates it, and returns
// zero-valued output for empty input rather than an error.
package query

import (
	"sort"
	"time"

	"github.com/frahmantamala/activity-tracker/internal/activity"
)

const (
	DefaultRecentLimit = 10
	dateLayout         = "2006-01-02"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Filters is the recognized filter bag; zero-valued fields do not
// constrain. All set fields are AND-combined. Date bounds apply to
// createdAt; EndDate is inclusive through the last millisecond of that
// calendar day in local time.
type Filters struct {
	UserID    string
	Type      activity.Type
	StartDate string
	EndDate   string
}

func Filter(activities []*activity.Activity, f Filters) []*activity.Activity {
	var start, end time.Time
	if f.StartDate != "" {
		if t, err := time.ParseInLocation(dateLayout, f.StartDate, time.Local); err == nil {
			start = t
		}
	}
	if f.EndDate != "" {
		if t, err := time.ParseInLocation(dateLayout, f.EndDate, time.Local); err == nil {
			// Built from calendar components so the bound stays at
			// 23:59:59.999 even on days where a DST shift changes the
			// day's length.
			end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
		}
	}

	result := make([]*activity.Activity, 0, len(activities))
	for _, a := range activities {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if !start.IsZero() && a.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && a.CreatedAt.After(end) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// SortByDate orders by createdAt; the sort is stable so records sharing a
// timestamp keep their relative order.
func SortByDate(activities []*activity.Activity, order Order) []*activity.Activity {
	result := make([]*activity.Activity, len(activities))
	copy(result, activities)
	sort.SliceStable(result, func(i, j int) bool {
		if order == OrderAsc {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// CountsByType always returns all five keys, zero-defaulted.
func CountsByType(activities []*activity.Activity) map[activity.Type]int {
	counts := make(map[activity.Type]int, len(activity.AllTypes))
	for _, t := range activity.AllTypes {
		counts[t] = 0
	}
	for _, a := range activities {
		counts[a.Type]++
	}
	return counts
}

// GroupByCalendarDate buckets by the createdAt calendar day in local time,
// labeled YYYY-MM-DD.
func GroupByCalendarDate(activities []*activity.Activity) map[string][]*activity.Activity {
	groups := make(map[string][]*activity.Activity)
	for _, a := range activities {
		label := a.CreatedAt.In(time.Local).Format(dateLayout)
		groups[label] = append(groups[label], a)
	}
	return groups
}

// Recent returns the newest records by createdAt. Non-positive limits fall
// back to the default of 10.
func Recent(activities []*activity.Activity, limit int) []*activity.Activity {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	sorted := SortByDate(activities, OrderDesc)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
