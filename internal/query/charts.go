package query

import (
	"sort"
	"time"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

const (
	DefaultTrendDays        = 30
	EmployeeComparisonLimit = 10
	EmployeeBreakdownLimit  = 8
)

type TypeCount struct {
	Type  activity.Type `json:"type"`
	Count int           `json:"count"`
}

type DatePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type EmployeeCount struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type EmployeeBreakdown struct {
	UserID string                `json:"userId"`
	Name   string                `json:"name"`
	Total  int                   `json:"total"`
	Counts map[activity.Type]int `json:"counts"`
}

// TypeDistribution returns per-type counts in presentation order, omitting
// types with no records.
func TypeDistribution(activities []*activity.Activity) []TypeCount {
	counts := CountsByType(activities)
	result := make([]TypeCount, 0, len(activity.AllTypes))
	for _, t := range activity.AllTypes {
		if counts[t] == 0 {
			continue
		}
		result = append(result, TypeCount{Type: t, Count: counts[t]})
	}
	return result
}

// DailyTrend returns one point per calendar day for the trailing window
// ending today, zero-filled, oldest first. Non-positive day counts fall
// back to the default of 30.
func DailyTrend(activities []*activity.Activity, days int) []DatePoint {
	if days <= 0 {
		days = DefaultTrendDays
	}

	groups := GroupByCalendarDate(activities)
	today := time.Now().In(time.Local)

	result := make([]DatePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		label := today.AddDate(0, 0, -i).Format(dateLayout)
		result = append(result, DatePoint{Date: label, Count: len(groups[label])})
	}
	return result
}

// EmployeeComparison ranks users by activity count, descending, keeping the
// top ten. Users without activities score zero; ties keep the order of the
// users slice.
func EmployeeComparison(activities []*activity.Activity, users []*user.User) []EmployeeCount {
	perUser := make(map[string]int)
	for _, a := range activities {
		perUser[a.UserID]++
	}

	result := make([]EmployeeCount, 0, len(users))
	for _, u := range users {
		result = append(result, EmployeeCount{
			UserID: u.ID,
			Name:   u.FullName(),
			Count:  perUser[u.ID],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > EmployeeComparisonLimit {
		result = result[:EmployeeComparisonLimit]
	}
	return result
}

// EmployeeTypeBreakdown ranks users by total activity count and keeps the
// top eight, each with per-type counts over all five types.
func EmployeeTypeBreakdown(activities []*activity.Activity, users []*user.User) []EmployeeBreakdown {
	perUser := make(map[string][]*activity.Activity)
	for _, a := range activities {
		perUser[a.UserID] = append(perUser[a.UserID], a)
	}

	result := make([]EmployeeBreakdown, 0, len(users))
	for _, u := range users {
		owned := perUser[u.ID]
		result = append(result, EmployeeBreakdown{
			UserID: u.ID,
			Name:   u.FullName(),
			Total:  len(owned),
			Counts: CountsByType(owned),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	if len(result) > EmployeeBreakdownLimit {
		result = result[:EmployeeBreakdownLimit]
	}
	return result
}
