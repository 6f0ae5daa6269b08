package query_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/query"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

func employee(i int) *user.User {
	return &user.User{
		ID:        fmt.Sprintf("user-%d", i),
		FirstName: fmt.Sprintf("Employee%d", i),
		LastName:  "Test",
	}
}

var _ = Describe("TypeDistribution", func() {
	It("omits types with no records", func() {
		base := time.Now()
		dist := query.TypeDistribution([]*activity.Activity{
			at(base, "user-1", activity.TypeExpense),
			at(base, "user-1", activity.TypeStorage),
			at(base, "user-1", activity.TypeStorage),
		})

		Expect(dist).To(HaveLen(2))
		Expect(dist[0]).To(Equal(query.TypeCount{Type: activity.TypeExpense, Count: 1}))
		Expect(dist[1]).To(Equal(query.TypeCount{Type: activity.TypeStorage, Count: 2}))
	})

	It("is empty for empty input", func() {
		Expect(query.TypeDistribution(nil)).To(BeEmpty())
	})
})

var _ = Describe("DailyTrend", func() {
	It("zero-fills the trailing window oldest first", func() {
		now := time.Now()
		trend := query.DailyTrend([]*activity.Activity{
			at(now, "user-1", activity.TypeExpense),
			at(now.AddDate(0, 0, -1), "user-1", activity.TypeSales),
			at(now.AddDate(0, 0, -1), "user-2", activity.TypeSales),
		}, 7)

		Expect(trend).To(HaveLen(7))
		Expect(trend[6].Date).To(Equal(now.Format("2006-01-02")))
		Expect(trend[6].Count).To(Equal(1))
		Expect(trend[5].Count).To(Equal(2))
		Expect(trend[0].Count).To(Equal(0))
	})

	It("defaults to a thirty-day window", func() {
		Expect(query.DailyTrend(nil, 0)).To(HaveLen(query.DefaultTrendDays))
	})
})

var _ = Describe("EmployeeComparison", func() {
	It("ranks by count descending and keeps the top ten", func() {
		var users []*user.User
		var activities []*activity.Activity
		base := time.Now()
		for i := 0; i < 12; i++ {
			users = append(users, employee(i))
			for j := 0; j <= i; j++ {
				activities = append(activities, at(base, fmt.Sprintf("user-%d", i), activity.TypeExpense))
			}
		}

		ranked := query.EmployeeComparison(activities, users)
		Expect(ranked).To(HaveLen(query.EmployeeComparisonLimit))
		Expect(ranked[0].UserID).To(Equal("user-11"))
		Expect(ranked[0].Count).To(Equal(12))
		Expect(ranked[0].Name).To(Equal("Employee11 Test"))
		Expect(ranked[9].Count).To(Equal(3))
	})

	It("scores users without activities as zero", func() {
		ranked := query.EmployeeComparison(nil, []*user.User{employee(1)})
		Expect(ranked).To(HaveLen(1))
		Expect(ranked[0].Count).To(Equal(0))
	})
})

var _ = Describe("EmployeeTypeBreakdown", func() {
	It("keeps the top eight by total with per-type counts", func() {
		var users []*user.User
		var activities []*activity.Activity
		base := time.Now()
		for i := 0; i < 10; i++ {
			users = append(users, employee(i))
			for j := 0; j <= i; j++ {
				activities = append(activities, at(base, fmt.Sprintf("user-%d", i), activity.TypeSales))
			}
		}

		ranked := query.EmployeeTypeBreakdown(activities, users)
		Expect(ranked).To(HaveLen(query.EmployeeBreakdownLimit))
		Expect(ranked[0].UserID).To(Equal("user-9"))
		Expect(ranked[0].Total).To(Equal(10))
		Expect(ranked[0].Counts[activity.TypeSales]).To(Equal(10))
		Expect(ranked[0].Counts[activity.TypeExpense]).To(Equal(0))
	})

	It("is empty for no users", func() {
		Expect(query.EmployeeTypeBreakdown(nil, nil)).To(BeEmpty())
	})
})
