package activity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/activity"
)

// listStub records the scope and filters the handler asks for.
type listStub struct {
	activity.ServiceAPI

	userID  string
	filters activity.ListFilters
	result  []*activity.Activity
}

func (s *listStub) List(userID string, f activity.ListFilters) []*activity.Activity {
	s.userID = userID
	s.filters = f
	return s.result
}

var _ = Describe("Handler ListActivities", func() {
	var (
		stub    *listStub
		handler *activity.Handler
	)

	BeforeEach(func() {
		stub = &listStub{}
		handler = activity.NewHandler(stub)
	})

	listRequest := func(userID, role, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/activities"+query, nil)
		ctx := apperrors.ContextWithUserID(req.Context(), userID)
		ctx = apperrors.ContextWithRole(ctx, role)
		rec := httptest.NewRecorder()
		handler.ListActivities(rec, req.WithContext(ctx))
		return rec
	}

	It("passes the filter parameters through to the service", func() {
		rec := listRequest("user-1", "employee", "?type=expense&startDate=2026-08-01&endDate=2026-08-15")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(stub.filters).To(Equal(activity.ListFilters{
			Type:      "expense",
			StartDate: "2026-08-01",
			EndDate:   "2026-08-15",
		}))
	})

	It("pins employees to their own records regardless of userId", func() {
		listRequest("user-1", "employee", "?userId=user-2")

		Expect(stub.userID).To(Equal("user-1"))
	})

	It("lets admins scope to any user or to everyone", func() {
		listRequest("admin-1", "admin", "?userId=user-2")
		Expect(stub.userID).To(Equal("user-2"))

		listRequest("admin-1", "admin", "")
		Expect(stub.userID).To(BeEmpty())
	})

	It("writes an empty array when the service returns nil", func() {
		rec := listRequest("user-1", "employee", "")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var got []json.RawMessage
		Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
		Expect(got).To(BeEmpty())
	})

	It("rejects anonymous requests", func() {
		rec := listRequest("", "", "")
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
