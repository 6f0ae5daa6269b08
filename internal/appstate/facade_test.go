package appstate_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/appstate"
	"github.com/frahmantamala/activity-tracker/internal/query"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

func TestAppState(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AppState Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Facade", func() {
	var (
		adapter       *storage.Adapter
		userStore     *user.Store
		activityStore *activity.Store
		facade        *appstate.Facade
		alice         *user.User
	)

	BeforeEach(func() {
		adapter = storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		userStore = user.NewStore(adapter, testLogger())
		activityStore = activity.NewStore(adapter, testLogger())

		alice = &user.User{FirstName: "Alice", LastName: "Tan", Email: "alice@example.com", Gender: user.GenderFemale}
		Expect(userStore.Create(alice)).To(Succeed())

		userSvc := user.NewService(userStore, nil, testLogger())
		activitySvc := activity.NewService(activityStore, testLogger())
		facade = appstate.New(userSvc, activitySvc, testLogger())
	})

	It("loads both mirrors at construction", func() {
		Expect(facade.AllUsers()).To(HaveLen(1))
		Expect(facade.AllActivities()).To(BeEmpty())
	})

	Describe("activity view", func() {
		It("prepends created records to the mirror and persists them", func() {
			view := facade.Activities()
			created, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
			Expect(err).NotTo(HaveOccurred())

			mirror := facade.AllActivities()
			Expect(mirror).To(HaveLen(1))
			Expect(mirror[0].ID).To(Equal(created.ID))
			Expect(activityStore.GetAll()).To(HaveLen(1))
		})

		It("maps updates in place", func() {
			view := facade.Activities()
			created, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
			Expect(err).NotTo(HaveOccurred())

			description := "updated"
			_, err = view.Update(alice.ID, "employee", created.ID, activity.UpdateActivityDTO{Description: &description})
			Expect(err).NotTo(HaveOccurred())

			mirror := facade.AllActivities()
			Expect(mirror).To(HaveLen(1))
			Expect(mirror[0].Description).To(Equal("updated"))
		})

		It("filters deleted records out of the mirror", func() {
			view := facade.Activities()
			created, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
			Expect(err).NotTo(HaveOccurred())

			Expect(view.Delete(alice.ID, "employee", created.ID)).To(Succeed())
			Expect(facade.AllActivities()).To(BeEmpty())
			Expect(activityStore.GetAll()).To(BeEmpty())
		})

		It("leaves the mirror untouched when persistence fails", func() {
			view := facade.Activities()
			_, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense"})
			Expect(err).To(HaveOccurred())
			Expect(facade.AllActivities()).To(BeEmpty())
		})

		It("lists from the mirror with type and user scoping", func() {
			view := facade.Activities()
			_, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
			Expect(err).NotTo(HaveOccurred())
			_, err = view.Create("user-2", activity.CreateActivityDTO{
				Type: "customer", CustomerName: "Ibu Sari", ServiceDate: "2026-08-01", ServiceType: "repair",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(view.List("", activity.ListFilters{})).To(HaveLen(2))
			Expect(view.List(alice.ID, activity.ListFilters{})).To(HaveLen(1))

			byType := view.List("", activity.ListFilters{Type: "customer"})
			Expect(byType).To(HaveLen(1))
			Expect(byType[0].CustomerName).To(Equal("Ibu Sari"))
		})
	})

	Describe("user view", func() {
		It("keeps the mirror current across profile updates", func() {
			view := facade.Users()
			_, err := view.UpdateProfile(alice.ID, user.UpdateProfileDTO{FirstName: "Alicia"})
			Expect(err).NotTo(HaveOccurred())

			Expect(facade.AllUsers()[0].FirstName).To(Equal("Alicia"))
		})
	})

	Describe("Refresh", func() {
		It("picks up records written behind the facade's back", func() {
			Expect(activityStore.Create(&activity.Activity{
				UserID: alice.ID, Type: activity.TypeExpense, ReceiptImage: "img",
			})).To(Succeed())
			Expect(facade.AllActivities()).To(BeEmpty())

			facade.Refresh()
			Expect(facade.AllActivities()).To(HaveLen(1))
		})
	})

	Describe("derived views", func() {
		BeforeEach(func() {
			view := facade.Activities()
			for i := 0; i < 3; i++ {
				_, err := view.Create(alice.ID, activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := view.Create(alice.ID, activity.CreateActivityDTO{
				Type: "customer", CustomerName: "Ibu Sari", ServiceDate: "2026-08-01", ServiceType: "repair",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("counts per type over the mirror", func() {
			counts := facade.CountsByType(query.Filters{})
			Expect(counts[activity.TypeExpense]).To(Equal(3))
			Expect(counts[activity.TypeCustomer]).To(Equal(1))
			Expect(counts[activity.TypeSales]).To(Equal(0))
		})

		It("ranks employees", func() {
			ranked := facade.EmployeeComparison()
			Expect(ranked).To(HaveLen(1))
			Expect(ranked[0].Count).To(Equal(4))
			Expect(ranked[0].Name).To(Equal("Alice Tan"))
		})
	})
})
