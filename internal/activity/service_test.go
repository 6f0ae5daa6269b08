package activity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/storage"
)

var _ = Describe("Service", func() {
	var (
		store   *activity.Store
		service *activity.Service
	)

	quantity := func(v float64) *float64 { return &v }

	BeforeEach(func() {
		adapter := storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		store = activity.NewStore(adapter, testLogger())
		service = activity.NewService(store, testLogger())
	})

	Describe("Create validation", func() {
		It("accepts a valid record of each type", func() {
			dtos := []activity.CreateActivityDTO{
				{Type: "expense", ReceiptImage: "img"},
				{Type: "sales", ReceiptImage: "img", Date: "2026-08-01", Time: "14:30", ServingEmployee: "Budi", BuyerName: "PT Maju"},
				{Type: "customer", CustomerName: "Ibu Sari", ServiceDate: "2026-08-01", ServiceType: "repair"},
				{Type: "production", RawMaterialWeight: 12.5, WeightUnit: "kg", MachineImageBefore: "b", MachineImageAfter: "a"},
				{Type: "storage", Location: "warehouse A", ItemDescription: "steel bolts 8mm", Quantity: quantity(0)},
			}

			for _, dto := range dtos {
				_, err := service.Create("user-1", dto)
				Expect(err).NotTo(HaveOccurred(), "type %s", dto.Type)
			}
			Expect(store.GetAll()).To(HaveLen(5))
		})

		It("rejects an unknown type", func() {
			_, err := service.Create("user-1", activity.CreateActivityDTO{Type: "meeting"})

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeValidationFailed))
		})

		It("rejects a sales record with a malformed time", func() {
			_, err := service.Create("user-1", activity.CreateActivityDTO{
				Type: "sales", ReceiptImage: "img", Date: "2026-08-01",
				Time: "2pm", ServingEmployee: "Budi", BuyerName: "PT Maju",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a production record without both machine images", func() {
			_, err := service.Create("user-1", activity.CreateActivityDTO{
				Type: "production", RawMaterialWeight: 5, WeightUnit: "kg", MachineImageBefore: "b",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a storage record with a negative quantity", func() {
			_, err := service.Create("user-1", activity.CreateActivityDTO{
				Type: "storage", Location: "warehouse A", ItemDescription: "steel bolts 8mm", Quantity: quantity(-1),
			})
			Expect(err).To(HaveOccurred())
		})

		It("drops payload fields from other variants", func() {
			created, err := service.Create("user-1", activity.CreateActivityDTO{
				Type:         "expense",
				ReceiptImage: "img",
				CustomerName: "should be ignored",
				Location:     "should be ignored",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.CustomerName).To(BeEmpty())
			Expect(created.Location).To(BeEmpty())
		})
	})

	Describe("authorization", func() {
		var owned *activity.Activity

		BeforeEach(func() {
			var err error
			owned, err = service.Create("user-1", activity.CreateActivityDTO{Type: "expense", ReceiptImage: "img"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets the owner read, update and delete", func() {
			_, err := service.GetByID("user-1", "employee", owned.ID)
			Expect(err).NotTo(HaveOccurred())

			description := "own update"
			_, err = service.Update("user-1", "employee", owned.ID, activity.UpdateActivityDTO{Description: &description})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete("user-1", "employee", owned.ID)).To(Succeed())
		})

		It("denies another employee", func() {
			_, err := service.GetByID("user-2", "employee", owned.ID)
			Expect(err).To(MatchError(apperrors.ErrAdminOnly))

			Expect(service.Delete("user-2", "employee", owned.ID)).To(MatchError(apperrors.ErrAdminOnly))
		})

		It("lets an admin act on any record", func() {
			_, err := service.GetByID("admin-1", "admin", owned.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete("admin-1", "admin", owned.ID)).To(Succeed())
		})
	})
})
