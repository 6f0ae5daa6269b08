package activity_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/storage"
)

var _ = Describe("Store", func() {
	var store *activity.Store

	newExpense := func(userID string) *activity.Activity {
		return &activity.Activity{
			UserID:       userID,
			Type:         activity.TypeExpense,
			ReceiptImage: "data:image/png;base64,abc",
			Description:  "team lunch",
		}
	}

	BeforeEach(func() {
		adapter := storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		store = activity.NewStore(adapter, testLogger())
	})

	Describe("Create", func() {
		It("assigns an id and identical timestamps", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())

			Expect(a.ID).NotTo(BeEmpty())
			Expect(a.CreatedAt.IsZero()).To(BeFalse())
			Expect(a.UpdatedAt).To(Equal(a.CreatedAt))
		})
	})

	Describe("GetByUserID", func() {
		It("returns only the user's records", func() {
			Expect(store.Create(newExpense("user-1"))).To(Succeed())
			Expect(store.Create(newExpense("user-1"))).To(Succeed())
			Expect(store.Create(newExpense("user-2"))).To(Succeed())

			Expect(store.GetByUserID("user-1")).To(HaveLen(2))
			Expect(store.GetByUserID("user-3")).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("merges payload fields and bumps updatedAt", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())
			created := a.UpdatedAt

			time.Sleep(2 * time.Millisecond)
			description := "client lunch"
			updated, err := store.Update(a.ID, activity.UpdateActivityDTO{Description: &description})
			Expect(err).NotTo(HaveOccurred())

			Expect(updated.Description).To(Equal("client lunch"))
			Expect(updated.ReceiptImage).To(Equal(a.ReceiptImage))
			Expect(updated.Type).To(Equal(activity.TypeExpense))
			Expect(updated.UserID).To(Equal("user-1"))
			Expect(updated.UpdatedAt.After(created)).To(BeTrue())
		})

		It("bumps updatedAt even when no fields are provided", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())
			created := a.UpdatedAt

			time.Sleep(2 * time.Millisecond)
			updated, err := store.Update(a.ID, activity.UpdateActivityDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.UpdatedAt.After(created)).To(BeTrue())
		})

		It("returns ErrNotFound for an unknown id", func() {
			_, err := store.Update("missing", activity.UpdateActivityDTO{})
			Expect(err).To(MatchError(activity.ErrNotFound))
		})
	})

	Describe("RemoveImage", func() {
		It("blanks the named field and bumps updatedAt", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())
			created := a.UpdatedAt

			time.Sleep(2 * time.Millisecond)
			updated, err := store.RemoveImage(a.ID, activity.ImageReceipt)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ReceiptImage).To(BeEmpty())
			Expect(updated.UpdatedAt.After(created)).To(BeTrue())
		})

		It("rejects an unknown image field", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())

			_, err := store.RemoveImage(a.ID, activity.ImageField("notes"))
			Expect(err).To(MatchError(activity.ErrInvalidImage))
		})
	})

	Describe("Delete", func() {
		It("removes the record", func() {
			a := newExpense("user-1")
			Expect(store.Create(a)).To(Succeed())

			Expect(store.Delete(a.ID)).To(Succeed())
			Expect(store.GetAll()).To(BeEmpty())
		})

		It("returns ErrNotFound for an unknown id", func() {
			Expect(store.Delete("missing")).To(MatchError(activity.ErrNotFound))
		})
	})
})
