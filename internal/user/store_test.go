package user_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

var _ = Describe("Store", func() {
	var store *user.Store

	newUser := func(email string) *user.User {
		return &user.User{
			FirstName:   "Siti",
			LastName:    "Rahma",
			Email:       email,
			PhoneNumber: "+62 812-3456-7890",
			Gender:      user.GenderFemale,
		}
	}

	BeforeEach(func() {
		adapter := storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		store = user.NewStore(adapter, testLogger())
	})

	Describe("Create", func() {
		It("assigns an id, default role and creation time", func() {
			u := newUser("siti@example.com")
			Expect(store.Create(u)).To(Succeed())

			Expect(u.ID).NotTo(BeEmpty())
			Expect(u.Role).To(Equal(user.RoleEmployee))
			Expect(u.CreatedAt.IsZero()).To(BeFalse())

			stored, err := store.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email).To(Equal("siti@example.com"))
		})

		It("rejects a duplicate email regardless of case", func() {
			Expect(store.Create(newUser("siti@example.com"))).To(Succeed())

			err := store.Create(newUser("SITI@example.com"))
			Expect(err).To(MatchError(user.ErrDuplicateEmail))
			Expect(store.GetAll()).To(HaveLen(1))
		})

		It("keeps an explicit admin role", func() {
			u := newUser("admin@example.com")
			u.Role = user.RoleAdmin
			Expect(store.Create(u)).To(Succeed())

			stored, err := store.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsAdmin()).To(BeTrue())
		})
	})

	Describe("GetByID", func() {
		It("returns ErrNotFound for an unknown id", func() {
			_, err := store.GetByID("missing")
			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})

	Describe("GetByEmail", func() {
		It("matches case-insensitively", func() {
			Expect(store.Create(newUser("siti@example.com"))).To(Succeed())

			found, err := store.GetByEmail("Siti@Example.COM")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Email).To(Equal("siti@example.com"))
		})
	})

	Describe("Update", func() {
		It("merges only the provided fields", func() {
			u := newUser("siti@example.com")
			Expect(store.Create(u)).To(Succeed())

			firstName := "Dewi"
			updated, err := store.Update(u.ID, user.Update{FirstName: &firstName})
			Expect(err).NotTo(HaveOccurred())

			Expect(updated.FirstName).To(Equal("Dewi"))
			Expect(updated.LastName).To(Equal("Rahma"))
			Expect(updated.Email).To(Equal("siti@example.com"))
			Expect(updated.Role).To(Equal(user.RoleEmployee))
		})

		It("returns ErrNotFound for an unknown id", func() {
			name := "Dewi"
			_, err := store.Update("missing", user.Update{FirstName: &name})
			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})

	Describe("SetRole", func() {
		It("changes the role and nothing else", func() {
			u := newUser("siti@example.com")
			Expect(store.Create(u)).To(Succeed())

			promoted, err := store.SetRole(u.ID, user.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(promoted.Role).To(Equal(user.RoleAdmin))
			Expect(promoted.Email).To(Equal("siti@example.com"))
		})
	})

	Describe("Delete", func() {
		It("removes only the matching record", func() {
			first := newUser("first@example.com")
			second := newUser("second@example.com")
			Expect(store.Create(first)).To(Succeed())
			Expect(store.Create(second)).To(Succeed())

			Expect(store.Delete(first.ID)).To(Succeed())

			remaining := store.GetAll()
			Expect(remaining).To(HaveLen(1))
			Expect(remaining[0].ID).To(Equal(second.ID))
		})
	})
})
