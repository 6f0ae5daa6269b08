package user_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

type mockSessionCache struct {
	currentUserID string
	cached        *user.User
	cacheErr      error
}

func (m *mockSessionCache) CurrentUserID() string { return m.currentUserID }

func (m *mockSessionCache) CacheCurrentUser(u *user.User) error {
	if m.cacheErr != nil {
		return m.cacheErr
	}
	m.cached = u
	return nil
}

var _ = Describe("Service", func() {
	var (
		store    *user.Store
		sessions *mockSessionCache
		service  *user.Service
		existing *user.User
	)

	BeforeEach(func() {
		adapter := storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		store = user.NewStore(adapter, testLogger())
		sessions = &mockSessionCache{}
		service = user.NewService(store, sessions, testLogger())

		existing = &user.User{
			FirstName: "Budi",
			LastName:  "Santoso",
			Email:     "budi@example.com",
			Gender:    user.GenderMale,
		}
		Expect(store.Create(existing)).To(Succeed())
	})

	Describe("UpdateProfile", func() {
		It("rejects invalid fields with a validation error", func() {
			_, err := service.UpdateProfile(existing.ID, user.UpdateProfileDTO{FirstName: "B"})

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeValidationFailed))
		})

		It("rejects an email already used by another user", func() {
			other := &user.User{FirstName: "Siti", LastName: "Rahma", Email: "siti@example.com", Gender: user.GenderFemale}
			Expect(store.Create(other)).To(Succeed())

			_, err := service.UpdateProfile(existing.ID, user.UpdateProfileDTO{Email: "siti@example.com"})
			Expect(err).To(MatchError(user.ErrDuplicateEmail))
		})

		It("allows keeping your own email", func() {
			updated, err := service.UpdateProfile(existing.ID, user.UpdateProfileDTO{
				Email:     "budi@example.com",
				FirstName: "Budiman",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Budiman"))
		})

		It("refreshes the cached current user when updating yourself", func() {
			sessions.currentUserID = existing.ID

			updated, err := service.UpdateProfile(existing.ID, user.UpdateProfileDTO{FirstName: "Budiman"})
			Expect(err).NotTo(HaveOccurred())
			Expect(sessions.cached).To(Equal(updated))
		})

		It("leaves the cache alone when updating someone else", func() {
			sessions.currentUserID = "someone-else"

			_, err := service.UpdateProfile(existing.ID, user.UpdateProfileDTO{FirstName: "Budiman"})
			Expect(err).NotTo(HaveOccurred())
			Expect(sessions.cached).To(BeNil())
		})
	})

	Describe("PromoteToAdmin", func() {
		It("promotes an existing user", func() {
			promoted, err := service.PromoteToAdmin(existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(promoted.IsAdmin()).To(BeTrue())
		})

		It("returns ErrNotFound for an unknown user", func() {
			_, err := service.PromoteToAdmin("missing")
			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})
})
