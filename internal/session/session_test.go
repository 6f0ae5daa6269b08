package session_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sessionDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/session"
	"github.com/frahmantamala/activity-tracker/internal/session"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// removeRecorder counts Remove calls per table on top of a real backend.
type removeRecorder struct {
	storage.Backend
	removes map[storage.Table]int
}

func (r *removeRecorder) Remove(table storage.Table) error {
	if r.removes == nil {
		r.removes = make(map[storage.Table]int)
	}
	r.removes[table]++
	return r.Backend.Remove(table)
}

var _ = Describe("Manager", func() {
	var (
		adapter *storage.Adapter
		manager *session.Manager
		alice   *user.User
	)

	BeforeEach(func() {
		adapter = storage.NewAdapter(storage.NewMemoryBackend(), testLogger())
		manager = session.NewManager(adapter, session.DefaultTimeout, testLogger())
		alice = &user.User{
			ID:    "user-1",
			Email: "alice@example.com",
			Role:  user.RoleEmployee,
		}
	})

	AfterEach(func() {
		manager.Stop()
	})

	Describe("Login", func() {
		It("starts a valid session and caches the user", func() {
			Expect(manager.Login(alice)).To(Succeed())

			Expect(manager.IsValid()).To(BeTrue())
			Expect(manager.CurrentUserID()).To(Equal("user-1"))
			Expect(manager.CurrentRole()).To(Equal("employee"))

			cached := manager.CurrentUser()
			Expect(cached).NotTo(BeNil())
			Expect(cached.Email).To(Equal("alice@example.com"))
		})

		It("persists the session so a new manager resumes it", func() {
			Expect(manager.Login(alice)).To(Succeed())

			resumed := session.NewManager(adapter, session.DefaultTimeout, testLogger())
			defer resumed.Stop()
			Expect(resumed.IsValid()).To(BeTrue())
			Expect(resumed.CurrentUserID()).To(Equal("user-1"))
		})
	})

	Describe("IsValid", func() {
		It("is false when anonymous", func() {
			Expect(manager.IsValid()).To(BeFalse())
		})

		It("expires after the timeout without a touch", func() {
			short := session.NewManager(adapter, 20*time.Millisecond, testLogger())
			defer short.Stop()
			Expect(short.Login(alice)).To(Succeed())

			Expect(short.IsValid()).To(BeTrue())
			time.Sleep(30 * time.Millisecond)
			Expect(short.IsValid()).To(BeFalse())
		})

		It("treats a session exactly at the timeout as already expired", func() {
			timeout := 30 * time.Minute
			Expect(adapter.WriteSession(&sessionDatamodel.Session{
				UserID:       "user-1",
				Email:        "alice@example.com",
				Role:         "employee",
				LastActivity: time.Now().Add(-timeout).UnixMilli(),
			})).To(Succeed())

			resumed := session.NewManager(adapter, timeout, testLogger())
			defer resumed.Stop()
			Expect(resumed.IsValid()).To(BeFalse())
		})

		It("stays valid while touched inside the window", func() {
			short := session.NewManager(adapter, 50*time.Millisecond, testLogger())
			defer short.Stop()
			Expect(short.Login(alice)).To(Succeed())

			for i := 0; i < 3; i++ {
				time.Sleep(20 * time.Millisecond)
				Expect(short.Touch()).To(Succeed())
			}
			Expect(short.IsValid()).To(BeTrue())
		})
	})

	Describe("Touch", func() {
		It("no-ops when anonymous", func() {
			Expect(manager.Touch()).To(Succeed())
			Expect(manager.IsValid()).To(BeFalse())
		})
	})

	Describe("Logout", func() {
		It("clears the session and the cached user", func() {
			Expect(manager.Login(alice)).To(Succeed())
			Expect(manager.Logout()).To(Succeed())

			Expect(manager.IsValid()).To(BeFalse())
			Expect(manager.CurrentUserID()).To(BeEmpty())
			Expect(manager.CurrentUser()).To(BeNil())
			Expect(adapter.ReadSession()).To(BeNil())
		})

		It("is safe to call when anonymous", func() {
			Expect(manager.Logout()).To(Succeed())
		})

		It("does not tear down the same session twice", func() {
			recorder := &removeRecorder{Backend: storage.NewMemoryBackend()}
			recorded := storage.NewAdapter(recorder, testLogger())
			m := session.NewManager(recorded, session.DefaultTimeout, testLogger())
			defer m.Stop()
			Expect(m.Login(alice)).To(Succeed())

			Expect(m.Logout()).To(Succeed())
			removes := recorder.removes[storage.TableSession]
			Expect(removes).To(Equal(1))

			Expect(m.Logout()).To(Succeed())
			Expect(recorder.removes[storage.TableSession]).To(Equal(removes))
		})
	})

	Describe("liveness loop", func() {
		It("force-closes an expired session and announces it", func() {
			short := session.NewManager(adapter, 20*time.Millisecond, testLogger())
			defer short.Stop()
			Expect(short.Login(alice)).To(Succeed())

			short.StartLivenessLoop(10 * time.Millisecond)

			var expiredUser string
			Eventually(short.Expired(), time.Second).Should(Receive(&expiredUser))
			Expect(expiredUser).To(Equal("user-1"))
			Expect(short.IsValid()).To(BeFalse())
			Expect(adapter.ReadSession()).To(BeNil())
		})

		It("leaves a live session alone", func() {
			short := session.NewManager(adapter, time.Minute, testLogger())
			defer short.Stop()
			Expect(short.Login(alice)).To(Succeed())

			short.StartLivenessLoop(10 * time.Millisecond)
			Consistently(short.Expired(), 100*time.Millisecond).ShouldNot(Receive())
			Expect(short.IsValid()).To(BeTrue())
		})
	})
})
