package session_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/w3lalitsaini/anti-movies/session"
)

// memStorage is an in-memory Storage for store specs that don't care about
// the persistence backend.
type memStorage struct {
	records map[string][]byte
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[string][]byte)}
}

func (m *memStorage) Load(name string) ([]byte, bool, error) {
	raw, ok := m.records[name]
	return raw, ok, nil
}

func (m *memStorage) Save(name string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[name] = data
	return nil
}

func (m *memStorage) Clear(name string) error {
	delete(m.records, name)
	return nil
}

var _ = Describe("Store", func() {
	var (
		storage *memStorage
		store   *session.Store
	)

	valid := session.Session{
		Token:    "t1",
		UserID:   "u1",
		Username: "alice",
		Role:     session.RoleMember,
	}

	BeforeEach(func() {
		storage = newMemStorage()
		store = session.NewStore(storage)
	})

	Describe("Login", func() {
		It("transitions to Authenticated and returns exactly the payload", func() {
			Expect(store.Login(valid)).To(Succeed())

			cur := store.Current()
			Expect(cur).NotTo(BeNil())
			Expect(*cur).To(Equal(valid))
		})

		It("persists the full session payload under the fixed record name", func() {
			Expect(store.Login(valid)).To(Succeed())

			raw, ok := storage.records[session.RecordName]
			Expect(ok).To(BeTrue())
			var persisted session.Session
			Expect(json.Unmarshal(raw, &persisted)).To(Succeed())
			Expect(persisted).To(Equal(valid))
		})

		DescribeTable("rejects payloads with a missing field and leaves the store unchanged",
			func(mutate func(*session.Session)) {
				s := valid
				mutate(&s)

				err := store.Login(s)
				Expect(err).To(MatchError(session.ErrInvalidPayload))
				Expect(store.Current()).To(BeNil())
				Expect(storage.records).To(BeEmpty())
			},
			Entry("empty token", func(s *session.Session) { s.Token = "" }),
			Entry("empty user id", func(s *session.Session) { s.UserID = "" }),
			Entry("empty username", func(s *session.Session) { s.Username = "" }),
			Entry("empty role", func(s *session.Session) { s.Role = "" }),
		)

		It("does not surface persistence failures", func() {
			storage.saveErr = errors.New("disk full")

			Expect(store.Login(valid)).To(Succeed())
			Expect(store.Current()).NotTo(BeNil())
		})

		It("notifies subscribers synchronously with the new session", func() {
			var seen []*session.Session
			store.Subscribe(func(s *session.Session) { seen = append(seen, s) })

			Expect(store.Login(valid)).To(Succeed())

			Expect(seen).To(HaveLen(1))
			Expect(seen[0]).NotTo(BeNil())
			Expect(seen[0].Username).To(Equal("alice"))
		})
	})

	Describe("Logout", func() {
		It("is idempotent and ends Anonymous from any state", func() {
			Expect(store.Login(valid)).To(Succeed())

			store.Logout()
			Expect(store.Current()).To(BeNil())

			store.Logout()
			Expect(store.Current()).To(BeNil())
		})

		It("erases the persisted record", func() {
			Expect(store.Login(valid)).To(Succeed())

			store.Logout()
			Expect(storage.records).NotTo(HaveKey(session.RecordName))
		})

		It("does not notify on a no-op logout", func() {
			notifications := 0
			store.Subscribe(func(*session.Session) { notifications++ })

			Expect(store.Login(valid)).To(Succeed())
			store.Logout()
			store.Logout() // already Anonymous — must not notify again

			Expect(notifications).To(Equal(2)) // one login, one real logout
		})

		It("notifies subscribers with nil", func() {
			var last *session.Session = &valid
			store.Subscribe(func(s *session.Session) { last = s })

			Expect(store.Login(valid)).To(Succeed())
			store.Logout()

			Expect(last).To(BeNil())
		})
	})

	Describe("Subscribe", func() {
		It("stops delivering after unsubscribe", func() {
			notifications := 0
			unsubscribe := store.Subscribe(func(*session.Session) { notifications++ })

			Expect(store.Login(valid)).To(Succeed())
			unsubscribe()
			store.Logout()

			Expect(notifications).To(Equal(1))
		})

		It("delivers to every registered subscriber", func() {
			a, b := 0, 0
			store.Subscribe(func(*session.Session) { a++ })
			store.Subscribe(func(*session.Session) { b++ })

			Expect(store.Login(valid)).To(Succeed())

			Expect(a).To(Equal(1))
			Expect(b).To(Equal(1))
		})
	})

	Describe("restore on construction", func() {
		It("restores an equivalent session after a simulated restart", func() {
			Expect(store.Login(valid)).To(Succeed())

			reloaded := session.NewStore(storage)
			cur := reloaded.Current()
			Expect(cur).NotTo(BeNil())
			Expect(*cur).To(Equal(valid))
		})

		It("is Anonymous after logout and restart", func() {
			Expect(store.Login(valid)).To(Succeed())
			store.Logout()

			reloaded := session.NewStore(storage)
			Expect(reloaded.Current()).To(BeNil())
		})

		It("treats a malformed record as Anonymous and clears it", func() {
			storage.records[session.RecordName] = []byte(`{"token":"t1","userId":""}`)

			reloaded := session.NewStore(storage)
			Expect(reloaded.Current()).To(BeNil())
			Expect(storage.records).NotTo(HaveKey(session.RecordName))
		})

		It("treats unparseable JSON as Anonymous", func() {
			storage.records[session.RecordName] = []byte(`not json{{`)

			reloaded := session.NewStore(storage)
			Expect(reloaded.Current()).To(BeNil())
		})
	})

	Describe("the login scenario", func() {
		It("reflects the logged-in user, then none after logout", func() {
			// Login response for {email:"a@b.com", password:"x"}.
			Expect(store.Login(session.Session{
				Token: "t1", UserID: "u1", Username: "alice", Role: session.RoleMember,
			})).To(Succeed())
			Expect(store.Current().Username).To(Equal("alice"))

			store.Logout()
			Expect(store.Current()).To(BeNil())
		})
	})

	Describe("Current", func() {
		It("returns a copy, not a handle into the store", func() {
			Expect(store.Login(valid)).To(Succeed())

			cur := store.Current()
			cur.Username = "mallory"

			Expect(store.Current().Username).To(Equal("alice"))
		})
	})
})
