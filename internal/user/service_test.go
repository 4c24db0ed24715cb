package user_test

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	userDatamodel "github.com/gatherhub/community/internal/core/datamodel/user"
	"github.com/gatherhub/community/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return internal.ErrEmailTaken
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePlan(id int64, plan string) error {
	u, ok := m.users[id]
	if !ok {
		return internal.ErrUserNotFound
	}
	u.Plan = plan
	return nil
}

func (m *mockUserRepository) List() ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service

		admin  ability.Subject
		member ability.Subject
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		service = user.NewService(repo, bcrypt.MinCost, slog.Default())

		admin = ability.Subject{ID: 100, Admin: true}
		member = ability.Subject{ID: 200, Plan: ability.PlanBasic}
	})

	Describe("Register", func() {
		dto := user.RegisterDTO{
			Email:    "alice@example.com",
			Name:     "Alice",
			Password: "s3cret-pass",
		}

		It("creates a member with no plan and a hashed password", func() {
			u, err := service.Register(dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Plan).To(Equal("none"))
			Expect(u.IsAdmin).To(BeFalse())

			stored := repo.users[u.ID]
			Expect(stored.PasswordHash).NotTo(Equal(dto.Password))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(dto.Password))).To(Succeed())
		})

		It("rejects a duplicate email", func() {
			_, err := service.Register(dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(dto)
			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("rejects a registration with no password", func() {
			bad := dto
			bad.Password = ""

			_, err := service.Register(bad)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ChangePlan", func() {
		var target *user.User

		BeforeEach(func() {
			var err error
			target, err = service.Register(user.RegisterDTO{
				Email:    "bob@example.com",
				Name:     "Bob",
				Password: "hunter22",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets an admin upgrade a member", func() {
			u, err := service.ChangePlan(admin, target.ID, user.ChangePlanDTO{Plan: "premium"})

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Plan).To(Equal("premium"))
			Expect(repo.users[target.ID].Plan).To(Equal("premium"))
		})

		It("accepts the legacy capitalized premium spelling", func() {
			u, err := service.ChangePlan(admin, target.ID, user.ChangePlanDTO{Plan: "Premium"})

			Expect(err).NotTo(HaveOccurred())
			Expect(ability.ParsePlan(u.Plan)).To(Equal(ability.PlanPremium))
		})

		It("denies a non-admin with the admin notice", func() {
			_, err := service.ChangePlan(member, target.ID, user.ChangePlanDTO{Plan: "premium"})

			Expect(err).To(Equal(internal.ErrNotAdmin))
			Expect(err.(*internal.AppError).Notice()).To(Equal("You are not admin"))
		})

		It("rejects an unknown plan", func() {
			_, err := service.ChangePlan(admin, target.ID, user.ChangePlanDTO{Plan: "gold"})

			Expect(err).To(HaveOccurred())
		})

		It("returns not found for an unknown user", func() {
			_, err := service.ChangePlan(admin, 404, user.ChangePlanDTO{Plan: "basic"})

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			for _, email := range []string{"a@example.com", "b@example.com"} {
				_, err := service.Register(user.RegisterDTO{Email: email, Name: "X", Password: "pw-123456"})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns the directory for an admin", func() {
			users, err := service.ListUsers(admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})

		It("denies a regular member", func() {
			_, err := service.ListUsers(member)

			Expect(err).To(Equal(internal.ErrNotAdmin))
		})
	})
})
