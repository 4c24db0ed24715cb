package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	internal "github.com/gatherhub/community/internal"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/membership"
	"github.com/gatherhub/community/internal/membership/postgres"
)

func TestMembershipRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Membership Repository Suite")
}

var _ = Describe("MembershipRepository", func() {
	var (
		db   *gorm.DB
		repo membership.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&membershipDatamodel.Membership{})).To(Succeed())

		repo = postgres.NewMembershipRepository(db)
	})

	Describe("Create", func() {
		It("persists a membership", func() {
			m := &membershipDatamodel.Membership{UserID: 1, GroupID: 1}

			Expect(repo.Create(m)).To(Succeed())
			Expect(m.ID).NotTo(BeZero())
		})

		It("fills the timestamps on insert", func() {
			m := &membershipDatamodel.Membership{UserID: 1, GroupID: 1}

			Expect(repo.Create(m)).To(Succeed())

			stored, err := repo.GetByUserAndGroup(1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CreatedAt).NotTo(BeZero())
			Expect(stored.UpdatedAt).NotTo(BeZero())
		})

		It("translates the unique constraint into already joined", func() {
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 1, GroupID: 1})).To(Succeed())

			err := repo.Create(&membershipDatamodel.Membership{UserID: 1, GroupID: 1})

			Expect(err).To(Equal(internal.ErrAlreadyJoined))
		})

		It("allows the same user in different groups", func() {
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 1, GroupID: 1})).To(Succeed())
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 1, GroupID: 2})).To(Succeed())
		})
	})

	Describe("MarkAccepted", func() {
		It("flips the request flag", func() {
			m := &membershipDatamodel.Membership{UserID: 1, GroupID: 1}
			Expect(repo.Create(m)).To(Succeed())

			Expect(repo.MarkAccepted(m.ID)).To(Succeed())

			stored, err := repo.GetByUserAndGroup(1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Accepted).To(BeTrue())
		})
	})

	Describe("CountPending", func() {
		It("counts only pending memberships", func() {
			accepted := &membershipDatamodel.Membership{UserID: 1, GroupID: 1, Accepted: true}
			Expect(repo.Create(accepted)).To(Succeed())
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 2, GroupID: 1})).To(Succeed())
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 3, GroupID: 1})).To(Succeed())

			Expect(repo.CountPending(1)).To(Equal(int64(2)))
		})
	})

	Describe("FirstForGroup", func() {
		It("returns the earliest membership", func() {
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 5, GroupID: 1, Accepted: true})).To(Succeed())
			Expect(repo.Create(&membershipDatamodel.Membership{UserID: 6, GroupID: 1})).To(Succeed())

			first, err := repo.FirstForGroup(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(first.UserID).To(Equal(int64(5)))
		})

		It("reports not found for an empty group", func() {
			_, err := repo.FirstForGroup(99)

			Expect(err).To(Equal(internal.ErrMembershipNotFound))
		})
	})

	Describe("GetByUserAndGroup", func() {
		It("reports not found when no membership exists", func() {
			_, err := repo.GetByUserAndGroup(1, 1)

			Expect(err).To(Equal(internal.ErrMembershipNotFound))
		})
	})
})
