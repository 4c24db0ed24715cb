package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormpostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "comments", "posts", "memberships", "group_pictures", "groups", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUser := func(email, name, plan string, isAdmin bool) int64 {
			var id int64
			row := db.Raw("SELECT id FROM users WHERE email = ?", email).Row()
			if err := row.Scan(&id); err == nil {
				fmt.Println("user already exists:", email)
				return id
			}
			err := db.Raw(
				"INSERT INTO users (email, name, password_hash, plan, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now()) RETURNING id",
				email, name, string(hash), plan, isAdmin,
			).Row().Scan(&id)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", email, err)
			}
			fmt.Println("Seeded user:", email)
			return id
		}

		adminID := seedUser("admin@mail.com", "Admin", "none", true)
		premiumID := seedUser("prem@mail.com", "Prem", "premium", false)
		basicID := seedUser("basia@mail.com", "Basia", "basic", false)
		seedUser("newbie@mail.com", "Newbie", "none", false)

		seedGroup := func(title, groupType string, creatorID int64) int64 {
			var id int64
			row := db.Raw("SELECT id FROM groups WHERE title = ?", title).Row()
			if err := row.Scan(&id); err == nil {
				fmt.Println("group already exists:", title)
				return id
			}
			err := db.Raw(
				"INSERT INTO groups (title, group_type, creator_id, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now()) RETURNING id",
				title, groupType, creatorID, "https://placehold.co/600x400",
			).Row().Scan(&id)
			if err != nil {
				log.Fatalf("failed to insert group %s: %v", title, err)
			}
			if err := db.Exec(
				"INSERT INTO memberships (user_id, group_id, accepted, created_at, updated_at) VALUES (?, ?, true, now(), now())",
				creatorID, id,
			).Error; err != nil {
				log.Fatalf("failed to insert owner membership for %s: %v", title, err)
			}
			fmt.Println("Seeded group:", title)
			return id
		}

		openGroupID := seedGroup("Open Mic Night", "Public", premiumID)
		bookClubID := seedGroup("Book Club", "Private", adminID)

		// a pending request to exercise the review screen
		if err := db.Exec(
			"INSERT INTO memberships (user_id, group_id, accepted, created_at, updated_at) VALUES (?, ?, false, now(), now()) ON CONFLICT (user_id, group_id) DO NOTHING",
			basicID, bookClubID,
		).Error; err != nil {
			log.Fatalf("failed to insert pending membership: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO posts (group_id, user_id, title, description, post_type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
			openGroupID, premiumID, "Welcome", "First article in the group.", "article",
		).Error; err != nil {
			log.Fatalf("failed to insert post: %v", err)
		}

		fmt.Println("Seeding complete")
	},
}
