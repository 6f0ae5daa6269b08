package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/auth"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample data",
	Long:  `Seed the store with sample users and activities for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"))
		lg := logger.L()

		backend, err := initBackend(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to init storage backend: %v", err)
		}
		adapter := storage.NewAdapter(backend, lg)

		if clearData {
			if err := adapter.ClearAll(); err != nil {
				log.Fatalf("failed to clear store: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		userStore := user.NewStore(adapter, lg)
		activityStore := activity.NewStore(adapter, lg)
		credentials := auth.NewCredentialStore(adapter, cfg.Security.BCryptCost, lg)

		seedUser := func(u *user.User, password string) *user.User {
			if existing, err := userStore.GetByEmail(u.Email); err == nil {
				fmt.Println("user already exists:", u.Email)
				return existing
			}
			if err := userStore.Create(u); err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
			hash, err := credentials.HashPassword(password)
			if err != nil {
				log.Fatalf("failed to hash password: %v", err)
			}
			if err := credentials.Store(u.Email, hash); err != nil {
				log.Fatalf("failed to store credential: %v", err)
			}
			fmt.Println("Seeded user:", u.Email)
			return u
		}

		seedUser(&user.User{
			FirstName:   "Padil",
			LastName:    "Admin",
			Email:       "padil@mail.com",
			PhoneNumber: "+62 812-0000-0001",
			Gender:      user.GenderMale,
			Role:        user.RoleAdmin,
		}, "Adm1nPassword")

		employee := seedUser(&user.User{
			FirstName:   "Fadhil",
			LastName:    "Rahman",
			Email:       "fadhil@mail.com",
			PhoneNumber: "+62 812-0000-0002",
			Gender:      user.GenderMale,
			Role:        user.RoleEmployee,
		}, "Empl0yeePassword")

		if len(activityStore.GetByUserID(employee.ID)) == 0 {
			samples := []*activity.Activity{
				{
					UserID:       employee.ID,
					Type:         activity.TypeExpense,
					ReceiptImage: "data:image/png;base64,c2FtcGxl",
					Description:  "office supplies",
				},
				{
					UserID:          employee.ID,
					Type:            activity.TypeSales,
					ReceiptImage:    "data:image/png;base64,c2FtcGxl",
					Date:            "2026-08-20",
					Time:            "10:30",
					ServingEmployee: "Fadhil Rahman",
					BuyerName:       "PT Maju Jaya",
				},
				{
					UserID:          employee.ID,
					Type:            activity.TypeStorage,
					Location:        "warehouse A",
					ItemDescription: "packing boxes, medium",
					Quantity:        120,
					Condition:       "new",
				},
			}
			for _, a := range samples {
				if err := activityStore.Create(a); err != nil {
					log.Fatalf("failed to seed activity: %v", err)
				}
			}
			fmt.Printf("Seeded %d sample activities for %s\n", len(samples), employee.Email)
		} else {
			fmt.Println("sample activities already present")
		}
	},
}
