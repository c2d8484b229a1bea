package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/storage"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, update-password, add-worker, recount")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <name> <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(store, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("✅ Admin %s created. Use these credentials to login on the dashboard.\n", os.Args[3])
	case "update-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin update-password <email> <new_password>")
			os.Exit(1)
		}
		if err := updatePassword(store, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error updating password: %v", err)
		}
		fmt.Printf("Password for %s has been updated.\n", os.Args[2])
	case "add-worker":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin add-worker <name> <email> <phone>")
			os.Exit(1)
		}
		worker := &models.Worker{
			Name:   os.Args[2],
			Email:  os.Args[3],
			Phone:  os.Args[4],
			Status: models.WorkerActive,
		}
		if err := store.CreateWorker(worker); err != nil {
			log.Fatalf("Error creating worker: %v", err)
		}
		fmt.Printf("Worker %s created with ID %s.\n", worker.Name, worker.ID)
	case "recount":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin recount <worker_id>")
			os.Exit(1)
		}
		if err := recount(store, os.Args[2]); err != nil {
			log.Fatalf("Error checking worker counter: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s *storage.Service, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.DB.Create(admin).Error
}

func updatePassword(s *storage.Service, email, password string) error {
	admin, err := s.GetAdminByEmail(email)
	if err != nil {
		return err
	}
	if admin == nil {
		return fmt.Errorf("no admin with email %s", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	return s.DB.Save(admin).Error
}

// recount compares a worker's maintained assigned_count against the live
// number of open assignments. Diagnostic only: the counter is maintained by
// lifecycle transactions and is never rewritten from a query, so any drift
// reported here points at a bug worth investigating, not at data to "fix".
func recount(s *storage.Service, workerID string) error {
	worker, err := s.GetWorkerByID(workerID)
	if err != nil {
		return err
	}
	if worker == nil {
		return fmt.Errorf("no worker with ID %s", workerID)
	}

	var open int64
	err = s.DB.Model(&models.Complaint{}).
		Where("worker_id = ? AND status NOT IN ?", workerID,
			[]string{models.StatusResolved, models.StatusRejected}).
		Count(&open).Error
	if err != nil {
		return err
	}

	fmt.Printf("Worker %s (%s): assigned_count=%d, open assignments=%d\n",
		worker.Name, worker.ID, worker.AssignedCount, open)
	if int64(worker.AssignedCount) != open {
		fmt.Println("⚠️  Counter drift detected. Check the status history for this worker's complaints.")
	}
	return nil
}
