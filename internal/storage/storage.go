// Package storage is the Postgres/Redis persistence layer. The Service both
// backs the HTTP handlers (queries, stats, cache) and implements
// lifecycle.Store for the engine's transactional writes.
package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// Storage is the query surface the HTTP handlers depend on. The lifecycle
// engine does not use this interface; it runs on lifecycle.Store, which
// Service also implements.
type Storage interface {
	// Users and admins
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserWithComplaints(id string) (*models.User, error)
	GetUserSummary(id string) (*UserSummary, error)
	ListUserSummaries() ([]UserSummary, error)
	FindUserByEmailOrPhone(email, phone string) (*models.User, error)
	GetAdminByEmail(email string) (*models.Admin, error)

	// Workers
	CreateWorker(worker *models.Worker) error
	GetWorkerByID(id string) (*models.Worker, error)
	FindWorkerByEmailOrPhone(email, phone string) (*models.Worker, error)
	ListWorkers(status string) ([]models.Worker, error)
	UpdateWorker(worker *models.Worker) error
	ListWorkerComplaints(workerID string) ([]models.Complaint, error)

	// Complaints (reads only; writes go through the lifecycle engine)
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints(filter ComplaintFilter) ([]models.Complaint, int64, error)
	ListUserComplaints(userID, status string) ([]models.Complaint, error)
	ListComplaintsByCategory(category string) ([]models.Complaint, error)

	// Analytics
	ComplaintStats() (*ComplaintStats, error)
	DashboardStats() (*DashboardStats, error)
	HeatmapPoints(status string) ([]HeatmapPoint, error)
	TrendPoints(days int) ([]TrendPoint, error)
	CategoryBreakdown() ([]CategoryGroup, error)
	GetCachedDashboard() (*DashboardStats, bool)
	SetCachedDashboard(stats *DashboardStats)
}

// Service holds the database and Redis handles.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService constructs the storage layer. rdb may be nil for tools
// that only need the database (the admin CLI).
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
