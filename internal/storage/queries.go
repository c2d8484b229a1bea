package storage

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// ComplaintFilter narrows ListComplaints. Zero values mean "no filter".
type ComplaintFilter struct {
	Status   string
	Category string
	Type     string
	Page     int
	Limit    int
}

// CreateUser inserts a new citizen account.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmailOrPhone is the duplicate check used at registration.
func (s *Service) FindUserByEmailOrPhone(email, phone string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? OR phone = ?", email, phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithComplaints loads a user with their full complaint list, newest
// first, including each complaint's media and assigned worker.
func (s *Service) GetUserWithComplaints(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Complaints", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc")
	}).
		Preload("Complaints.Media").
		Preload("Complaints.Worker").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserSummary is a user projected with their complaint volume, the shape the
// profile and admin user-list endpoints answer with.
type UserSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CreatedAt       time.Time `json:"createdAt"`
	TotalComplaints int64     `json:"totalComplaints"`
}

func (s *Service) userSummaries() *gorm.DB {
	return s.DB.Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.phone, users.created_at,
			count(complaints.id) as total_complaints`).
		Joins("left join complaints on complaints.user_id = users.id").
		Group("users.id")
}

// GetUserSummary returns one user's summary, nil without error when absent.
func (s *Service) GetUserSummary(id string) (*UserSummary, error) {
	var summaries []UserSummary
	err := s.userSummaries().Where("users.id = ?", id).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}
	return &summaries[0], nil
}

// ListUserSummaries returns every user's summary, newest accounts first.
func (s *Service) ListUserSummaries() ([]UserSummary, error) {
	var summaries []UserSummary
	err := s.userSummaries().Order("users.created_at desc").Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *Service) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Service) CreateWorker(worker *models.Worker) error {
	return s.DB.Create(worker).Error
}

func (s *Service) GetWorkerByID(id string) (*models.Worker, error) {
	var worker models.Worker
	err := s.DB.First(&worker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (s *Service) FindWorkerByEmailOrPhone(email, phone string) (*models.Worker, error) {
	var worker models.Worker
	err := s.DB.Where("email = ? OR phone = ?", email, phone).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// ListWorkers returns workers ordered by name, optionally filtered by status.
func (s *Service) ListWorkers(status string) ([]models.Worker, error) {
	var workers []models.Worker
	q := s.DB.Order("name asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&workers).Error; err != nil {
		log.Printf("ERROR: Failed to list workers: %v", err)
		return nil, err
	}
	return workers, nil
}

func (s *Service) UpdateWorker(worker *models.Worker) error {
	return s.DB.Save(worker).Error
}

func (s *Service) ListWorkerComplaints(workerID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("worker_id = ?", workerID).
		Preload("User").
		Preload("Media").
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// GetComplaintByID loads one complaint with its filer, worker, media and full
// history (newest first). Returns nil without error when absent.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Preload("User").
		Preload("Worker").
		Preload("Media").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC, id DESC")
		}).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// ListComplaints returns one page of complaints plus the unpaged total.
func (s *Service) ListComplaints(filter ComplaintFilter) ([]models.Complaint, int64, error) {
	q := s.DB.Model(&models.Complaint{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var complaints []models.Complaint
	err := q.Preload("User").
		Preload("Worker").
		Preload("Media").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (s *Service) ListUserComplaints(userID, status string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	q := s.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Preload("Media").
		Preload("Worker").
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) ListComplaintsByCategory(category string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("category = ?", category).
		Preload("User").
		Preload("Worker").
		Preload("Media").
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// CategoryCount is one row of a per-category aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// TypeCount is one row of a per-type aggregate.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ComplaintStats is the per-status breakdown for the complaints endpoint.
type ComplaintStats struct {
	Total      int64           `json:"total"`
	ByStatus   StatusCounts    `json:"byStatus"`
	ByCategory []CategoryCount `json:"byCategory"`
}

// StatusCounts holds one counter per complaint status.
type StatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
}

func (s *Service) countComplaints(status string) (int64, error) {
	var n int64
	q := s.DB.Model(&models.Complaint{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return n, q.Count(&n).Error
}

func (s *Service) statusCounts() (StatusCounts, error) {
	var sc StatusCounts
	var err error
	if sc.Pending, err = s.countComplaints(models.StatusPending); err != nil {
		return sc, err
	}
	if sc.InProgress, err = s.countComplaints(models.StatusInProgress); err != nil {
		return sc, err
	}
	if sc.Resolved, err = s.countComplaints(models.StatusResolved); err != nil {
		return sc, err
	}
	if sc.Rejected, err = s.countComplaints(models.StatusRejected); err != nil {
		return sc, err
	}
	return sc, nil
}

// ComplaintStats aggregates totals by status and category.
func (s *Service) ComplaintStats() (*ComplaintStats, error) {
	stats := &ComplaintStats{}
	var err error
	if stats.Total, err = s.countComplaints(""); err != nil {
		return nil, err
	}
	if stats.ByStatus, err = s.statusCounts(); err != nil {
		return nil, err
	}
	err = s.DB.Model(&models.Complaint{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&stats.ByCategory).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	Overview struct {
		TotalComplaints int64 `json:"totalComplaints"`
		TotalUsers      int64 `json:"totalUsers"`
		TotalWorkers    int64 `json:"totalWorkers"`
		ActiveWorkers   int64 `json:"activeWorkers"`
	} `json:"overview"`
	ComplaintsByStatus   StatusCounts       `json:"complaintsByStatus"`
	ComplaintsByCategory []CategoryCount    `json:"complaintsByCategory"`
	ComplaintsByType     []TypeCount        `json:"complaintsByType"`
	RecentComplaints     []models.Complaint `json:"recentComplaints"`
}

// DashboardStats aggregates the admin dashboard view: overview counters,
// breakdowns by status, category and type, and the ten latest complaints.
func (s *Service) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.Overview.TotalComplaints, err = s.countComplaints(""); err != nil {
		return nil, err
	}
	if err = s.DB.Model(&models.User{}).Count(&stats.Overview.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err = s.DB.Model(&models.Worker{}).Count(&stats.Overview.TotalWorkers).Error; err != nil {
		return nil, err
	}
	if err = s.DB.Model(&models.Worker{}).Where("status = ?", models.WorkerActive).
		Count(&stats.Overview.ActiveWorkers).Error; err != nil {
		return nil, err
	}

	if stats.ComplaintsByStatus, err = s.statusCounts(); err != nil {
		return nil, err
	}
	if err = s.DB.Model(&models.Complaint{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&stats.ComplaintsByCategory).Error; err != nil {
		return nil, err
	}
	if err = s.DB.Model(&models.Complaint{}).
		Select("type, count(*) as count").
		Group("type").
		Scan(&stats.ComplaintsByType).Error; err != nil {
		return nil, err
	}

	err = s.DB.Preload("User").
		Preload("Worker").
		Preload("Media").
		Order("created_at desc").
		Limit(10).
		Find(&stats.RecentComplaints).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// HeatmapPoint is one complaint projected onto the map overlay.
type HeatmapPoint struct {
	ID          string    `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Address     string    `json:"address"`
	Date        time.Time `json:"date"`
}

// HeatmapPoints returns every complaint's location, optionally filtered by
// status ("" and "All" both mean unfiltered).
func (s *Service) HeatmapPoints(status string) ([]HeatmapPoint, error) {
	q := s.DB.Model(&models.Complaint{}).
		Select("id, latitude as lat, longitude as lng, status, category, subcategory, address, created_at as date")
	if status != "" && status != "All" {
		q = q.Where("status = ?", status)
	}
	var points []HeatmapPoint
	if err := q.Scan(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

// TrendPoint is one day's complaint volume.
type TrendPoint struct {
	Date       string `json:"date"`
	Total      int64  `json:"total"`
	Pending    int64  `json:"pending"`
	InProgress int64  `json:"inProgress"`
	Resolved   int64  `json:"resolved"`
}

// TrendPoints buckets complaints filed in the last `days` days by calendar
// day, oldest first.
func (s *Service) TrendPoints(days int) ([]TrendPoint, error) {
	if days < 1 {
		days = 30
	}
	start := time.Now().AddDate(0, 0, -days)

	var points []TrendPoint
	err := s.DB.Model(&models.Complaint{}).
		Select(`to_char(created_at, 'YYYY-MM-DD') as date,
			count(*) as total,
			count(*) filter (where status = 'Pending') as pending,
			count(*) filter (where status = 'In-Progress') as in_progress,
			count(*) filter (where status = 'Resolved') as resolved`).
		Where("created_at >= ?", start).
		Group("date").
		Order("date asc").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// SubcategoryCount is one subcategory within a CategoryGroup.
type SubcategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CategoryGroup is one category with its per-subcategory counts.
type CategoryGroup struct {
	Category      string             `json:"category"`
	TotalCount    int64              `json:"totalCount"`
	Subcategories []SubcategoryCount `json:"subcategories"`
}

// CategoryBreakdown groups complaints by category and subcategory, largest
// categories first.
func (s *Service) CategoryBreakdown() ([]CategoryGroup, error) {
	var rows []struct {
		Category    string
		Subcategory string
		Count       int64
	}
	err := s.DB.Model(&models.Complaint{}).
		Select("category, subcategory, count(*) as count").
		Group("category, subcategory").
		Order("count desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups []CategoryGroup
	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, CategoryGroup{Category: r.Category})
		}
		groups[i].TotalCount += r.Count
		groups[i].Subcategories = append(groups[i].Subcategories, SubcategoryCount{
			Name:  r.Subcategory,
			Count: r.Count,
		})
	}
	return groups, nil
}
