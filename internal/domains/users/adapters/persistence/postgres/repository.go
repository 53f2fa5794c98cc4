package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Subject     string    `gorm:"column:subject;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name"`
	Email       string    `gorm:"column:email"`
	Role        string    `gorm:"column:role;type:varchar(32)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Save inserts a user keyed by subject. A subject links to exactly one
// account; registering it twice is a conflict, never an overwrite.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject"}},
			DoNothing: true,
		}).
		Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrDuplicateSubject
	}
	return r.GetBySubject(ctx, record.Subject)
}

// GetByID fetches a user by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetBySubject fetches a user by identity subject.
func (r *Repository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "subject = ?", subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:          user.ID,
		Subject:     user.Subject,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
	}
}

func (rec userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:          rec.ID,
		Subject:     rec.Subject,
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
		Role:        domain.Role(rec.Role),
	}
}
