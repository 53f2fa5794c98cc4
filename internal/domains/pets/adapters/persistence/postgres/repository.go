package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pet listings in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// petRecord maps the pet aggregate to a relational table.
type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	OwnerID     int64          `gorm:"column:owner_id;index"`
	AdopterID   *int64         `gorm:"column:adopter_id"`
	Name        string         `gorm:"column:name"`
	Species     string         `gorm:"column:species;type:varchar(64);index"`
	Breed       string         `gorm:"column:breed"`
	AgeMonths   int32          `gorm:"column:age_months"`
	Size        string         `gorm:"column:size;type:varchar(16)"`
	Gender      string         `gorm:"column:gender;type:varchar(16)"`
	Description string         `gorm:"column:description"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	City        string         `gorm:"column:city"`
	Region      string         `gorm:"column:region"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Save inserts or updates a listing. Status and adopter columns are written
// on insert only; afterwards they belong to the adoptions adapter.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	record := toRecord(pet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"species":     record.Species,
				"breed":       record.Breed,
				"age_months":  record.AgeMonths,
				"size":        record.Size,
				"gender":      record.Gender,
				"description": record.Description,
				"photo_urls":  record.PhotoURLs,
				"city":        record.City,
				"region":      record.Region,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a listing by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStatus returns listings in any of the given availability states.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("status IN ?", values).Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjectionList(records), nil
}

// FindBySpecies returns listings of a single species bucket.
func (r *Repository) FindBySpecies(ctx context.Context, species string) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("species = ?", species).Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjectionList(records), nil
}

// List returns all listings.
func (r *Repository) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjectionList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:          pet.ID,
		OwnerID:     pet.OwnerID,
		AdopterID:   pet.AdopterID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		AgeMonths:   pet.AgeMonths,
		Size:        string(pet.Size),
		Gender:      string(pet.Gender),
		Description: pet.Description,
		PhotoURLs:   append(pq.StringArray{}, pet.PhotoURLs...),
		City:        pet.City,
		Region:      pet.Region,
		Status:      string(pet.Status),
	}
}

func (r petRecord) toProjection() *pettypes.PetProjection {
	pet := &domain.Pet{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		AdopterID:   r.AdopterID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		AgeMonths:   r.AgeMonths,
		Size:        domain.Size(r.Size),
		Gender:      domain.Gender(r.Gender),
		Description: r.Description,
		PhotoURLs:   append([]string{}, r.PhotoURLs...),
		City:        r.City,
		Region:      r.Region,
		Status:      domain.Status(r.Status),
	}
	return pettypes.NewPetProjection(pet, r.CreatedAt, r.UpdatedAt)
}

func toProjectionList(records []petRecord) []*pettypes.PetProjection {
	result := make([]*pettypes.PetProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result
}
