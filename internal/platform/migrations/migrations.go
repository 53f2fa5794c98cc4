package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&petRecord{},
		&adoptionRequestRecord{},
		&userRecord{},
		&sessionRecord{},
		&idempotencyRecord{},
	)
}

// Pet schema mirrors the pets Postgres adapter.
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

// Adoption request schema mirrors the adoptions Postgres adapter.
type adoptionRequestRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	PetID       int64     `gorm:"column:pet_id;index:idx_adoption_requests_pet_status"`
	RequesterID int64     `gorm:"column:requester_id;index"`
	Message     string    `gorm:"column:message"`
	Status      string    `gorm:"column:status;type:varchar(32);index:idx_adoption_requests_pet_status"`
	Read        bool      `gorm:"column:read;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;index"`
}

func (adoptionRequestRecord) TableName() string { return "adoption_requests" }

// User schema mirrors the users Postgres adapter.
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

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    int64      `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Idempotency key schema mirrors the adoptions idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	RequestID   int64     `gorm:"column:request_id;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "adoption_idempotency_keys" }
