package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	petsdomain "github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption requests in PostgreSQL using GORM. Every
// lifecycle transition runs in a transaction that locks the pet row, so two
// racing decisions serialize on the same pet and at most one approval can
// ever win.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// requestRecord maps the adoption request aggregate to a relational table.
type requestRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	PetID       int64     `gorm:"column:pet_id;index:idx_adoption_requests_pet_status"`
	RequesterID int64     `gorm:"column:requester_id;index"`
	Message     string    `gorm:"column:message"`
	Status      string    `gorm:"column:status;type:varchar(32);index:idx_adoption_requests_pet_status"`
	Read        bool      `gorm:"column:read;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;index"`
}

func (requestRecord) TableName() string { return "adoption_requests" }

// petRow is the slice of the pets table this adapter locks and updates.
type petRow struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	OwnerID   int64  `gorm:"column:owner_id"`
	AdopterID *int64 `gorm:"column:adopter_id"`
	Status    string `gorm:"column:status"`
}

func (petRow) TableName() string { return "pets" }

// requestWithOwner carries a request joined with its pet's owner.
type requestWithOwner struct {
	ID          int64     `gorm:"column:id"`
	PetID       int64     `gorm:"column:pet_id"`
	RequesterID int64     `gorm:"column:requester_id"`
	Message     string    `gorm:"column:message"`
	Status      string    `gorm:"column:status"`
	Read        bool      `gorm:"column:read"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
	PetOwnerID  int64     `gorm:"column:pet_owner_id"`
}

const joinedColumns = "adoption_requests.id, adoption_requests.pet_id, adoption_requests.requester_id, " +
	"adoption_requests.message, adoption_requests.status, adoption_requests.read, " +
	"adoption_requests.created_at, adoption_requests.updated_at, COALESCE(pets.owner_id, 0) AS pet_owner_id"

// GetByID fetches a request by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row requestWithOwner
	err := r.joined(ctx).Where("adoption_requests.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrRequestNotFound
		}
		return nil, transientOr(err)
	}
	return row.toProjection(), nil
}

// ListByRequester returns the requester's requests, newest first.
func (r *Repository) ListByRequester(ctx context.Context, requesterID int64) ([]*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []requestWithOwner
	err := r.joined(ctx).
		Where("adoption_requests.requester_id = ?", requesterID).
		Order("adoption_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, transientOr(err)
	}
	return toProjectionList(rows), nil
}

// ListByOwner returns every request filed against the owner's pets, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []requestWithOwner
	err := r.joined(ctx).
		Where("pets.owner_id = ?", ownerID).
		Order("adoption_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, transientOr(err)
	}
	return toProjectionList(rows), nil
}

// ListUnreadDecided returns decided, unread requests oldest first for the relay.
func (r *Repository) ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.joined(ctx).
		Where("adoption_requests.status IN ? AND adoption_requests.read = ?",
			[]string{string(domain.StatusApproved), string(domain.StatusRejected)}, false).
		Order("adoption_requests.updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []requestWithOwner
	if err := query.Scan(&rows).Error; err != nil {
		return nil, transientOr(err)
	}
	return toProjectionList(rows), nil
}

// MarkRead flags the requester's own requests as read.
func (r *Repository) MarkRead(ctx context.Context, ids []int64, requesterID int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&requestRecord{}).
		Where("id IN ? AND requester_id = ? AND read = ?", ids, requesterID, false).
		Updates(map[string]any{"read": true, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return 0, transientOr(result.Error)
	}
	return result.RowsAffected, nil
}

// TransitionPet runs fn against the pet's locked view and applies the changeset.
func (r *Repository) TransitionPet(ctx context.Context, petID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.runTransition(ctx, func(tx *gorm.DB) (int64, error) {
		return petID, nil
	}, 0, fn)
}

// TransitionRequest resolves the request's pet, then locks and transitions it.
func (r *Repository) TransitionRequest(ctx context.Context, requestID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.runTransition(ctx, func(tx *gorm.DB) (int64, error) {
		var record requestRecord
		if err := tx.Select("id, pet_id").Take(&record, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ports.ErrRequestNotFound
			}
			return 0, err
		}
		return record.PetID, nil
	}, requestID, fn)
}

// runTransition is the single write path for lifecycle state. It locks the
// pet row, re-reads the request set, plans the transition, and applies it
// with conditional updates guarded on the pending status.
func (r *Repository) runTransition(ctx context.Context, resolvePet func(*gorm.DB) (int64, error), focusID int64, fn ports.TransitionFunc) (*adopttypes.RequestProjection, error) {
	var resultID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		petID, err := resolvePet(tx)
		if err != nil {
			return err
		}

		var pet petRow
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&pet, "id = ?", petID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrPetNotFound
			}
			return err
		}

		var records []requestRecord
		if err := tx.Where("pet_id = ?", petID).Order("id ASC").Find(&records).Error; err != nil {
			return err
		}

		view := domain.PetView{
			Pet: domain.PetSnapshot{
				ID:      pet.ID,
				OwnerID: pet.OwnerID,
				Status:  petsdomain.Status(pet.Status),
			},
		}
		for i := range records {
			view.Requests = append(view.Requests, records[i].toDomain())
		}

		changes, err := fn(view)
		if err != nil {
			return err
		}

		resultID = focusID
		if changes.Create != nil {
			record := requestRecord{
				PetID:       changes.Create.PetID,
				RequesterID: changes.Create.RequesterID,
				Message:     changes.Create.Message,
				Status:      string(changes.Create.Status),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			resultID = record.ID
		}
		for id, status := range changes.StatusChanges {
			result := tx.Model(&requestRecord{}).
				Where("id = ? AND status = ?", id, string(domain.StatusPending)).
				Updates(map[string]any{"status": string(status), "updated_at": gorm.Expr("NOW()")})
			if result.Error != nil {
				return result.Error
			}
			// The row moved out of pending between the read and the write.
			// Under the pet lock this only happens on out-of-band writes;
			// surface it as an invalid transition either way.
			if result.RowsAffected == 0 {
				return domain.ErrAlreadyDecided
			}
		}

		petUpdates := map[string]any{
			"status":     string(changes.PetStatus),
			"updated_at": gorm.Expr("NOW()"),
		}
		if changes.PetStatus == petsdomain.StatusAdopted {
			petUpdates["adopter_id"] = changes.PetAdopterID
		} else {
			petUpdates["adopter_id"] = nil
		}
		if err := tx.Model(&petRow{}).Where("id = ?", petID).Updates(petUpdates).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, transientOr(err)
	}
	return r.GetByID(ctx, resultID)
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("adoption_requests").
		Select(joinedColumns).
		Joins("LEFT JOIN pets ON pets.id = adoption_requests.pet_id")
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func (r requestRecord) toDomain() *domain.AdoptionRequest {
	return &domain.AdoptionRequest{
		ID:          r.ID,
		PetID:       r.PetID,
		RequesterID: r.RequesterID,
		Message:     r.Message,
		Status:      domain.Status(r.Status),
		Read:        r.Read,
	}
}

func (row requestWithOwner) toProjection() *adopttypes.RequestProjection {
	request := &domain.AdoptionRequest{
		ID:          row.ID,
		PetID:       row.PetID,
		RequesterID: row.RequesterID,
		Message:     row.Message,
		Status:      domain.Status(row.Status),
		Read:        row.Read,
	}
	return adopttypes.NewRequestProjection(request, row.PetOwnerID, row.CreatedAt, row.UpdatedAt)
}

func toProjectionList(rows []requestWithOwner) []*adopttypes.RequestProjection {
	result := make([]*adopttypes.RequestProjection, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toProjection())
	}
	return result
}

// sqlState matches the error interface both pq and pgx driver errors expose.
type sqlState interface {
	SQLState() string
}

// transientOr tags serialization failures and deadlocks as retryable.
func transientOr(err error) error {
	if err == nil {
		return nil
	}
	var state sqlState
	if errors.As(err, &state) {
		switch state.SQLState() {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ports.ErrTransient, err)
		}
	}
	return err
}
