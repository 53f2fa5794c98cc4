package types

// PetIdentifier addresses a single pet listing.
type PetIdentifier struct {
	ID int64
}

// RegisterPetInput carries the fields required to publish a new listing.
type RegisterPetInput struct {
	OwnerID     int64
	Name        string
	Species     string
	Breed       string
	AgeMonths   int32
	Size        string
	Gender      string
	Description string
	City        string
	Region      string
	PhotoURLs   []string
}

// UpdatePetInput applies a partial mutation to an existing listing.
// Pointer fields distinguish "absent" from "set to zero value".
// Status is deliberately absent: availability is derived, never client-set.
type UpdatePetInput struct {
	ID          int64
	ActorID     int64
	Name        *string
	Breed       *string
	AgeMonths   *int32
	Size        *string
	Gender      *string
	Description *string
	City        *string
	Region      *string
	PhotoURLs   *[]string
}

// DeletePetInput removes a listing on behalf of its owner.
type DeletePetInput struct {
	ID      int64
	ActorID int64
}

// FindPetsByStatusInput filters listings by one or more availability states.
type FindPetsByStatusInput struct {
	Statuses []string
}

// FindPetsBySpeciesInput filters listings by species bucket.
type FindPetsBySpeciesInput struct {
	Species string
}
