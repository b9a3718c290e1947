package usecase

import (
	"context"
	"fmt"
	"time"

	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/errors"
)

// Result pairs data with the tier that produced it.
type Result[T any] struct {
	Data   T             `json:"data"`
	Source entity.Source `json:"source"`
}

// Status reports the health of each tier.
type Status struct {
	Remote  bool `json:"remote"`
	Local   bool `json:"local"`
	Fixture bool `json:"fixture"`
}

// SyncResult is the outcome of one full sync.
type SyncResult struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	Counts     map[entity.Kind]int `json:"counts,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`

	Err error `json:"-"`
}

// TierError is returned by a write when both the remote and the local tier failed.
type TierError struct {
	Remote error
	Local  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("%s: remote: %v; local: %v", domainerrors.ErrAllTiersFailed.Message(), e.Remote, e.Local)
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *TierError) Unwrap() []error {
	return []error{e.Remote, e.Local}
}

// Is matches domainerrors.ErrAllTiersFailed.
func (e *TierError) Is(target error) bool {
	return errors.Is(domainerrors.ErrAllTiersFailed, target)
}

// CreateAdventurerInput is the create-shape of an adventurer.
// The password is kept in plaintext; see entity.PlaintextPasswordWarning.
type CreateAdventurerInput struct {
	Username       string  `json:"username" validate:"required,max=100"`
	Password       string  `json:"password" validate:"required,max=100"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=2048"`
}

// UpdateAdventurerInput carries the fields to change; nil fields are left as they are.
type UpdateAdventurerInput struct {
	Username       *string `json:"username,omitempty" validate:"omitempty,min=1,max=100"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=1,max=100"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=2048"`
}

// Apply copies the set fields onto adventurer.
func (in *UpdateAdventurerInput) Apply(adventurer *entity.Adventurer) {
	if in.Username != nil {
		adventurer.Username = *in.Username
	}
	if in.Password != nil {
		adventurer.Password = *in.Password
	}
	if in.ProfilePicture != nil {
		adventurer.ProfilePicture = in.ProfilePicture
	}
}

// CreateRegionInput is the create-shape of a region.
type CreateRegionInput struct {
	AdventurerID int64         `json:"adventurer_id" validate:"required,gt=0"`
	Name         string        `json:"name" validate:"required,max=200"`
	Description  *string       `json:"description,omitempty"`
	Center       *entity.Point `json:"center" validate:"required"`
	Radius       float64       `json:"radius" validate:"gt=0"`
}

// CreateLandmarkInput is the create-shape of a landmark.
type CreateLandmarkInput struct {
	RegionID int64         `json:"region_id" validate:"required,gt=0"`
	Name     string        `json:"name" validate:"required,max=200"`
	Location *entity.Point `json:"location,omitempty"`
}

// CreateAdventureInput is the create-shape of an adventure.
type CreateAdventureInput struct {
	AdventurerID int64         `json:"adventurer_id" validate:"required,gt=0"`
	RegionID     int64         `json:"region_id" validate:"required,gt=0"`
	Name         string        `json:"name" validate:"required,max=200"`
	TokenCount   int           `json:"token_count" validate:"gte=0"`
	Location     *entity.Point `json:"location,omitempty"`
}

// CreateTokenInput is the create-shape of a token.
type CreateTokenInput struct {
	AdventureID int64         `json:"adventure_id" validate:"required,gt=0"`
	Location    *entity.Point `json:"location,omitempty"`
	Hint        string        `json:"hint" validate:"max=1000"`
	TokenOrder  int           `json:"token_order" validate:"gte=0"`
}

// CreateCompletedAdventureInput is the create-shape of a completion.
// Empty date and time default to the moment of the call.
type CreateCompletedAdventureInput struct {
	AdventurerID   int64  `json:"adventurer_id" validate:"required,gt=0"`
	AdventureID    int64  `json:"adventure_id" validate:"required,gt=0"`
	CompletionDate string `json:"completion_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CompletionTime string `json:"completion_time,omitempty" validate:"omitempty,datetime=15:04:05"`
}

// HybridUsecase serves every entity from the remote service, the local store or the
// fixture data, in that order of preference.
//
// Reads never fail because of a tier: when nothing live answers, fixture data (possibly
// empty) is returned. Single reads that find nothing anywhere return ErrNotFound.
// Writes fail only when both the remote and the local tier reject them.
type HybridUsecase interface {
	FetchAdventurers(ctx context.Context, filter entity.Filter) (*Result[[]*entity.Adventurer], error)
	FetchAdventurer(ctx context.Context, id int64) (*Result[*entity.Adventurer], error)
	FetchAdventurerByUsername(ctx context.Context, username string) (*Result[*entity.Adventurer], error)
	CreateAdventurer(ctx context.Context, input *CreateAdventurerInput) (*Result[*entity.Adventurer], error)
	UpdateAdventurer(ctx context.Context, id int64, input *UpdateAdventurerInput) (*Result[*entity.Adventurer], error)

	FetchRegions(ctx context.Context, filter entity.Filter) (*Result[[]*entity.Region], error)
	FetchRegion(ctx context.Context, id int64) (*Result[*entity.Region], error)
	CreateRegion(ctx context.Context, input *CreateRegionInput) (*Result[*entity.Region], error)
	// LocateRegions returns the regions whose circle contains the point.
	LocateRegions(ctx context.Context, point entity.Point) (*Result[[]*entity.Region], error)

	FetchLandmarks(ctx context.Context, filter entity.Filter) (*Result[[]*entity.Landmark], error)
	CreateLandmark(ctx context.Context, input *CreateLandmarkInput) (*Result[*entity.Landmark], error)

	FetchAdventures(ctx context.Context, filter entity.Filter) (*Result[[]*entity.Adventure], error)
	FetchAdventure(ctx context.Context, id int64) (*Result[*entity.Adventure], error)
	CreateAdventure(ctx context.Context, input *CreateAdventureInput) (*Result[*entity.Adventure], error)

	FetchTokens(ctx context.Context, filter entity.Filter) (*Result[[]*entity.Token], error)
	CreateToken(ctx context.Context, input *CreateTokenInput) (*Result[*entity.Token], error)

	FetchCompletedAdventures(ctx context.Context, filter entity.Filter) (*Result[[]*entity.CompletedAdventure], error)
	CreateCompletedAdventure(ctx context.Context, input *CreateCompletedAdventureInput) (*Result[*entity.CompletedAdventure], error)

	// FullSync replaces the local store with a fresh remote snapshot, all or nothing.
	FullSync(ctx context.Context) *SyncResult
	GetStatus(ctx context.Context) *Status
	// GetLastSyncTime returns nil until a full sync has succeeded.
	GetLastSyncTime() *time.Time
}
