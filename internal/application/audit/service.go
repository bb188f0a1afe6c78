package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// EntryListFilter represents filter options for the audit trail
type EntryListFilter struct {
	Action   string     `form:"action"`
	EntityID *uuid.UUID `form:"entity_id"`
	Outcome  string     `form:"outcome" binding:"omitempty,oneof=SUCCESS DENIED"`
	Start    *time.Time `form:"start"`
	End      *time.Time `form:"end"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EntryResponse is the API shape of an audit entry
type EntryResponse struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service exposes the read side of the audit trail. Entries are only ever
// written through the Recorder; this service never mutates them.
type Service struct {
	repo audit.Repository
}

// NewService creates a new audit read service
func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves a shop's audit trail with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter EntryListFilter) (*shared.Paginated[EntryResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	f := shared.DefaultFilter()
	f.Page = filter.Page
	f.PageSize = filter.PageSize
	if filter.Action != "" {
		f.Filters["action"] = filter.Action
	}
	if filter.EntityID != nil {
		f.Filters["entity_id"] = *filter.EntityID
	}
	if filter.Outcome != "" {
		f.Filters["outcome"] = filter.Outcome
	}
	if filter.Start != nil {
		f.Filters["start_date"] = *filter.Start
	}
	if filter.End != nil {
		f.Filters["end_date"] = *filter.End
	}

	entries, err := s.repo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		responses = append(responses, EntryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Outcome:    string(e.Outcome),
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		})
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}
