package models

import (
	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for operational audit entries.
type AuditEntryModel struct {
	BaseModel
	TenantID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID     `gorm:"type:uuid;not null"`
	Action     string        `gorm:"type:varchar(100);not null;index"`
	EntityType string        `gorm:"type:varchar(50);not null"`
	EntityID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Outcome    audit.Outcome `gorm:"type:varchar(20);not null"`
	Detail     string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry.
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Outcome:    m.Outcome,
		Detail:     m.Detail,
	}
}

// AuditEntryModelFromDomain creates a new persistence model from a domain audit Entry.
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{
		TenantID:   e.TenantID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Outcome:    e.Outcome,
		Detail:     e.Detail,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
