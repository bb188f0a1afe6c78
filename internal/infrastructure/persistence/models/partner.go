package models

import (
	"github.com/laundrypos/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	TenantAggregateModel
	Name   string                 `gorm:"type:varchar(200);not null"`
	Phone  string                 `gorm:"type:varchar(50);not null;index"`
	Email  string                 `gorm:"type:varchar(200)"`
	Notes  string                 `gorm:"type:text"`
	Status partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Name:   m.Name,
		Phone:  m.Phone,
		Email:  m.Email,
		Notes:  m.Notes,
		Status: m.Status,
	}
	m.PopulateTenantAggregateRoot(&customer.TenantAggregateRoot)
	return customer
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:   c.Name,
		Phone:  c.Phone,
		Email:  c.Email,
		Notes:  c.Notes,
		Status: c.Status,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}
