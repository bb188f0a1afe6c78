package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Customer represents a walk-in customer of a shop.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Name   string
	Phone  string
	Email  string
	Notes  string
	Status CustomerStatus
}

// NewCustomer creates a new customer. Phone is the customer's primary
// identifier at the counter and is required; email is optional.
func NewCustomer(tenantID uuid.UUID, name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Phone:               phone,
		Status:              CustomerStatusActive,
	}

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, email, notes string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Email = email
	c.Notes = notes
	c.UpdatedAt = time.Now()

	return nil
}

// Deactivate marks the customer as inactive. Customers with order history
// are never deleted, only deactivated.
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
}

// Activate marks the customer as active again
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone format is invalid")
	}
	return nil
}
