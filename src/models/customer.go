package models

import (
	"time"
)

type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "ACTIVE"
	CustomerStatusInactive  CustomerStatus = "INACTIVE"
	CustomerStatusSuspended CustomerStatus = "SUSPENDED"
)

type Customer struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	CustomerID string         `json:"customerId" gorm:"column:customer_id;type:text;uniqueIndex;not null"`
	FirstName  string         `json:"firstName" gorm:"column:first_name;type:text"`
	LastName   string         `json:"lastName" gorm:"column:last_name;type:text"`
	Email      string         `json:"email" gorm:"column:email;type:text"`
	Status     CustomerStatus `json:"status" gorm:"column:status;type:text;not null"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (c Customer) EntityID() string {
	return c.CustomerID
}

func (c Customer) EntityOwnerID() string {
	return c.CustomerID
}

func (c Customer) EntityKind() string {
	return "customer"
}
