package models

import (
	"time"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

type Account struct {
	ID          uint          `json:"-" gorm:"primaryKey"`
	AccountID   string        `json:"accountId" gorm:"column:account_id;type:text;uniqueIndex;not null"`
	CustomerID  string        `json:"customerId" gorm:"column:customer_id;type:text;index;not null"`
	AccountType AccountType   `json:"accountType" gorm:"column:account_type;type:text;not null"`
	Status      AccountStatus `json:"status" gorm:"column:status;type:text;not null"`
	Currency    string        `json:"currency" gorm:"column:currency;type:text;not null"`
	Balance     float64       `json:"balance" gorm:"column:balance;type:numeric;not null"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (a Account) EntityID() string {
	return a.AccountID
}

func (a Account) EntityOwnerID() string {
	return a.CustomerID
}

func (a Account) EntityKind() string {
	return "account"
}
