package models

import (
	"time"
)

type CardStatus string

const (
	CardStatusIssued  CardStatus = "ISSUED"
	CardStatusBlocked CardStatus = "BLOCKED"
)

type Card struct {
	ID         uint       `json:"-" gorm:"primaryKey"`
	CardID     string     `json:"cardId" gorm:"column:card_id;type:text;uniqueIndex;not null"`
	CustomerID string     `json:"customerId" gorm:"column:customer_id;type:text;index;not null"`
	AccountID  string     `json:"accountId" gorm:"column:account_id;type:text;index;not null"`
	Status     CardStatus `json:"status" gorm:"column:status;type:text;not null"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (c Card) EntityID() string {
	return c.CardID
}

func (c Card) EntityOwnerID() string {
	return c.CustomerID
}

func (c Card) EntityKind() string {
	return "card"
}
