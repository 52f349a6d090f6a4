package domain

import (
	"errors"
	"time"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrLimitNotFound   = errors.New("limit not found")
	ErrPastPeriod      = errors.New("record belongs to a closed accounting period")
)

type Category struct {
	ID   string
	Name string
}

type Expense struct {
	ID             string
	UserID         string
	CategoryID     string
	Description    string
	Amount         float64
	ReferenceMonth Month
	CreatedAt      time.Time
}

type Limit struct {
	ID             string
	UserID         string
	CategoryID     string
	Amount         float64
	ReferenceMonth Month
	CreatedAt      time.Time
}
