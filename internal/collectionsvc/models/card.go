package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conditions is the physical grading scale, ordered best to worst.
var Conditions = []string{"NM", "LP", "MP", "HP", "DMG"}

// ValidCondition reports whether c is a member of the grading scale.
// Matching is exact; "nm" is not a condition.
func ValidCondition(c string) bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Card represents one row of the card_values table: a logical collection
// entry covering one or more physical copies of the same card.
type Card struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Set            string          `json:"set"`
	Condition      string          `json:"condition"`
	Category       string          `json:"category"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	Quantity       int             `json:"quantity"`
	DateAdded      time.Time       `json:"dateAdded"`
}

// CSVRow is the pre-persistence shape of one uploaded row, after
// normalization and validation but before an id is assigned.
type CSVRow struct {
	Name           string          `json:"name"`
	Set            string          `json:"set"`
	Condition      string          `json:"condition"`
	Category       string          `json:"category"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	Quantity       int             `json:"quantity"`
}

// CardUpdate carries a partial edit for an existing card. Pointer fields
// distinguish "absent" from zero values.
type CardUpdate struct {
	Name           *string          `json:"name"`
	Set            *string          `json:"set"`
	Condition      *string          `json:"condition"`
	Category       *string          `json:"category"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue"`
	Quantity       *int             `json:"quantity"`
}

// Empty reports whether the update carries no recognized field.
func (u CardUpdate) Empty() bool {
	return u.Name == nil && u.Set == nil && u.Condition == nil &&
		u.Category == nil && u.EstimatedValue == nil && u.Quantity == nil
}
