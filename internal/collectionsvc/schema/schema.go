package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voidbinder/binder-services/internal/collectionsvc/models"
)

// FieldError is one violated rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects every violation found in a single candidate.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Schema is the authoritative definition of a valid card. The category
// enumeration is fixed at construction; condition grading is global.
type Schema struct {
	categories      []string
	defaultCategory string
}

// New builds a schema with the given closed category set. defaultCategory
// is applied when a CSV row carries no category; it must be a member of
// categories.
func New(categories []string, defaultCategory string) (*Schema, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("schema: empty category set")
	}
	s := &Schema{categories: categories, defaultCategory: defaultCategory}
	if !s.ValidCategory(defaultCategory) {
		return nil, fmt.Errorf("schema: default category %q is not in the category set", defaultCategory)
	}
	return s, nil
}

// Default is the game-classification schema version.
func Default() *Schema {
	s, _ := New([]string{"Pokemon", "Magic", "YuGiOh", "Other"}, "Other")
	return s
}

// Categories returns the configured closed set.
func (s *Schema) Categories() []string {
	return s.categories
}

// ValidCategory reports membership in the category set. Matching is exact
// and case-sensitive.
func (s *Schema) ValidCategory(c string) bool {
	for _, v := range s.categories {
		if c == v {
			return true
		}
	}
	return false
}

// ValidateCSVRow checks one normalized row against the pre-persistence
// contract. Numeric fields are accepted as numeric strings and coerced;
// quantity defaults to 1 and category to the schema default when absent.
// Every violated field is reported, not just the first. Keys outside the
// contract are ignored.
func (s *Schema) ValidateCSVRow(fields map[string]string) (models.CSVRow, Errors) {
	var errs Errors
	var row models.CSVRow

	row.Name = fields["name"]
	if row.Name == "" {
		errs = append(errs, FieldError{"name", "Card name is required"})
	}

	row.Set = fields["set"]
	if row.Set == "" {
		errs = append(errs, FieldError{"set", "Set name is required"})
	}

	row.Condition = fields["condition"]
	if !models.ValidCondition(row.Condition) {
		errs = append(errs, FieldError{"condition",
			fmt.Sprintf("invalid condition %q, expected one of %s", row.Condition, strings.Join(models.Conditions, ", "))})
	}

	row.Category = fields["category"]
	if row.Category == "" {
		row.Category = s.defaultCategory
	} else if !s.ValidCategory(row.Category) {
		errs = append(errs, FieldError{"category",
			fmt.Sprintf("invalid category %q, expected one of %s", row.Category, strings.Join(s.categories, ", "))})
	}

	rawValue := fields["estimatedValue"]
	if rawValue == "" {
		errs = append(errs, FieldError{"estimatedValue", "Value is required"})
	} else if v, err := decimal.NewFromString(strings.TrimSpace(rawValue)); err != nil {
		errs = append(errs, FieldError{"estimatedValue", "must be a number"})
	} else if v.IsNegative() {
		errs = append(errs, FieldError{"estimatedValue", "Value cannot be negative"})
	} else {
		row.EstimatedValue = v
	}

	rawQty := fields["quantity"]
	if rawQty == "" {
		row.Quantity = 1
	} else if q, err := strconv.Atoi(strings.TrimSpace(rawQty)); err != nil || q < 1 {
		errs = append(errs, FieldError{"quantity", "must be a positive integer"})
	} else {
		row.Quantity = q
	}

	if errs != nil {
		return models.CSVRow{}, errs
	}
	return row, nil
}

// ValidateCard checks a full card against the persisted-entity contract.
// A zero dateAdded is defaulted to the current time; nothing else is
// mutated. Validation is a pure function of its input: validating a card
// it already accepted yields the same card.
func (s *Schema) ValidateCard(card models.Card) (models.Card, Errors) {
	var errs Errors

	if card.Name == "" {
		errs = append(errs, FieldError{"name", "Card name is required"})
	}
	if card.Set == "" {
		errs = append(errs, FieldError{"set", "Set name is required"})
	}
	if !models.ValidCondition(card.Condition) {
		errs = append(errs, FieldError{"condition",
			fmt.Sprintf("invalid condition %q, expected one of %s", card.Condition, strings.Join(models.Conditions, ", "))})
	}
	if !s.ValidCategory(card.Category) {
		errs = append(errs, FieldError{"category",
			fmt.Sprintf("invalid category %q, expected one of %s", card.Category, strings.Join(s.categories, ", "))})
	}
	if card.EstimatedValue.IsNegative() {
		errs = append(errs, FieldError{"estimatedValue", "Value cannot be negative"})
	}
	if card.Quantity < 1 {
		errs = append(errs, FieldError{"quantity", "must be a positive integer"})
	}

	if errs != nil {
		return models.Card{}, errs
	}
	if card.DateAdded.IsZero() {
		card.DateAdded = time.Now()
	}
	return card, nil
}
