package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/voidbinder/binder-services/internal/collectionsvc/csvfile"
	"github.com/voidbinder/binder-services/internal/collectionsvc/models"
	"github.com/voidbinder/binder-services/internal/collectionsvc/schema"
)

// Keeper applies one validated card to the external store, merging into
// an existing record with the same (name, set, condition) triple.
type Keeper interface {
	UpsertCard(ctx context.Context, card models.Card) error
}

// RowError is one failed row of an upload, numbered by file position.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Report is the caller-visible outcome of one upload. Success reflects
// parse and validation outcomes only; persistence never changes it.
// Cards are present even when storage failed.
type Report struct {
	Success        bool          `json:"success"`
	Cards          []models.Card `json:"cards,omitempty"`
	Errors         []RowError    `json:"errors,omitempty"`
	TotalProcessed int           `json:"totalProcessed"`
	TotalErrors    int           `json:"totalErrors"`
}

// Result is the full pipeline outcome: the public report plus the
// persistence tally that stays internal to the service.
type Result struct {
	Report
	ParseFailed bool
	Persisted   int
	StoreErrs   []error
}

// Pipeline runs one upload end to end: parse, normalize, validate,
// materialize, then best-effort persistence through the Keeper.
type Pipeline struct {
	schema *schema.Schema
	keeper Keeper // nil when no store is configured
}

func NewPipeline(s *schema.Schema, k Keeper) *Pipeline {
	return &Pipeline{schema: s, keeper: k}
}

// Run processes raw file text. Structural parse errors abort the batch
// before any validation. Each remaining row is validated independently
// and in file order; a failed row never blocks the next one. Keeper
// failures are logged and collected but leave the report untouched.
func (p *Pipeline) Run(ctx context.Context, text string) *Result {
	res := &Result{}

	rows, perrs := csvfile.Parse(text)
	if len(perrs) > 0 {
		res.ParseFailed = true
		for _, pe := range perrs {
			res.Errors = append(res.Errors, RowError{Row: pe.Line, Message: pe.Message})
		}
		res.TotalErrors = len(res.Errors)
		return res
	}

	now := time.Now()
	for _, row := range rows {
		csvRow, errs := p.schema.ValidateCSVRow(csvfile.Normalize(row.Fields))
		if errs != nil {
			res.Errors = append(res.Errors, RowError{Row: row.Line(), Message: errs.Error()})
			continue
		}
		res.Cards = append(res.Cards, models.Card{
			ID:             uuid.NewString(),
			Name:           csvRow.Name,
			Set:            csvRow.Set,
			Condition:      csvRow.Condition,
			Category:       csvRow.Category,
			EstimatedValue: csvRow.EstimatedValue,
			Quantity:       csvRow.Quantity,
			DateAdded:      now,
		})
	}

	res.TotalProcessed = len(res.Cards)
	res.TotalErrors = len(res.Errors)
	res.Success = len(res.Errors) == 0

	if len(res.Cards) > 0 && p.keeper != nil {
		// Strictly sequential so two duplicates in one batch merge
		// instead of racing each other.
		for _, card := range res.Cards {
			if err := p.keeper.UpsertCard(ctx, card); err != nil {
				log.Errorf("Error [Keeper.UpsertCard] %q: %s", card.Name, err)
				res.StoreErrs = append(res.StoreErrs, err)
				continue
			}
			res.Persisted++
		}
	}

	return res
}
