package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidbinder/binder-services/internal/collectionsvc/models"
)

var (
	ErrNotConfigured = errors.New("card store is not configured")
	ErrEmptyUpdate   = errors.New("no recognized fields to update")
	ErrNotFound      = errors.New("card not found")
)

// CardStore persists cards in the card_values table. Column names differ
// from the card field names (set -> set_name, estimatedValue -> price);
// the store owns that translation in both directions.
type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

// Configured reports whether a database pool is attached. Without one
// every operation returns ErrNotConfigured.
func (s *CardStore) Configured() bool {
	return s != nil && s.db != nil
}

// UpsertCard applies one validated card. A single conditional write over
// the (name, set_name, condition) unique index merges quantities into an
// existing record without touching its other fields, or inserts a fresh
// record.
func (s *CardStore) UpsertCard(ctx context.Context, card models.Card) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	query := `
		INSERT INTO card_values (id, name, set_name, condition, category, price, quantity, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name, set_name, condition)
		DO UPDATE SET quantity = card_values.quantity + EXCLUDED.quantity
	`

	_, err := s.db.Exec(ctx, query,
		card.ID,
		card.Name,
		card.Set,
		card.Condition,
		card.Category,
		card.EstimatedValue,
		card.Quantity,
		card.DateAdded,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card: %w", err)
	}

	return nil
}

// ListCards returns every card, newest date_added first.
func (s *CardStore) ListCards(ctx context.Context) ([]models.Card, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	query := `
		SELECT id, name, set_name, condition, COALESCE(category, 'Other'), price, quantity, date_added
		FROM card_values
		ORDER BY date_added DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Set,
			&c.Condition,
			&c.Category,
			&c.EstimatedValue,
			&c.Quantity,
			&c.DateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

// UpdateCard applies a partial edit to one card by id. Only the fields
// present in the update are written; the mapping below is the explicit
// allowlist of updatable columns. An update carrying none of them is
// rejected with ErrEmptyUpdate.
func (s *CardStore) UpdateCard(ctx context.Context, id string, upd models.CardUpdate) (*models.Card, error) {
	var set []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Set != nil {
		add("set_name", *upd.Set)
	}
	if upd.Condition != nil {
		add("condition", *upd.Condition)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.EstimatedValue != nil {
		add("price", *upd.EstimatedValue)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}

	// An empty edit is rejected before the store is consulted, so the
	// answer does not depend on storage availability.
	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE card_values SET %s
		WHERE id = $%d
		RETURNING id, name, set_name, condition, COALESCE(category, 'Other'), price, quantity, date_added
	`, strings.Join(set, ", "), len(args))

	var c models.Card
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Set,
		&c.Condition,
		&c.Category,
		&c.EstimatedValue,
		&c.Quantity,
		&c.DateAdded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &c, nil
}

// DeleteCard removes one card by id. Deleting an id that does not exist
// is not an error.
func (s *CardStore) DeleteCard(ctx context.Context, id string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	_, err := s.db.Exec(ctx, `DELETE FROM card_values WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}
