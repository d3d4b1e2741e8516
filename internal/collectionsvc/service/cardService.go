package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/voidbinder/binder-services/internal/collectionsvc/broker"
	"github.com/voidbinder/binder-services/internal/collectionsvc/ingest"
	"github.com/voidbinder/binder-services/internal/collectionsvc/models"
	"github.com/voidbinder/binder-services/internal/collectionsvc/schema"
	"github.com/voidbinder/binder-services/internal/collectionsvc/store"
	"github.com/voidbinder/binder-services/internal/comm"
)

// Source values returned by ListCards, telling the dashboard where the
// data came from or why it is absent.
const (
	SourceSupabase = "supabase"
	SourceError    = "error"
	SourceNone     = "none"
	SourceEmpty    = "empty"
)

type CardService struct {
	store    *store.CardStore
	pipeline *ingest.Pipeline
	broker   *broker.Broker
}

func NewCardService(sch *schema.Schema, st *store.CardStore, b *broker.Broker) *CardService {
	var keeper ingest.Keeper
	if st.Configured() {
		keeper = st
	}
	return &CardService{
		store:    st,
		pipeline: ingest.NewPipeline(sch, keeper),
		broker:   b,
	}
}

// IngestCSV runs the upload pipeline over raw file text and announces
// the result when anything was persisted.
func (s *CardService) IngestCSV(ctx context.Context, text string) *ingest.Result {
	res := s.pipeline.Run(ctx, text)

	if res.Persisted > 0 {
		s.broker.PublishIngested(comm.IngestSummary{
			TotalProcessed: res.TotalProcessed,
			TotalErrors:    res.TotalErrors,
			Persisted:      res.Persisted,
		})
	}

	return res
}

// ListCards returns every stored card, newest first, with a source
// discriminator. An unreachable or unconfigured store yields an empty
// list rather than an error.
func (s *CardService) ListCards(ctx context.Context) ([]models.Card, string) {
	if !s.store.Configured() {
		return []models.Card{}, SourceNone
	}

	cards, err := s.store.ListCards(ctx)
	if err != nil {
		log.Errorf("Error [CardStore.ListCards] %s", err)
		return []models.Card{}, SourceError
	}
	if len(cards) == 0 {
		return []models.Card{}, SourceEmpty
	}

	return cards, SourceSupabase
}

// UpdateCard applies a partial edit by id.
func (s *CardService) UpdateCard(ctx context.Context, id string, upd models.CardUpdate) (*models.Card, error) {
	card, err := s.store.UpdateCard(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.broker.PublishCardUpdated(card.ID)
	return card, nil
}

// DeleteCard removes a card by id; deleting an unknown id succeeds.
func (s *CardService) DeleteCard(ctx context.Context, id string) error {
	if err := s.store.DeleteCard(ctx, id); err != nil {
		return err
	}

	s.broker.PublishCardDeleted(id)
	return nil
}
