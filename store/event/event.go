package event

import (
	"context"

	"loans/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{db: db}
}

func (s *eventStore) Create(ctx context.Context, events []*core.Event) error {
	return s.db.Tx(func(tx *db.DB) error {
		for _, event := range events {
			if event.TraceID == "" {
				event.TraceID = uuid.New()
			}

			if err := tx.Update().Where("trace_id=?", event.TraceID).FirstOrCreate(event).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *eventStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Event, error) {
	if limit <= 0 {
		limit = 500
	}

	var events []*core.Event
	if err := s.db.View().Where("id > ?", fromID).Order("id ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
