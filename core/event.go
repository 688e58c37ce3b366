package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// EventKind what happened
type EventKind string

const (
	EventNewMarket               EventKind = "NewMarket"
	EventActivatedMarket         EventKind = "ActivatedMarket"
	EventUpdatedMarket           EventKind = "UpdatedMarket"
	EventNewInterestRateModel    EventKind = "NewInterestRateModel"
	EventNewLiquidationIncentive EventKind = "NewLiquidationIncentive"
	EventReservesAdded           EventKind = "ReservesAdded"
	EventReservesReduced         EventKind = "ReservesReduced"
	EventDeposited               EventKind = "Deposited"
	EventRedeemed                EventKind = "Redeemed"
	EventBorrowed                EventKind = "Borrowed"
	EventRepaidBorrow            EventKind = "RepaidBorrow"
	EventLiquidatedBorrow        EventKind = "LiquidatedBorrow"
	EventCollateralAssetAdded    EventKind = "CollateralAssetAdded"
	EventCollateralAssetRemoved  EventKind = "CollateralAssetRemoved"
	EventVouchersTransferred     EventKind = "VouchersTransferred"
	EventInterestAccrued         EventKind = "InterestAccrued"
	EventAssetIssued             EventKind = "AssetIssued"
	EventAssetBurned             EventKind = "AssetBurned"
)

// Event committed engine event
type Event struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string         `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id,omitempty"`
	Kind      EventKind      `sql:"size:32;index:idx_events_kind" json:"kind,omitempty"`
	Currency  CurrencyID     `json:"currency"`
	Account   AccountID      `sql:"size:64;index:idx_events_account" json:"account,omitempty"`
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// EventData extra data of an event
type EventData map[string]interface{}

// Put put data
func (d EventData) Put(key string, value interface{}) EventData {
	d[key] = value
	return d
}

// Format format as []byte
func (d EventData) Format() []byte {
	bs, err := json.Marshal(d)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

// NewEvent new event with json data
func NewEvent(kind EventKind, currency CurrencyID, account AccountID, data EventData) *Event {
	e := &Event{
		Kind:     kind,
		Currency: currency,
		Account:  account,
		Data:     []byte("{}"),
	}

	if data != nil {
		e.Data = data.Format()
	}

	return e
}

// IEventStore event archive
type IEventStore interface {
	Create(ctx context.Context, events []*Event) error
	List(ctx context.Context, fromID int64, limit int) ([]*Event, error)
}
