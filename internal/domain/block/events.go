package block

import (
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

type Created struct {
	BlockID    BlockID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	Reason     string
	At         time.Time
}

func (e Created) EventName() string     { return "block.created" }
func (e Created) AggregateID() string   { return string(e.BlockID) }
func (e Created) OccurredAt() time.Time { return e.At }

type Updated struct {
	BlockID    BlockID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	Reason     string
	At         time.Time
}

func (e Updated) EventName() string     { return "block.updated" }
func (e Updated) AggregateID() string   { return string(e.BlockID) }
func (e Updated) OccurredAt() time.Time { return e.At }

type Deleted struct {
	BlockID    BlockID
	PropertyID property.PropertyID
	At         time.Time
}

func (e Deleted) EventName() string     { return "block.deleted" }
func (e Deleted) AggregateID() string   { return string(e.BlockID) }
func (e Deleted) OccurredAt() time.Time { return e.At }
