package model

import "time"

// Stock is the scarcity level of a listing.
type Stock string

const (
	StockPlenty Stock = "plenty"
	StockMid    Stock = "mid"
	StockLow    Stock = "low"
	StockGone   Stock = "gone"
)

// Stocks lists every stock level in display order.
var Stocks = []Stock{StockPlenty, StockMid, StockLow, StockGone}

// Valid reports whether s is one of the known stock levels.
func (s Stock) Valid() bool {
	switch s {
	case StockPlenty, StockMid, StockLow, StockGone:
		return true
	}
	return false
}

// DefaultAddBy is stored in Cheapie.AddBy; listings are not attributed to
// real users.
const DefaultAddBy = "Anonymous"

// Cheapie is a clearance listing attached to exactly one Place through Store.
// JSON names match the public API consumed by the map UI.
type Cheapie struct {
	ID        uint64     `json:"id"`        // cheapies.id
	Name      string     `json:"name"`      // cheapies.name
	Store     string     `json:"store"`     // cheapies.store (places.identifier)
	Quantity  int        `json:"quantity"`  // cheapies.quantity, > 0
	Price     float64    `json:"price"`     // cheapies.price, >= 0
	AddBy     string     `json:"addBy"`     // cheapies.add_by
	Exp       *time.Time `json:"exp"`       // cheapies.exp (nullable)
	Image     *string    `json:"image"`     // cheapies.image (nullable)
	Stock     Stock      `json:"stock"`     // cheapies.stock
	CreatedAt time.Time  `json:"createdAt"` // cheapies.created_at
}
