// Package reports provides sales aggregation queries for dashboards.
package reports

import (
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

// Period bounds an aggregation. Zero values mean unbounded.
type Period struct {
	From time.Time
	To   time.Time
}

// ChannelTotal is the sales total for one sales channel.
type ChannelTotal struct {
	Channel string      `db:"channel" json:"channel"`
	Count   int         `db:"count" json:"count"`
	Total   types.Money `db:"total" json:"total"`
}

// MonthlyTotal is the sales total for one calendar month.
type MonthlyTotal struct {
	// Month in "2006-01" form
	Month string      `db:"month" json:"month"`
	Count int         `db:"count" json:"count"`
	Total types.Money `db:"total" json:"total"`
}

// Summary is the dashboard headline block.
type Summary struct {
	SalesCount int         `db:"sales_count" json:"salesCount"`
	Revenue    types.Money `db:"revenue" json:"revenue"`
	OpenLeads  int         `db:"open_leads" json:"openLeads"`
	WonLeads   int         `db:"won_leads" json:"wonLeads"`
}
