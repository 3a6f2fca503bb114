// Package ports declares the interfaces the chat controller needs from
// other bounded contexts. Adapters in internal/adapters satisfy them,
// keeping this module free of cross-context dependencies.
package ports

import "context"

// PropertyLocation describes where the listing is.
type PropertyLocation struct {
	City    string `json:"city"`
	Area    string `json:"area"`
	Address string `json:"address"`
}

// PropertyDetails describes the listing's key figures.
type PropertyDetails struct {
	Configuration string `json:"configuration"`
	Area          string `json:"area"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
}

// PropertySnapshot is the chat module's read-only view of the single
// listing being discussed. Fetched once per session; never mutated.
type PropertySnapshot struct {
	Title             string           `json:"title"`
	Location          PropertyLocation `json:"location"`
	Details           PropertyDetails  `json:"details"`
	Amenities         []string         `json:"amenities"`
	SpecialFeatures   []string         `json:"specialFeatures,omitempty"`
	Images            []string         `json:"images"`
	Description       string           `json:"description,omitempty"`
	IsExclusiveToJain bool             `json:"isExclusiveToJain"`
}

// PropertyProvider supplies the current listing snapshot. The second return
// is false when no listing is available; the controller tolerates that.
type PropertyProvider interface {
	CurrentProperty(ctx context.Context) (*PropertySnapshot, bool)
}
