// Package transport defines the catalog module's wire types.
package transport

// ListingPayload is the raw shape returned by the upstream listing feed.
// Location is a single free-form string there; the formatted view splits
// it into city and address for consumers.
type ListingPayload struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Area        string   `json:"area"`
	Price       string   `json:"price"`
	Status      string   `json:"status"`
	Amenities   []string `json:"amenities"`
	IsForJain   bool     `json:"isForJain"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// ListingResponse is the upstream feed envelope.
type ListingResponse struct {
	Success bool            `json:"success"`
	Data    *ListingPayload `json:"data"`
}

// PropertyLocation is the formatted location view.
type PropertyLocation struct {
	City    string `json:"city"`
	Area    string `json:"area"`
	Address string `json:"address"`
}

// PropertyDetails holds the listing's key figures.
type PropertyDetails struct {
	Configuration string `json:"configuration"`
	Area          string `json:"area"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
}

// Property is the formatted listing served to the widget and handed to
// the conversation as context.
type Property struct {
	Title             string           `json:"title"`
	Location          PropertyLocation `json:"location"`
	Details           PropertyDetails  `json:"details"`
	Amenities         []string         `json:"amenities"`
	IsExclusiveToJain bool             `json:"isExclusiveToJain"`
	Description       string           `json:"description"`
	Images            []string         `json:"images"`
}

// FormatListing maps the raw feed payload into the formatted view.
func FormatListing(p *ListingPayload) *Property {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &Property{
		Title: p.Title,
		Location: PropertyLocation{
			City:    p.Location,
			Address: p.Location,
		},
		Details: PropertyDetails{
			Area:         p.Area,
			Price:        p.Price,
			Availability: p.Status,
		},
		Amenities:         p.Amenities,
		IsExclusiveToJain: p.IsForJain,
		Description:       p.Description,
		Images:            images,
	}
}

// PropertiesResponse is the widget-facing envelope for the listing read.
type PropertiesResponse struct {
	Success bool        `json:"success"`
	Data    []*Property `json:"data"`
}
