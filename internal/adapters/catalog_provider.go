// Package adapters wires bounded contexts together behind the ports the
// chat controller and lead form depend on.
package adapters

import (
	"context"

	catalogsvc "propertychat_backend/internal/catalog/service"
	catalogtransport "propertychat_backend/internal/catalog/transport"
	"propertychat_backend/internal/chat/ports"
	leadtransport "propertychat_backend/internal/leadintake/transport"
)

// CatalogProvider adapts the catalog service to the chat module's
// PropertyProvider port and the lead form's digest source.
type CatalogProvider struct {
	catalog *catalogsvc.Service
}

func NewCatalogProvider(catalog *catalogsvc.Service) *CatalogProvider {
	return &CatalogProvider{catalog: catalog}
}

// CurrentProperty returns the listing as the chat module's snapshot.
func (p *CatalogProvider) CurrentProperty(ctx context.Context) (*ports.PropertySnapshot, bool) {
	property, ok := p.catalog.CurrentListing(ctx)
	if !ok {
		return nil, false
	}
	return toSnapshot(property), true
}

// PropertyDigest returns the listing digest attached to form submissions.
func (p *CatalogProvider) PropertyDigest(ctx context.Context) *leadtransport.PropertyContext {
	property, ok := p.catalog.CurrentListing(ctx)
	if !ok {
		return nil
	}
	return &leadtransport.PropertyContext{
		Title:    property.Title,
		Location: property.Location.City,
		Price:    property.Details.Price,
		Area:     property.Details.Area,
	}
}

func toSnapshot(property *catalogtransport.Property) *ports.PropertySnapshot {
	return &ports.PropertySnapshot{
		Title: property.Title,
		Location: ports.PropertyLocation{
			City:    property.Location.City,
			Area:    property.Location.Area,
			Address: property.Location.Address,
		},
		Details: ports.PropertyDetails{
			Configuration: property.Details.Configuration,
			Area:          property.Details.Area,
			Price:         property.Details.Price,
			Availability:  property.Details.Availability,
		},
		Amenities:         property.Amenities,
		Images:            property.Images,
		Description:       property.Description,
		IsExclusiveToJain: property.IsExclusiveToJain,
	}
}

var _ ports.PropertyProvider = (*CatalogProvider)(nil)
