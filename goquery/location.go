package goquery

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*LocationExtractor)(nil)

var (
	locationNameChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".location-name", ""},
		{".place-name", ""},
		{"h1", ""},
	}
	locationAddressChain = []fieldCandidate{
		{"[itemprop='streetAddress']", ""},
		{"[itemprop='address']", ""},
		{".street-address", ""},
		{".address", ""},
	}
	locationCityChain = []fieldCandidate{
		{"[itemprop='addressLocality']", ""},
		{".city", ""},
		{".locality", ""},
	}
	locationStateChain = []fieldCandidate{
		{"[itemprop='addressRegion']", ""},
		{".state", ""},
		{".region", ""},
	}
	locationZipChain = []fieldCandidate{
		{"[itemprop='postalCode']", ""},
		{".zip", ""},
		{".zipcode", ""},
		{".postal-code", ""},
	}
	locationCountryChain = []fieldCandidate{
		{"[itemprop='addressCountry']", ""},
		{".country", ""},
	}
	locationLatitudeChain = []fieldCandidate{
		{"[itemprop='latitude']", "content"},
		{"[itemprop='latitude']", ""},
		{"meta[property='place:location:latitude']", "content"},
	}
	locationLongitudeChain = []fieldCandidate{
		{"[itemprop='longitude']", "content"},
		{"[itemprop='longitude']", ""},
		{"meta[property='place:location:longitude']", "content"},
	}
)

// LocationExtractor extracts a geographic place from a page.
type LocationExtractor struct{}

// NewLocationExtractor creates a new LocationExtractor.
func NewLocationExtractor() *LocationExtractor {
	return &LocationExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *LocationExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityLocation
}

// Extract parses a Location from the target. The name is required.
// Coordinates stay absent unless a parseable decimal is present.
func (e *LocationExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name, ok := firstCategoryText(target, gleaner.CategoryTitle, locationNameChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "location: no name found")
	}

	loc := &gleaner.Location{
		ID:   uuid.New().String(),
		Name: name,
	}
	loc.Address, _ = firstText(target, locationAddressChain)
	loc.City, _ = firstText(target, locationCityChain)
	loc.State, _ = firstText(target, locationStateChain)
	loc.ZipCode, _ = firstText(target, locationZipChain)
	loc.Country, _ = firstText(target, locationCountryChain)
	if raw, ok := firstText(target, locationLatitudeChain); ok {
		loc.Latitude = parseDecimal(raw)
	}
	if raw, ok := firstText(target, locationLongitudeChain); ok {
		loc.Longitude = parseDecimal(raw)
	}
	return loc, nil
}
