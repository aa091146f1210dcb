package goquery

import (
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*PersonExtractor)(nil)

var (
	personNameChain = []fieldCandidate{
		{"[itemprop='name']", ""},
		{".person-name", ""},
		{".profile-name", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
	}
	personDetailsChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{".bio", ""},
		{".biography", ""},
		{".profile-bio", ""},
		{".description", ""},
		{"meta[name='description']", "content"},
	}
	personOccupationChain = []fieldCandidate{
		{"[itemprop='jobTitle']", ""},
		{".occupation", ""},
		{".job-title", ""},
		{".role", ""},
	}
	personNationalityChain = []fieldCandidate{
		{"[itemprop='nationality']", ""},
		{".nationality", ""},
	}
	personImageChain = []fieldCandidate{
		{"[itemprop='image']", "src"},
		{"[itemprop='image']", "content"},
		{".profile-photo img", "src"},
		{".headshot img", "src"},
		{"meta[property='og:image']", "content"},
	}
	personBirthDateChain = []fieldCandidate{
		{"[itemprop='birthDate']", "content"},
		{"[itemprop='birthDate']", ""},
		{".birth-date", ""},
		{".birthdate", ""},
	}
	personEmailChain = []fieldCandidate{
		{"[itemprop='email']", ""},
		{"a[href^='mailto:']", "href"},
		{".email", ""},
	}
)

// PersonExtractor extracts a person profile from a page.
type PersonExtractor struct{}

// NewPersonExtractor creates a new PersonExtractor.
func NewPersonExtractor() *PersonExtractor {
	return &PersonExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *PersonExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityPerson
}

// Extract parses a Person from the target. The name is required.
func (e *PersonExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name, ok := firstCategoryText(target, gleaner.CategoryTitle, personNameChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "person: no name found")
	}

	person := &gleaner.Person{
		ID:        uuid.New().String(),
		Name:      name,
		BirthDate: firstDate(target, gleaner.CategoryDate, personBirthDateChain),
	}
	person.Details, _ = firstCategoryText(target, gleaner.CategoryContent, personDetailsChain)
	person.Occupation, _ = firstText(target, personOccupationChain)
	person.Nationality, _ = firstText(target, personNationalityChain)
	person.ImageURL, _ = firstCategoryText(target, gleaner.CategoryImage, personImageChain)
	if email, ok := firstText(target, personEmailChain); ok {
		person.Email = strings.TrimPrefix(email, "mailto:")
	}
	return person, nil
}
