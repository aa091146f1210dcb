package adaptive

import (
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

// Constructor builds an entity of one type from fallback-recovered title
// and content. Construction enforces the type's required fields: a
// missing required field is ENOTFOUND, same as on the structural path.
type Constructor func(title, content, sourceURL string) (gleaner.Entity, error)

// ConstructorRegistry maps entity types to fallback constructors. Types
// without a constructor cannot be recovered from two loose strings:
// a poll without options or a location without coordinates would be a
// fabrication, so those types stay structural-only.
type ConstructorRegistry struct {
	constructors map[gleaner.EntityType]Constructor
}

// NewConstructorRegistry creates an empty ConstructorRegistry.
func NewConstructorRegistry() *ConstructorRegistry {
	return &ConstructorRegistry{constructors: make(map[gleaner.EntityType]Constructor)}
}

// Register adds a constructor, replacing any previous one for the type.
func (r *ConstructorRegistry) Register(typ gleaner.EntityType, fn Constructor) {
	r.constructors[typ] = fn
}

// Get returns the constructor for typ, or nil when the type has none.
func (r *ConstructorRegistry) Get(typ gleaner.EntityType) Constructor {
	return r.constructors[typ]
}

// Supports reports whether typ can be built from fallback output.
func (r *ConstructorRegistry) Supports(typ gleaner.EntityType) bool {
	return r.constructors[typ] != nil
}

var defaultConstructors = DefaultConstructorRegistry()

// DefaultConstructorRegistry creates a ConstructorRegistry with every
// built-in constructor registered.
func DefaultConstructorRegistry() *ConstructorRegistry {
	r := NewConstructorRegistry()
	r.Register(gleaner.EntityArticle, constructArticle)
	r.Register(gleaner.EntityNewsStory, constructNewsStory)
	r.Register(gleaner.EntityNewsAlert, constructNewsAlert)
	r.Register(gleaner.EntityNewsEvent, constructNewsEvent)
	r.Register(gleaner.EntityFact, constructFact)
	r.Register(gleaner.EntitySocialMediaPost, constructSocialMediaPost)
	r.Register(gleaner.EntityPerson, constructPerson)
	r.Register(gleaner.EntityOrganization, constructOrganization)
	r.Register(gleaner.EntitySource, constructSource)
	return r
}

func constructArticle(title, content, sourceURL string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no article title")
	}
	if content == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no article body")
	}
	return &gleaner.Article{
		ID:          uuid.New().String(),
		Title:       title,
		URL:         sourceURL,
		TextContent: content,
	}, nil
}

func constructNewsStory(title, content, sourceURL string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no story headline")
	}
	return &gleaner.NewsStory{
		ID:       uuid.New().String(),
		Headline: title,
		Summary:  content,
		URL:      sourceURL,
	}, nil
}

func constructNewsAlert(title, content, _ string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no alert title")
	}
	if content == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no alert description")
	}
	return &gleaner.NewsAlert{
		ID:          uuid.New().String(),
		Title:       title,
		Description: content,
		Severity:    gleaner.SeverityMedium,
	}, nil
}

func constructNewsEvent(title, content, _ string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no event title")
	}
	return &gleaner.NewsEvent{
		ID:          uuid.New().String(),
		Title:       title,
		Description: content,
	}, nil
}

func constructFact(title, content, _ string) (gleaner.Entity, error) {
	statement := content
	if statement == "" {
		statement = title
	}
	if statement == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no fact statement")
	}
	return &gleaner.Fact{
		ID:                 uuid.New().String(),
		Statement:          statement,
		VerificationStatus: "unverified",
	}, nil
}

func constructSocialMediaPost(_, content, _ string) (gleaner.Entity, error) {
	if content == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no post content")
	}
	return &gleaner.SocialMediaPost{
		ID:      uuid.New().String(),
		Content: content,
	}, nil
}

func constructPerson(title, content, _ string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no person name")
	}
	return &gleaner.Person{
		ID:      uuid.New().String(),
		Name:    title,
		Details: content,
	}, nil
}

func constructOrganization(title, content, _ string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no organization name")
	}
	return &gleaner.Organization{
		ID:          uuid.New().String(),
		Name:        title,
		Description: content,
	}, nil
}

func constructSource(title, content, sourceURL string) (gleaner.Entity, error) {
	if title == "" {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "fallback recovered no outlet name")
	}
	return &gleaner.Source{
		ID:          uuid.New().String(),
		Name:        title,
		Description: content,
		URL:         sourceURL,
	}, nil
}
