package gleaner

import "time"

// EntityType identifies a kind of news entity the system can extract.
type EntityType string

// Supported entity types.
const (
	EntityArticle         EntityType = "article"
	EntityVideo           EntityType = "video"
	EntityAudio           EntityType = "audio"
	EntityPerson          EntityType = "person"
	EntityOrganization    EntityType = "organization"
	EntityLocation        EntityType = "location"
	EntityPoll            EntityType = "poll"
	EntityFact            EntityType = "fact"
	EntityNewsAlert       EntityType = "newsAlert"
	EntityLegalDocument   EntityType = "legalDocument"
	EntityJurisdiction    EntityType = "jurisdiction"
	EntityNewsEvent       EntityType = "newsEvent"
	EntityNewsStory       EntityType = "newsStory"
	EntitySocialMediaPost EntityType = "socialMediaPost"
	EntitySource          EntityType = "source"
)

// EntityTypes returns all supported entity types in stable order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityArticle, EntityVideo, EntityAudio, EntityPerson,
		EntityOrganization, EntityLocation, EntityPoll, EntityFact,
		EntityNewsAlert, EntityLegalDocument, EntityJurisdiction,
		EntityNewsEvent, EntityNewsStory, EntitySocialMediaPost,
		EntitySource,
	}
}

// Valid reports whether t is a recognized entity type.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Entity is implemented by every extractable news entity. Entities are
// plain records: the extraction layer constructs them and hands them to
// the caller, which owns their lifecycle from then on.
type Entity interface {
	// EntityType returns the type tag of the entity.
	EntityType() EntityType

	// EntityID returns the entity's unique identifier.
	EntityID() string
}

// AlertSeverity grades a NewsAlert.
type AlertSeverity string

// Alert severity levels.
const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Article is a news article extracted from a page.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	TextContent string     `json:"textContent"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ImageURL    string     `json:"imageURL,omitempty"`
	Section     string     `json:"section,omitempty"`
}

func (a *Article) EntityType() EntityType { return EntityArticle }
func (a *Article) EntityID() string       { return a.ID }

// Video is a video item extracted from a page.
type Video struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ImageURL    string     `json:"imageURL,omitempty"`
	// Duration is the runtime in seconds.
	Duration   int    `json:"duration,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

func (v *Video) EntityType() EntityType { return EntityVideo }
func (v *Video) EntityID() string       { return v.ID }

// Audio is an audio item (podcast episode, radio segment) extracted from a page.
type Audio struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	// Duration is the runtime in seconds.
	Duration int `json:"duration,omitempty"`
	// Bitrate is the encoding bitrate in kbps.
	Bitrate int `json:"bitrate,omitempty"`
}

func (a *Audio) EntityType() EntityType { return EntityAudio }
func (a *Audio) EntityID() string       { return a.ID }

// Person is a person profile extracted from a page.
type Person struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Details     string     `json:"details,omitempty"`
	Occupation  string     `json:"occupation,omitempty"`
	Nationality string     `json:"nationality,omitempty"`
	ImageURL    string     `json:"imageURL,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Email       string     `json:"email,omitempty"`
}

func (p *Person) EntityType() EntityType { return EntityPerson }
func (p *Person) EntityID() string       { return p.ID }

// Organization is an organization profile extracted from a page.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	LogoURL     string `json:"logoURL,omitempty"`
	Location    string `json:"location,omitempty"`
}

func (o *Organization) EntityType() EntityType { return EntityOrganization }
func (o *Organization) EntityID() string       { return o.ID }

// Location is a geographic place extracted from a page.
type Location struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	ZipCode   string   `json:"zipCode,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (l *Location) EntityType() EntityType { return EntityLocation }
func (l *Location) EntityID() string       { return l.ID }

// PollOption is a single answer option in a Poll with its vote count.
type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll is an opinion poll extracted from a page.
type Poll struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Options       []PollOption `json:"options,omitempty"`
	Source        string       `json:"source,omitempty"`
	DateConducted *time.Time   `json:"dateConducted,omitempty"`
	SampleSize    int          `json:"sampleSize,omitempty"`
	MarginOfError *float64     `json:"marginOfError,omitempty"`
}

func (p *Poll) EntityType() EntityType { return EntityPoll }
func (p *Poll) EntityID() string       { return p.ID }

// Fact is a single checkable statement extracted from a page.
type Fact struct {
	ID        string     `json:"id"`
	Statement string     `json:"statement"`
	Source    string     `json:"source,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Topics    []string   `json:"topics,omitempty"`
	// VerificationStatus is "unverified" at extraction time; downstream
	// fact-checking flips it.
	VerificationStatus string `json:"verificationStatus"`
}

func (f *Fact) EntityType() EntityType { return EntityFact }
func (f *Fact) EntityID() string       { return f.ID }

// NewsAlert is a time-sensitive alert (weather warning, amber alert,
// breaking news banner) extracted from a page.
type NewsAlert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	AlertType   string        `json:"alertType,omitempty"`
	Severity    AlertSeverity `json:"severity"`
	DateIssued  *time.Time    `json:"dateIssued,omitempty"`
	Source      string        `json:"source,omitempty"`
}

func (a *NewsAlert) EntityType() EntityType { return EntityNewsAlert }
func (a *NewsAlert) EntityID() string       { return a.ID }

// LegalDocument is a court filing, ordinance, or similar document
// referenced by a page.
type LegalDocument struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DocumentType string     `json:"documentType,omitempty"`
	DateIssued   *time.Time `json:"dateIssued,omitempty"`
	DocumentURL  string     `json:"documentURL,omitempty"`
	CaseNumber   string     `json:"caseNumber,omitempty"`
	Court        string     `json:"court,omitempty"`
}

func (d *LegalDocument) EntityType() EntityType { return EntityLegalDocument }
func (d *LegalDocument) EntityID() string       { return d.ID }

// Jurisdiction is a governmental area (city, county, state) extracted
// from a page.
type Jurisdiction struct {
	ID string `json:"id"`
	// Kind is "city", "county", or "state" when it can be determined.
	Kind    string `json:"kind,omitempty"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

func (j *Jurisdiction) EntityType() EntityType { return EntityJurisdiction }
func (j *Jurisdiction) EntityID() string       { return j.ID }

// NewsEvent is a discrete newsworthy happening extracted from a page.
type NewsEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    string     `json:"location,omitempty"`
	Quotes      []string   `json:"quotes,omitempty"`
}

func (e *NewsEvent) EntityType() EntityType { return EntityNewsEvent }
func (e *NewsEvent) EntityID() string       { return e.ID }

// NewsStory is a developing story summary extracted from a page.
type NewsStory struct {
	ID          string     `json:"id"`
	Headline    string     `json:"headline"`
	Byline      string     `json:"byline,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	URL         string     `json:"url,omitempty"`
}

func (s *NewsStory) EntityType() EntityType { return EntityNewsStory }
func (s *NewsStory) EntityID() string       { return s.ID }

// SocialMediaPost is an embedded or quoted social media post extracted
// from a page.
type SocialMediaPost struct {
	ID         string     `json:"id"`
	Author     string     `json:"author,omitempty"`
	Platform   string     `json:"platform,omitempty"`
	Content    string     `json:"content"`
	DatePosted *time.Time `json:"datePosted,omitempty"`
	URL        string     `json:"url,omitempty"`
	Likes      int        `json:"likes,omitempty"`
	Shares     int        `json:"shares,omitempty"`
}

func (p *SocialMediaPost) EntityType() EntityType { return EntitySocialMediaPost }
func (p *SocialMediaPost) EntityID() string       { return p.ID }

// Source is a news outlet profile extracted from a page.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Language    string `json:"language,omitempty"`
}

func (s *Source) EntityType() EntityType { return EntitySource }
func (s *Source) EntityID() string       { return s.ID }
