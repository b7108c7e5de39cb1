package domain

// SlideKind is the closed set of slide types a funnel can contain.
type SlideKind string

const (
	KindTextChoice  SlideKind = "text-choice"
	KindImageChoice SlideKind = "image-choice"
	KindMultiSelect SlideKind = "multi-select"
	KindInfo        SlideKind = "info"
	KindLoading     SlideKind = "loading"
	KindResults     SlideKind = "results"
	KindOffer       SlideKind = "offer"
)

// HasOptions reports whether the kind carries a selectable option list.
func (k SlideKind) HasOptions() bool {
	switch k {
	case KindTextChoice, KindImageChoice, KindMultiSelect:
		return true
	}
	return false
}

// Status is the publication state of a document. Any status may change
// to any other directly; nothing restricts the transitions.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ContentBlock is the smallest content unit inside an info slide.
// Order in the containing list is the display order.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockImage     BlockKind = "image"
	BlockQuote     BlockKind = "quote"
)

type ContentBlock struct {
	ID      string    `json:"id"`
	Kind    BlockKind `json:"kind"`
	Content string    `json:"content"`
	Author  string    `json:"author,omitempty"` // meaningful only for quote blocks
}

// SlideOption is a selectable answer inside a choice-type slide.
type SlideOption struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	// NextSlide is a branching target: a slide id, or the sentinels
	// "next" / "end". Empty means linear flow.
	NextSlide string `json:"nextSlide,omitempty"`
	Category  string `json:"category,omitempty"`
}

// ResultCategory is a named outcome bucket shown on a results slide. Its
// Name is matched against SlideOption.Category when tallying answers.
type ResultCategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// LoadingItem is one line of a loading slide's staged progress text.
type LoadingItem struct {
	Text       string `json:"text"`
	DurationMs int    `json:"durationMs"`
}

// SlideContent holds the kind-dependent fields of a slide. Which fields
// are populated is determined by the owning slide's kind; the editor's
// default-content constructors keep the shape consistent per kind.
type SlideContent struct {
	Headline         string           `json:"headline"`
	Subheadline      string           `json:"subheadline,omitempty"`
	Body             string           `json:"body,omitempty"`
	Options          []SlideOption    `json:"options,omitempty"`
	Blocks           []ContentBlock   `json:"blocks,omitempty"`
	Items            []LoadingItem    `json:"items,omitempty"`
	ResultCategories []ResultCategory `json:"resultCategories,omitempty"`
	Bullets          []string         `json:"bullets,omitempty"`
	OfferText        string           `json:"offerText,omitempty"`
	ButtonText       string           `json:"buttonText,omitempty"`
	CtaText          string           `json:"ctaText,omitempty"`
	CtaURL           string           `json:"ctaUrl,omitempty"`
	GuaranteeText    string           `json:"guaranteeText,omitempty"`
}

// ConditionalLogic restricts a slide to takers who chose a specific
// option on an earlier slide. Absent means always shown.
type ConditionalLogic struct {
	SlideID  string `json:"slideId"`
	OptionID string `json:"optionId"`
}

// Slide is one screen of a quiz funnel. The id is assigned once and
// preserved across moves; duplication assigns a fresh slide id.
// The wire name for ConditionalLogic is conditional_logic.
type Slide struct {
	ID               string            `json:"id"`
	Kind             SlideKind         `json:"type"`
	Content          SlideContent      `json:"content"`
	ConditionalLogic *ConditionalLogic `json:"conditional_logic,omitempty"`
}

// QuizSettings are the document-wide presentation settings.
type QuizSettings struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	ShowProgressBar bool   `json:"showProgressBar"`
	AllowBack       bool   `json:"allowBack"`
}

// QuizDocument is the ordered sequence of slides plus global settings
// and publication status. Slides is never empty for a well-formed
// document; the editor refuses deleting the last slide.
type QuizDocument struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      Status       `json:"status"`
	Settings    QuizSettings `json:"settings"`
	Slides      []Slide      `json:"slides"`
}

// DefaultSettings returns the settings a freshly created document starts with.
func DefaultSettings() QuizSettings {
	return QuizSettings{
		PrimaryColor:    "#2563eb",
		BackgroundColor: "#ffffff",
		ShowProgressBar: true,
		AllowBack:       true,
	}
}
