// Package formspec defines the types for the consent form template format
package formspec

// Section types
const (
	SectionInfo    = "info"
	SectionConsent = "consent"
)

// Form represents the root structure of a form template file
type Form struct {
	Document Document `json:"document"`
}

// Document is the declarative document description: a title followed by an
// ordered list of sections. Section order is paint order, and it fixes the
// positional binding between consent-typed sections and submitted flags.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is one titled block of the document
type Section struct {
	Type     string `json:"type"` // "info" or "consent"
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`

	// Consent sections only
	Footnote string `json:"footnote,omitempty"`
}

// IsConsent reports whether the section needs an accepted flag at render time
func (s *Section) IsConsent() bool {
	return s.Type == SectionConsent
}

// ConsentCount returns the number of consent-typed sections in document order
func (d *Document) ConsentCount() int {
	count := 0
	for _, s := range d.Sections {
		if s.IsConsent() {
			count++
		}
	}
	return count
}
