package formspec

import "fmt"

// Validate validates a Form structure
func Validate(f *Form) error {
	if f.Document.Title == "" {
		return fmt.Errorf("document title is required")
	}

	if len(f.Document.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}

	for i, s := range f.Document.Sections {
		if err := validateSection(&s); err != nil {
			return fmt.Errorf("section[%d]: %w", i, err)
		}
	}

	return nil
}

func validateSection(s *Section) error {
	switch s.Type {
	case SectionInfo:
		if s.Footnote != "" {
			return fmt.Errorf("footnote is only valid on consent sections")
		}
	case SectionConsent:
		// Footnote is optional
	case "":
		return fmt.Errorf("section type is required")
	default:
		return fmt.Errorf("unknown section type: %s (must be info or consent)", s.Type)
	}

	if s.Subtitle == "" {
		return fmt.Errorf("subtitle is required")
	}
	if s.Body == "" {
		return fmt.Errorf("body is required")
	}

	return nil
}
