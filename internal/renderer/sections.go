package renderer

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/clinicforms/consent-engine/internal/styles"
	"github.com/clinicforms/consent-engine/pkg/formspec"
)

// Checkbox label widths, sized to the bold labels they carry
const (
	consentLabelWidth    = 24
	notConsentLabelWidth = 38
)

// boundSection is a template section with its render-time consent state
// resolved. Info sections carry no state.
type boundSection struct {
	formspec.Section
	accepted bool
}

// bindConsent attaches the caller's consent flags to consent-typed sections
// positionally: the i-th consent section (document order, counting consent
// sections only) takes flags[i]. A missing flag defaults to not-accepted so
// an under-specified submission renders as explicit non-consent instead of
// failing; extra flags are ignored.
func bindConsent(sections []formspec.Section, flags []bool) []boundSection {
	bound := make([]boundSection, 0, len(sections))
	i := 0

	for _, s := range sections {
		bs := boundSection{Section: s}
		if s.IsConsent() {
			if i < len(flags) {
				bs.accepted = flags[i]
			}
			i++
		}
		bound = append(bound, bs)
	}

	return bound
}

// consentLine is one checkbox row of the acknowledgment block
type consentLine struct {
	label  string
	width  float64
	marked bool
}

// consentLines builds the two checkbox rows. Both rows are always drawn for
// the audit trail; exactly one carries the [X] marker.
func consentLines(accepted bool) [2]consentLine {
	mark := func(marked bool) string {
		if marked {
			return "[X]"
		}
		return "[   ]"
	}

	return [2]consentLine{
		{label: fmt.Sprintf("%s I CONSENT", mark(accepted)), width: consentLabelWidth, marked: accepted},
		{label: fmt.Sprintf("%s I DO NOT CONSENT", mark(!accepted)), width: notConsentLabelWidth, marked: !accepted},
	}
}

func paintSections(pdf *gofpdf.Fpdf, sess *styles.Session, sections []formspec.Section, flags []bool) error {
	for _, bs := range bindConsent(sections, flags) {
		var err error
		switch bs.Type {
		case formspec.SectionConsent:
			err = paintConsentSection(pdf, sess, &bs)
		default:
			err = paintInfoSection(pdf, sess, &bs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func paintSubtitle(pdf *gofpdf.Fpdf, sess *styles.Session, subtitle string) error {
	if err := activate(sess, styles.RoleSubtitle); err != nil {
		return err
	}
	pdf.CellFormat(0, lineHeight, subtitle, "", 1, "L", false, 0, "")
	pdf.Ln(subtitleGap)
	return nil
}

func paintInfoSection(pdf *gofpdf.Fpdf, sess *styles.Session, bs *boundSection) error {
	if err := paintSubtitle(pdf, sess, bs.Subtitle); err != nil {
		return err
	}

	if err := activate(sess, styles.RoleBody); err != nil {
		return err
	}
	pdf.MultiCell(0, lineHeight, bs.Body, "", "L", false)

	pdf.Ln(sectionGap)
	return nil
}

func paintConsentSection(pdf *gofpdf.Fpdf, sess *styles.Session, bs *boundSection) error {
	if err := paintSubtitle(pdf, sess, bs.Subtitle); err != nil {
		return err
	}

	// Two checkbox rows, each a bold label followed by the consent body text
	for _, line := range consentLines(bs.accepted) {
		if err := activate(sess, styles.RoleBodyBold); err != nil {
			return err
		}
		pdf.CellFormat(line.width, lineHeight, line.label, "", 0, "L", false, 0, "")

		if err := activate(sess, styles.RoleBody); err != nil {
			return err
		}
		pdf.CellFormat(0, lineHeight, bs.Body, "", 1, "L", false, 0, "")
	}

	pdf.Ln(footnoteGap)

	if bs.Footnote != "" {
		if err := activate(sess, styles.RoleBody); err != nil {
			return err
		}
		pdf.MultiCell(0, lineHeight, bs.Footnote, "", "L", false)
	}

	pdf.Ln(sectionGap)
	return nil
}
