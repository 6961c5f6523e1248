// Package renderer turns a consent form submission into a PDF document
package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/clinicforms/consent-engine/internal/styles"
	"github.com/clinicforms/consent-engine/pkg/formspec"
)

// Page layout constants, in mm on an A4 portrait page
const (
	logoX     = 15
	logoY     = 11
	logoWidth = 25

	titleWidth  = 200
	titleHeight = 14

	lineHeight = 5

	titleGap    = 5
	subtitleGap = 2
	footnoteGap = 3
	sectionGap  = 6
	blockGap    = 5
)

// Config locates the external assets the renderer reads
type Config struct {
	FormsDir   string // per-form-type template JSON files
	FontConfig string // role -> font identifier mapping
	FontsDir   string // .ttf files for non-core font identifiers
	LogoPath   string // fixed clinic logo
}

// Renderer produces consent form PDFs. It holds only immutable state and is
// safe to share; every Render call draws on a fresh surface.
type Renderer struct {
	cfg    Config
	styles *styles.Registry
}

// Request is the unit of work for one PDF production
type Request struct {
	ClientName       string
	FormType         string
	ConsentFlags     []bool
	SignatureDataURI string
	SubmittedAt      time.Time
}

// New creates a renderer, loading the style configuration up front so a
// broken deployment fails before any submission is accepted.
func New(cfg Config) (*Renderer, error) {
	reg, err := styles.Load(cfg.FontConfig, cfg.FontsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &Renderer{cfg: cfg, styles: reg}, nil
}

// Render produces the finished document as a base64-encoded PDF
func (r *Renderer) Render(req Request) (string, error) {
	form, err := r.loadTemplate(req.FormType)
	if err != nil {
		return "", err
	}

	sig, err := decodeSignature(req.SignatureDataURI)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(req.SubmittedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.ImageOptions(r.cfg.LogoPath, logoX, logoY, logoWidth, 0, false,
		gofpdf.ImageOptions{}, 0, "")
	if pdf.Err() {
		return "", fmt.Errorf("%w: logo: %v", ErrConfiguration, pdf.Error())
	}

	sess := r.styles.Session(pdf)

	if err := paintTitle(pdf, sess, form.Document.Title); err != nil {
		return "", err
	}

	if err := paintSections(pdf, sess, form.Document.Sections, req.ConsentFlags); err != nil {
		return "", err
	}

	pdf.Ln(blockGap)
	if err := embedSignature(pdf, sig); err != nil {
		return "", err
	}
	pdf.Ln(blockGap)

	if err := activate(sess, styles.RoleBody); err != nil {
		return "", err
	}
	pdf.CellFormat(0, lineHeight, req.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, req.SubmittedAt.Format("02 January 2006"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// loadTemplate resolves a form type to its template. An absent file means
// the caller asked for a form we do not offer; an unreadable or malformed
// file means the deployment is broken.
func (r *Renderer) loadTemplate(formType string) (*formspec.Form, error) {
	path := filepath.Join(r.cfg.FormsDir, formType+".json")

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, formType)
	}

	form, err := formspec.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return form, nil
}

func paintTitle(pdf *gofpdf.Fpdf, sess *styles.Session, title string) error {
	if err := activate(sess, styles.RoleTitle); err != nil {
		return err
	}
	pdf.CellFormat(titleWidth, titleHeight, title, "", 1, "C", false, 0, "")
	pdf.Ln(titleGap)
	return nil
}

// activate wraps style activation failures into the font error kind
func activate(sess *styles.Session, role styles.Role) error {
	if err := sess.Activate(role); err != nil {
		return fmt.Errorf("%w: %v", ErrFont, err)
	}
	return nil
}
