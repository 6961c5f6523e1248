// Package styles resolves logical text roles to concrete fonts
package styles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Role is a logical text role used by the document renderer
type Role string

const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleBody     Role = "body"
	RoleBodyBold Role = "body_bold"
)

// Point sizes are fixed per role; body and body-bold share a size and
// differ only in the font they resolve to.
const (
	titleSize    = 16
	subtitleSize = 14
	bodySize     = 10
)

var roleSizes = map[Role]float64{
	RoleTitle:    titleSize,
	RoleSubtitle: subtitleSize,
	RoleBody:     bodySize,
	RoleBodyBold: bodySize,
}

// Registry maps the four text roles to font identifiers. It is immutable
// after Load and safe to share across concurrent renders; the mutable
// registration state lives on per-surface Sessions.
type Registry struct {
	fontsDir string
	fonts    map[Role]string
}

// Load reads the role-to-font mapping from a JSON config file.
// Font identifiers either name a .ttf file in fontsDir (without extension)
// or one of the built-in core families (helvetica, times, courier, with an
// optional -bold/-italic/-bolditalic suffix).
func Load(configPath, fontsDir string) (*Registry, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font config: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse font config: %w", err)
	}

	fonts := make(map[Role]string, 4)
	for _, role := range []Role{RoleTitle, RoleSubtitle, RoleBody, RoleBodyBold} {
		name, ok := raw[string(role)]
		if !ok || name == "" {
			return nil, fmt.Errorf("font config missing role %q", role)
		}
		fonts[role] = name
	}

	return &Registry{fontsDir: fontsDir, fonts: fonts}, nil
}

// Font returns the identifier configured for a role
func (r *Registry) Font(role Role) string {
	return r.fonts[role]
}

// Session binds the registry to one drawing surface. Fonts are registered
// with a surface lazily, at most once per identifier per session.
type Session struct {
	reg   *Registry
	pdf   *gofpdf.Fpdf
	added map[string]bool
}

// Session creates a registration session for a fresh drawing surface
func (r *Registry) Session(pdf *gofpdf.Fpdf) *Session {
	return &Session{reg: r, pdf: pdf, added: make(map[string]bool)}
}

// Activate ensures the role's font is registered with the surface, then
// sets it as the surface's current font at the role's fixed size.
func (s *Session) Activate(role Role) error {
	name, ok := s.reg.fonts[role]
	if !ok {
		return fmt.Errorf("unknown style role: %s", role)
	}
	size := roleSizes[role]

	if family, style, core := coreFont(name); core {
		s.pdf.SetFont(family, style, size)
		return s.surfaceErr(name)
	}

	if !s.added[name] {
		path := filepath.Join(s.reg.fontsDir, name+".ttf")
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("font file for %q not found: %w", name, err)
		}
		s.pdf.AddUTF8Font(name, "", path)
		if err := s.surfaceErr(name); err != nil {
			return err
		}
		s.added[name] = true
	}

	s.pdf.SetFont(name, "", size)
	return s.surfaceErr(name)
}

// surfaceErr lifts gofpdf's sticky error state into a returned error
func (s *Session) surfaceErr(name string) error {
	if s.pdf.Err() {
		return fmt.Errorf("font %q rejected by surface: %w", name, s.pdf.Error())
	}
	return nil
}

// coreFont maps identifiers like "helvetica-bold" onto gofpdf's built-in
// core families, which need no font file.
func coreFont(name string) (family, style string, ok bool) {
	lower := strings.ToLower(name)

	for suffix, s := range map[string]string{
		"-bolditalic": "BI",
		"-bold":       "B",
		"-italic":     "I",
	} {
		if strings.HasSuffix(lower, suffix) {
			lower = strings.TrimSuffix(lower, suffix)
			style = s
			break
		}
	}

	switch lower {
	case "helvetica", "arial":
		return "Helvetica", style, true
	case "times":
		return "Times", style, true
	case "courier":
		return "Courier", style, true
	}
	return "", "", false
}
