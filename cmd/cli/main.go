// Command cli renders a consent form PDF locally, without the server or
// SMTP, so template changes can be previewed straight from disk.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/clinicforms/consent-engine/internal/renderer"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	var (
		assetsDir  string
		formType   string
		name       string
		consentStr string
		sigPath    string
		outPath    string
	)

	flag.StringVar(&assetsDir, "assets", "assets", "Assets directory (forms, fonts, logo)")
	flag.StringVar(&formType, "form", "adult", "Form type to render")
	flag.StringVar(&name, "name", "Test Patient", "Patient name to print")
	flag.StringVar(&consentStr, "consent", "", "Comma-separated consent flags, e.g. true,false,true")
	flag.StringVar(&sigPath, "signature", "", "Path to a PNG signature image")
	flag.StringVar(&outPath, "out", "consent.pdf", "Output PDF path")
	flag.Parse()

	if sigPath == "" {
		fail("a -signature PNG file is required")
	}

	flags, err := parseConsent(consentStr)
	if err != nil {
		fail(fmt.Sprintf("invalid -consent value: %v", err))
	}

	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		fail(fmt.Sprintf("cannot read signature: %v", err))
	}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(sigData)

	rend, err := renderer.New(renderer.Config{
		FormsDir:   filepath.Join(assetsDir, "forms"),
		FontConfig: filepath.Join(assetsDir, "fonts", "font_config.json"),
		FontsDir:   filepath.Join(assetsDir, "fonts"),
		LogoPath:   filepath.Join(assetsDir, "logo", "logo.png"),
	})
	if err != nil {
		fail(err.Error())
	}

	artifact, err := rend.Render(renderer.Request{
		ClientName:       name,
		FormType:         formType,
		ConsentFlags:     flags,
		SignatureDataURI: dataURI,
		SubmittedAt:      time.Now(),
	})
	if err != nil {
		fail(err.Error())
	}

	pdf, err := base64.StdEncoding.DecodeString(artifact)
	if err != nil {
		fail(fmt.Sprintf("renderer returned invalid base64: %v", err))
	}

	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		fail(fmt.Sprintf("cannot write output: %v", err))
	}

	fmt.Println(successStyle.Render("✓ Rendered " + outPath))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("  form=%s consent=%v size=%d bytes", formType, flags, len(pdf))))
}

func parseConsent(s string) ([]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	flags := make([]bool, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseBool(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		flags[i] = v
	}
	return flags, nil
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+msg))
	os.Exit(1)
}
