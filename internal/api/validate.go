package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"net/mail"
	"strings"
)

// Signature canvas exports must stay within this box
const (
	maxSignatureWidth  = 1200
	maxSignatureHeight = 200
)

const signaturePrefix = "data:image/png;base64,"

// consentKeys fixes, per form type, both the required consent object keys
// and the order in which their values bind to the template's consent
// sections. Contact consent is not collected for minors.
var consentKeys = map[string][]string{
	"adult": {"researchConsent", "contactConsent", "studentConsent"},
	"child": {"researchConsent", "studentConsent"},
}

// validateSubmission checks the request against the submission contract and
// returns the consent flags in template binding order.
func validateSubmission(req *submitRequest) ([]bool, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	if err := validateSignature(req.DrawSignature); err != nil {
		return nil, err
	}

	return consentFlags(req.FormType, req.Consent)
}

func validateEmail(address string) error {
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return fmt.Errorf("email address is invalid")
	}
	return nil
}

// validateSignature checks the envelope and image dimensions without
// keeping the decoded pixels; the renderer decodes again for drawing.
func validateSignature(dataURI string) error {
	if !strings.HasPrefix(dataURI, signaturePrefix) {
		return fmt.Errorf("signature must be a base64-encoded PNG data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, signaturePrefix))
	if err != nil {
		return fmt.Errorf("signature payload is not valid base64")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || format != "png" {
		return fmt.Errorf("signature payload is not a valid PNG")
	}

	if cfg.Width > maxSignatureWidth || cfg.Height > maxSignatureHeight {
		return fmt.Errorf("signature exceeds %dx%d pixels", maxSignatureWidth, maxSignatureHeight)
	}

	return nil
}

func consentFlags(formType string, consent map[string]bool) ([]bool, error) {
	keys, ok := consentKeys[formType]
	if !ok {
		return nil, fmt.Errorf("unknown form type: %s", formType)
	}

	if len(consent) != len(keys) {
		return nil, fmt.Errorf("consent must have exactly the keys %s", strings.Join(keys, ", "))
	}

	flags := make([]bool, len(keys))
	for i, key := range keys {
		value, present := consent[key]
		if !present {
			return nil, fmt.Errorf("consent is missing key %s", key)
		}
		flags[i] = value
	}

	return flags, nil
}
