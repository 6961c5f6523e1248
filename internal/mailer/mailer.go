// Package mailer delivers rendered consent forms by email
package mailer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/clinicforms/consent-engine/internal/config"
)

const (
	clinicSubject  = "Patient Consent Form Submission"
	patientSubject = "Confirmation of Consent Form Submission"

	maxAttempts = 3
	retryDelay  = time.Second
)

// Submission carries the per-patient details needed for delivery
type Submission struct {
	PatientName  string
	PatientEmail string
	SubmittedAt  time.Time
}

// sender abstracts gomail's dialer for testing
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends the clinic copy and the patient confirmation for a submission
type Mailer struct {
	cfg   config.SMTP
	send  sender
	delay time.Duration
}

// New creates a mailer over an authenticated STARTTLS dialer
func New(cfg config.SMTP) *Mailer {
	return &Mailer{
		cfg:   cfg,
		send:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		delay: retryDelay,
	}
}

// DeliverSubmission sends both emails concurrently and waits for both.
// A failure in one never suppresses the other; both outcomes are joined
// into the returned error.
func (m *Mailer) DeliverSubmission(sub Submission, pdfBase64 string) error {
	pdfBytes, err := base64.StdEncoding.DecodeString(pdfBase64)
	if err != nil {
		return fmt.Errorf("invalid pdf payload: %w", err)
	}

	clinicMsg := m.clinicMessage(sub, pdfBytes)
	patientMsg := m.patientMessage(sub)

	var wg sync.WaitGroup
	var clinicErr, patientErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		clinicErr = m.sendWithRetry(clinicMsg)
	}()
	go func() {
		defer wg.Done()
		patientErr = m.sendWithRetry(patientMsg)
	}()
	wg.Wait()

	if clinicErr != nil {
		clinicErr = fmt.Errorf("clinic email: %w", clinicErr)
	}
	if patientErr != nil {
		patientErr = fmt.Errorf("patient email: %w", patientErr)
	}

	return errors.Join(clinicErr, patientErr)
}

func (m *Mailer) sendWithRetry(msg *gomail.Message) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = m.send.DialAndSend(msg); err == nil {
			return nil
		}
		if attempt < maxAttempts {
			time.Sleep(m.delay)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, err)
}

func (m *Mailer) clinicMessage(sub Submission, pdf []byte) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", m.cfg.ClinicEmail)
	msg.SetHeader("Subject", clinicSubject)
	msg.SetBody("text/html", clinicBody(sub))

	msg.Attach(AttachmentName(sub.PatientName),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {"application/pdf"},
		}),
	)

	return msg
}

func (m *Mailer) patientMessage(sub Submission) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", sub.PatientEmail)
	msg.SetHeader("Subject", patientSubject)
	msg.SetBody("text/html", patientBody(sub))
	return msg
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z' -]`)

// AttachmentName builds the PDF filename from the patient name plus a short
// reference token, so two submissions by the same name stay distinct.
func AttachmentName(patientName string) string {
	clean := unsafeNameChars.ReplaceAllString(patientName, "")
	clean = strings.ReplaceAll(clean, " ", "_")
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%s - %s.pdf", clean, token)
}
