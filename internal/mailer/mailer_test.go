package mailer

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/clinicforms/consent-engine/internal/config"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []*gomail.Message
	failFor  string // fail sends addressed to this recipient
	attempts int
}

func (f *fakeSender) DialAndSend(msgs ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++

	for _, m := range msgs {
		to := m.GetHeader("To")
		if f.failFor != "" && len(to) > 0 && to[0] == f.failFor {
			return errors.New("connection refused")
		}
		f.sent = append(f.sent, m)
	}
	return nil
}

func testMailer(send sender) *Mailer {
	return &Mailer{
		cfg: config.SMTP{
			Host:        "smtp.example.com",
			Port:        587,
			User:        "forms@example.com",
			Password:    "secret",
			ClinicEmail: "clinic@example.com",
		},
		send:  send,
		delay: 0,
	}
}

func testSubmission() Submission {
	return Submission{
		PatientName:  "Ada Example",
		PatientEmail: "ada@example.com",
		SubmittedAt:  time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC),
	}
}

func testArtifact() string {
	return base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))
}

func TestDeliverSubmission_SendsBoth(t *testing.T) {
	fake := &fakeSender{}
	m := testMailer(fake)

	if err := m.DeliverSubmission(testSubmission(), testArtifact()); err != nil {
		t.Fatalf("Delivery failed: %v", err)
	}

	if len(fake.sent) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(fake.sent))
	}

	recipients := map[string]bool{}
	for _, msg := range fake.sent {
		for _, to := range msg.GetHeader("To") {
			recipients[to] = true
		}
	}
	if !recipients["clinic@example.com"] || !recipients["ada@example.com"] {
		t.Errorf("Unexpected recipients: %v", recipients)
	}
}

func TestDeliverSubmission_OneFailureDoesNotSuppressOther(t *testing.T) {
	fake := &fakeSender{failFor: "clinic@example.com"}
	m := testMailer(fake)

	err := m.DeliverSubmission(testSubmission(), testArtifact())
	if err == nil {
		t.Fatal("Expected an error when the clinic email fails")
	}
	if !strings.Contains(err.Error(), "clinic email") {
		t.Errorf("Expected the failing leg to be named, got: %v", err)
	}

	// The patient confirmation still went out
	if len(fake.sent) != 1 {
		t.Fatalf("Expected 1 delivered message, got %d", len(fake.sent))
	}
	if to := fake.sent[0].GetHeader("To"); len(to) == 0 || to[0] != "ada@example.com" {
		t.Errorf("Expected patient email delivered, got %v", to)
	}
}

func TestDeliverSubmission_RetriesBeforeFailing(t *testing.T) {
	fake := &fakeSender{failFor: "clinic@example.com"}
	m := testMailer(fake)

	_ = m.DeliverSubmission(testSubmission(), testArtifact())

	// 3 attempts for the failing clinic send, 1 for the patient send
	if fake.attempts != maxAttempts+1 {
		t.Errorf("Expected %d dial attempts, got %d", maxAttempts+1, fake.attempts)
	}
}

func TestDeliverSubmission_BadArtifact(t *testing.T) {
	fake := &fakeSender{}
	m := testMailer(fake)

	if err := m.DeliverSubmission(testSubmission(), "not base64!!!"); err == nil {
		t.Error("Expected error for undecodable artifact")
	}
	if len(fake.sent) != 0 {
		t.Errorf("Expected no messages sent, got %d", len(fake.sent))
	}
}

func TestAttachmentName(t *testing.T) {
	name := AttachmentName("Ada O'Example-Smith 2nd!")

	pattern := regexp.MustCompile(`^Ada_O'Example-Smith_nd - [0-9a-f]{8}\.pdf$`)
	if !pattern.MatchString(name) {
		t.Errorf("Unexpected attachment name: %q", name)
	}
}

func TestAttachmentName_Unique(t *testing.T) {
	if AttachmentName("Ada") == AttachmentName("Ada") {
		t.Error("Expected distinct tokens for repeated submissions")
	}
}
