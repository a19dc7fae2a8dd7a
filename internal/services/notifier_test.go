package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emberlane/emberlane-backend/internal/domain"
)

func TestNotifyAdminSkippedWhenUnconfigured(t *testing.T) {
	n := NewMailNotifier(testLogger(t), SMTPConfig{})
	status := n.NotifyAdmin(context.Background(), &domain.Contact{
		ID: 1, Name: "Ayu", Email: "ayu@example.com", Subject: "Hi", Message: "Hello",
	})
	if status != NotifySkipped {
		t.Fatalf("expected skipped, got %s", status)
	}
}

func TestNotifyPartialConfigIsSkipped(t *testing.T) {
	// Host without a recipient is still unconfigured.
	n := NewMailNotifier(testLogger(t), SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	status := n.NotifyAdmin(context.Background(), &domain.Contact{ID: 2, Subject: "Hi"})
	if status != NotifySkipped {
		t.Fatalf("expected skipped, got %s", status)
	}
}

func TestAutoReplySkippedWithoutVisitorEmail(t *testing.T) {
	n := NewMailNotifier(testLogger(t), SMTPConfig{
		Host: "smtp.example.com", From: "noreply@example.com", To: "studio@example.com",
	})
	status := n.AutoReply(context.Background(), &domain.Contact{ID: 3, Name: "Anon", Subject: "Hi"})
	if status != NotifySkipped {
		t.Fatalf("expected skipped, got %s", status)
	}
}

func TestAdminBodyIncludesSubmission(t *testing.T) {
	phone := "+62 811-1111-1111"
	contact := &domain.Contact{
		ID:        4,
		Name:      "Marta",
		Email:     "marta@example.com",
		Phone:     &phone,
		Subject:   "Wholesale",
		Message:   "MOQ for the amber jars?",
		CreatedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	n := NewMailNotifier(testLogger(t), SMTPConfig{}).(*mailNotifier)
	body := n.adminBody(contact)

	for _, want := range []string{"Marta", "marta@example.com", phone, "Wholesale", "MOQ for the amber jars?"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestReplyBodyAddressesVisitor(t *testing.T) {
	contact := &domain.Contact{ID: 5, Name: "Marta", Message: "MOQ for the amber jars?"}
	n := NewMailNotifier(testLogger(t), SMTPConfig{}).(*mailNotifier)
	body := n.replyBody(contact)

	if !strings.Contains(body, "Hi Marta") || !strings.Contains(body, contact.Message) {
		t.Fatalf("unexpected reply body:\n%s", body)
	}
}
