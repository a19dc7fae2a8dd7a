package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// NotifyStatus reports what happened to the email side of a contact
// submission. The submission itself is already stored by the time a notifier
// runs, so none of these states is an error to the submitting visitor.
type NotifyStatus string

const (
	NotifySent    NotifyStatus = "sent"
	NotifySkipped NotifyStatus = "skipped"
	NotifyFailed  NotifyStatus = "failed"
)

// Notifier sends the two emails that follow a contact submission: one to the
// studio inbox, one confirmation back to the visitor.
type Notifier interface {
	NotifyAdmin(ctx context.Context, contact *domain.Contact) NotifyStatus
	AutoReply(ctx context.Context, contact *domain.Contact) NotifyStatus
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Configured reports whether there is enough configuration to attempt a send.
func (c SMTPConfig) Configured() bool {
	return strings.TrimSpace(c.Host) != "" &&
		strings.TrimSpace(c.From) != "" &&
		strings.TrimSpace(c.To) != ""
}

type mailNotifier struct {
	log *logger.Logger
	cfg SMTPConfig
}

func NewMailNotifier(log *logger.Logger, cfg SMTPConfig) Notifier {
	return &mailNotifier{
		log: log.With("service", "MailNotifier"),
		cfg: cfg,
	}
}

// NotifyAdmin emails the studio inbox about a new submission. A missing
// SMTP configuration is a normal deployment state, not a failure.
func (n *mailNotifier) NotifyAdmin(ctx context.Context, contact *domain.Contact) NotifyStatus {
	if !n.cfg.Configured() {
		n.log.Info("Contact notification skipped, SMTP not configured", "contact_id", contact.ID)
		return NotifySkipped
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		n.log.Error("Invalid notification sender", "from", n.cfg.From, "error", err)
		return NotifyFailed
	}
	if err := msg.To(n.cfg.To); err != nil {
		n.log.Error("Invalid notification recipient", "to", n.cfg.To, "error", err)
		return NotifyFailed
	}
	if contact.Email != "" {
		if err := msg.ReplyTo(contact.Email); err != nil {
			n.log.Warn("Skipping invalid reply-to", "email", contact.Email, "error", err)
		}
	}
	msg.Subject(fmt.Sprintf("New contact form submission: %s", contact.Subject))
	msg.SetBodyString(mail.TypeTextPlain, n.adminBody(contact))

	return n.send(ctx, msg, contact.ID, "admin notification")
}

// AutoReply confirms receipt to the visitor. It reuses the same SMTP
// configuration as the admin notification and is equally best-effort.
func (n *mailNotifier) AutoReply(ctx context.Context, contact *domain.Contact) NotifyStatus {
	if !n.cfg.Configured() || contact.Email == "" {
		n.log.Info("Auto-reply skipped", "contact_id", contact.ID)
		return NotifySkipped
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		n.log.Error("Invalid auto-reply sender", "from", n.cfg.From, "error", err)
		return NotifyFailed
	}
	if err := msg.To(contact.Email); err != nil {
		n.log.Warn("Auto-reply skipped, visitor email not deliverable", "email", contact.Email, "error", err)
		return NotifySkipped
	}
	msg.Subject(fmt.Sprintf("We received your message: %s", contact.Subject))
	msg.SetBodyString(mail.TypeTextPlain, n.replyBody(contact))

	return n.send(ctx, msg, contact.ID, "auto-reply")
}

func (n *mailNotifier) send(ctx context.Context, msg *mail.Msg, contactID int, kind string) NotifyStatus {
	opts := []mail.Option{mail.WithPort(n.cfg.Port)}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		n.log.Error("SMTP client setup failed", "error", err)
		return NotifyFailed
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		n.log.Error("Contact email failed", "kind", kind, "contact_id", contactID, "error", err)
		return NotifyFailed
	}
	n.log.Info("Contact email sent", "kind", kind, "contact_id", contactID)
	return NotifySent
}

func (n *mailNotifier) adminBody(contact *domain.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", contact.Email)
	if contact.Phone != nil && *contact.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", *contact.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", contact.Subject)
	b.WriteString(contact.Message)
	fmt.Fprintf(&b, "\n\nSubmitted at %s", contact.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func (n *mailNotifier) replyBody(contact *domain.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", contact.Name)
	b.WriteString("Thank you for reaching out to Emberlane Atelier. ")
	b.WriteString("We received your message and will get back to you within two business days.\n\n")
	fmt.Fprintf(&b, "Your message:\n%s\n\n", contact.Message)
	b.WriteString("Warm regards,\nEmberlane Atelier")
	return b.String()
}
