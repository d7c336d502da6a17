package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"sync"
)

// emailTemplate is the shared HTML body for all notification emails.
var emailTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Hi {{.RecipientName}},</h2>
  <p>{{.Line}}</p>
  {{if .Detail}}<p style="color: #666;">{{.Detail}}</p>{{end}}
  <p>Log in to review your balances.</p>
</body>
</html>`))

type emailBody struct {
	RecipientName string
	Line          string
	Detail        string
}

// SMTPConfig holds the connection settings for the SMTP notifier.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPNotifier sends notification emails over SMTP. Delivery happens on a
// background worker so request handlers never block on the mail server.
type SMTPNotifier struct {
	cfg   SMTPConfig
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

// NewSMTPNotifier starts the delivery worker and returns the notifier.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	n := &SMTPNotifier{
		cfg:   cfg,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}
	go n.worker()
	return n
}

// Notify queues the event for delivery. It returns an error only when the
// queue is full; delivery failures are logged by the worker.
func (n *SMTPNotifier) Notify(ctx context.Context, event Event) error {
	select {
	case n.queue <- event:
		return nil
	default:
		return fmt.Errorf("notification queue full, dropping event for %s", event.RecipientEmail)
	}
}

// Close stops the worker after draining queued events.
func (n *SMTPNotifier) Close() error {
	n.once.Do(func() {
		close(n.queue)
		<-n.done
	})
	return nil
}

func (n *SMTPNotifier) worker() {
	defer close(n.done)
	for event := range n.queue {
		if err := n.send(event); err != nil {
			slog.Error("failed to send notification email",
				"recipient", event.RecipientEmail,
				"type", event.Type,
				"error", err,
			)
		}
	}
}

func (n *SMTPNotifier) send(event Event) error {
	subject, body, err := renderEmail(event)
	if err != nil {
		return err
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		body)

	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port
	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{event.RecipientEmail}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// renderEmail produces the subject and HTML body for an event.
func renderEmail(event Event) (subject, body string, err error) {
	data := emailBody{RecipientName: event.RecipientName}

	switch event.Type {
	case EventExpenseAdded:
		subject = fmt.Sprintf("%s added an expense", event.ActorName)
		data.Line = fmt.Sprintf("%s added %q for %.2f and split it with you.",
			event.ActorName, event.Description, event.Amount)
		if event.GroupName != "" {
			data.Detail = fmt.Sprintf("Group: %s", event.GroupName)
		}
	case EventSettlementRecorded:
		subject = fmt.Sprintf("%s recorded a payment", event.ActorName)
		data.Line = fmt.Sprintf("%s recorded a payment of %.2f.", event.ActorName, event.Amount)
		if event.Description != "" {
			data.Detail = fmt.Sprintf("Note: %s", event.Description)
		}
	case EventGroupInvite:
		subject = fmt.Sprintf("%s added you to %s", event.ActorName, event.GroupName)
		data.Line = fmt.Sprintf("%s added you to the group %q.", event.ActorName, event.GroupName)
	case EventContactMessage:
		subject = fmt.Sprintf("New message from %s", event.ActorName)
		data.Line = fmt.Sprintf("%s just sent you a message.", event.ActorName)
		data.Detail = fmt.Sprintf("%q", event.Description)
	case EventBalanceReminder:
		subject = "You have an outstanding balance"
		data.Line = fmt.Sprintf("%s sent you a reminder: you owe %.2f.", event.ActorName, event.Amount)
		if event.GroupName != "" {
			data.Detail = fmt.Sprintf("Group: %s", event.GroupName)
		}
	default:
		return "", "", fmt.Errorf("unknown event type: %s", event.Type)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email template: %w", err)
	}
	return subject, buf.String(), nil
}
