package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// AdminFinder lists the administrators to notify.
type AdminFinder interface {
	FindAdmins(ctx context.Context) ([]*domain.User, error)
}

const providerRegisteredSubject = "New Provider Registration"

var providerRegisteredHTML = template.Must(template.New("provider_registered").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New provider awaiting approval</h2>
  <p>A new provider has registered and needs review.</p>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Business</strong></td><td>{{.BusinessName}} ({{.BusinessType}})</td></tr>
    {{if .City}}<tr><td><strong>City</strong></td><td>{{.City}}</td></tr>{{end}}
    <tr><td><strong>Registered</strong></td><td>{{.CreatedAt.Format "02 Jan 2006 15:04 MST"}}</td></tr>
  </table>
</body>
</html>`))

// AdminNotifier emails every administrator about events that need review.
// It is the queue.Handler behind the notification dispatcher.
type AdminNotifier struct {
	admins AdminFinder
	mailer Mailer
	log    zerolog.Logger
}

func NewAdminNotifier(admins AdminFinder, mailer Mailer, log zerolog.Logger) *AdminNotifier {
	return &AdminNotifier{admins: admins, mailer: mailer, log: log}
}

func (n *AdminNotifier) Handle(ctx context.Context, note domain.Notification) error {
	switch note.Kind {
	case domain.NotificationProviderRegistered:
		return n.providerRegistered(ctx, note)
	default:
		return fmt.Errorf("notify: unknown notification kind %q", note.Kind)
	}
}

func (n *AdminNotifier) providerRegistered(ctx context.Context, note domain.Notification) error {
	admins, err := n.admins.FindAdmins(ctx)
	if err != nil {
		return fmt.Errorf("notify: find admins: %w", err)
	}
	if len(admins) == 0 {
		n.log.Warn().Str("provider_id", note.ActorID).Msg("no admin to notify about provider registration")
		return nil
	}

	var html bytes.Buffer
	if err := providerRegisteredHTML.Execute(&html, note); err != nil {
		return fmt.Errorf("notify: render: %w", err)
	}
	text := fmt.Sprintf("A new provider (%s) has registered. Please review and approve.", note.Email)

	var errs []error
	for _, admin := range admins {
		err := n.mailer.Send(ctx, Message{
			To:      admin.Email,
			Subject: providerRegisteredSubject,
			Text:    text,
			HTML:    html.String(),
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n.log.Info().
			Str("admin", admin.Email).
			Str("provider_id", note.ActorID).
			Msg("admin notified of provider registration")
	}
	return errors.Join(errs...)
}
