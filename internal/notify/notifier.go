package notify

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/modulixo/storefront/internal/adapter/mail"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
)

const orderCompletedSubject = "Order Completed"

// Notifier composes and sends customer-facing emails. Nothing here is allowed
// to fail the persistence operation that triggered it; callers run it off the
// request path and only log errors.
type Notifier struct {
	users            repository.UserRepository
	sender           mail.Sender
	defaultRecipient string
	publicBaseURL    string
	storeName        string
	logger           *slog.Logger
}

// Options configure the notifier.
type Options struct {
	DefaultRecipient string
	PublicBaseURL    string
	StoreName        string
}

// New constructs a Notifier.
func New(users repository.UserRepository, sender mail.Sender, opts Options, logger *slog.Logger) *Notifier {
	return &Notifier{
		users:            users,
		sender:           sender,
		defaultRecipient: opts.DefaultRecipient,
		publicBaseURL:    strings.TrimRight(opts.PublicBaseURL, "/"),
		storeName:        opts.StoreName,
		logger:           logger,
	}
}

// OrderCompleted sends the download email for a completed order. Orders
// without deliverables are skipped; an unresolvable recipient is logged and
// skipped rather than attempted.
func (n *Notifier) OrderCompleted(ctx context.Context, order *model.Order) error {
	deliverables := order.Deliverables()
	if len(deliverables) == 0 {
		return nil
	}

	recipient := n.resolveRecipient(ctx, order)
	if recipient == "" {
		n.logger.Warn("no recipient for order notification, skipping",
			slog.String("order", order.Number))
		return nil
	}

	links := make([]DownloadLink, 0, len(deliverables))
	for _, item := range deliverables {
		label := item.FileName
		if label == "" {
			label = "File"
		}
		links = append(links, DownloadLink{Label: label, URL: n.absoluteURL(item.FileURL)})
	}

	html, err := renderOrderCompleted(n.storeName, order.Number, links)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, mail.Message{To: recipient, Subject: orderCompletedSubject, HTML: html})
}

// PasswordReset sends a reset link for the account.
func (n *Notifier) PasswordReset(ctx context.Context, user *model.User, token string) error {
	resetURL := n.publicBaseURL + "/set-password?token=" + url.QueryEscape(token)
	html, err := renderPasswordReset(n.storeName, resetURL)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, mail.Message{To: user.Email, Subject: "Reset your password", HTML: html})
}

func (n *Notifier) resolveRecipient(ctx context.Context, order *model.Order) string {
	if order.UserID != nil {
		user, err := n.users.GetByID(ctx, *order.UserID)
		if err != nil {
			n.logger.Warn("order notification user lookup failed",
				slog.String("order", order.Number),
				slog.String("error", err.Error()))
		} else if user.Email != "" {
			return user.Email
		}
	}
	return n.defaultRecipient
}

// absoluteURL leaves absolute file URLs untouched and prefixes relative
// storage paths with the public base URL.
func (n *Notifier) absoluteURL(raw string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.IsAbs() {
		return raw
	}
	return n.publicBaseURL + "/" + strings.TrimLeft(raw, "/")
}
