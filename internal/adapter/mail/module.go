package mail

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"golang.org/x/oauth2"

	"github.com/modulixo/storefront/internal/config"
)

// Module exposes the email sender to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	opts := Options{
		Host:     p.Config.SMTPHost,
		Port:     p.Config.SMTPPort,
		From:     p.Config.EmailFrom,
		FromName: p.Config.EmailFromName,
		Password: p.Config.SMTPPassword,
	}

	if p.Config.OAuthClientID != "" {
		conf := &oauth2.Config{
			ClientID:     p.Config.OAuthClientID,
			ClientSecret: p.Config.OAuthClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: p.Config.OAuthTokenURL},
		}
		opts.Tokens = conf.TokenSource(p.Ctx, &oauth2.Token{RefreshToken: p.Config.OAuthRefreshToken})
	}

	return NewSMTPSender(opts, p.Logger)
}
