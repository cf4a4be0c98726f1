package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"golang.org/x/oauth2"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers email messages. Delivery failures surface as errors; the
// caller decides whether to log or propagate.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Options configure the SMTP sender.
type Options struct {
	Host     string
	Port     int
	From     string
	FromName string

	// Password selects plain SMTP auth. Tokens selects XOAUTH2; when both are
	// set Tokens wins.
	Password string
	Tokens   oauth2.TokenSource
}

// SMTPSender implements Sender over SMTP using gomail.
type SMTPSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *slog.Logger
}

// NewSMTPSender builds an SMTP sender. The token source, when provided, is an
// explicit credential provider refreshed on demand; no ambient auth state.
func NewSMTPSender(opts Options, logger *slog.Logger) (*SMTPSender, error) {
	if opts.Host == "" || opts.Port == 0 {
		return nil, fmt.Errorf("smtp host and port must be provided")
	}
	if opts.From == "" {
		return nil, fmt.Errorf("sender address must be provided")
	}

	dialer := gomail.NewDialer(opts.Host, opts.Port, opts.From, opts.Password)
	if opts.Tokens != nil {
		dialer.Auth = NewXOAuth2(opts.From, opts.Tokens)
	}

	return &SMTPSender{
		dialer:   dialer,
		from:     opts.From,
		fromName: opts.FromName,
		logger:   logger,
	}, nil
}

// Send delivers one HTML email, honouring context cancellation.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient must not be empty")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	}

	s.logger.Info("email sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}

// XOAuth2 implements the SMTP XOAUTH2 mechanism on top of an oauth2 token
// source, so expired access tokens refresh transparently per connection.
type XOAuth2 struct {
	user   string
	tokens oauth2.TokenSource
}

// NewXOAuth2 builds the auth mechanism for the given account.
func NewXOAuth2(user string, tokens oauth2.TokenSource) *XOAuth2 {
	return &XOAuth2{user: user, tokens: tokens}
}

// Start begins the XOAUTH2 exchange.
func (a *XOAuth2) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	token, err := a.tokens.Token()
	if err != nil {
		return "", nil, fmt.Errorf("fetch access token: %w", err)
	}
	resp := []byte("user=" + a.user + "\x01auth=Bearer " + token.AccessToken + "\x01\x01")
	return "XOAUTH2", resp, nil
}

// Next handles the server challenge; a non-empty challenge carries an error
// payload which we acknowledge with an empty response.
func (a *XOAuth2) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		return []byte{}, nil
	}
	return nil, nil
}
