package notify

import (
	"bytes"
	"context"
	"log/slog"

	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/errs"

	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errs.Wrap(err, "create smtp client")
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return errs.Wrap(err, "set sender")
	}
	if err := out.To(msg.To); err != nil {
		return errs.Wrap(err, "set recipient")
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	for _, a := range msg.Attachments {
		if err := out.AttachReader(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return errs.Wrap(err, "attach "+a.Name)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return errs.Wrap(err, "send mail")
	}
	return nil
}

// LogMailer stands in when no SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail delivery skipped, no SMTP host configured",
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments))
	return nil
}
