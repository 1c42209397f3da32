package sender

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/wyfcoding/eshop/internal/notification/domain"
	"github.com/wyfcoding/pkg/logging"
)

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSender delivers email notifications over SMTP. With no host
// configured it degrades to log-only delivery, which is what dev and test
// environments run.
func NewSMTPSender(host, port, username, password, from string) domain.Sender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, n *domain.Notification) error {
	if s.host == "" {
		logging.Info(ctx, "email delivery skipped, no smtp host configured",
			"target", n.Target, "subject", n.Subject)
		return nil
	}

	msg := []byte("To: " + n.Target + "\r\n" +
		"Subject: " + n.Subject + "\r\n" +
		"\r\n" +
		n.Content + "\r\n")

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, auth, s.from, []string{n.Target}, msg)
}
