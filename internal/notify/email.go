package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPNotifier sends the verification email directly over SMTP. Used in
// deployments without a messaging topic.
type SMTPNotifier struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPNotifier(host string, port int, user, password, from, baseURL string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:  gomail.NewDialer(host, port, user, password),
		from:    from,
		baseURL: baseURL,
	}
}

func (n *SMTPNotifier) SendVerification(ctx context.Context, email, token string, expiresAt time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your email address")

	body := fmt.Sprintf(`
		<h3>Verify your email address</h3>
		<p>Click the link below to verify your account:</p>
		<p><a href="%s">Verify email</a></p>
		<p>The link expires at %s.</p>
	`, VerifyLink(n.baseURL, email, token), expiresAt.UTC().Format(time.RFC1123))

	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
