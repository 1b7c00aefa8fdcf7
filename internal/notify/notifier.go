// Package notify delivers verification messages to freshly registered
// accounts. Delivery is fire-and-forget: registration never fails because a
// message could not be sent.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type Notifier interface {
	SendVerification(ctx context.Context, email, token string, expiresAt time.Time) error
}

// VerifyLink builds the confirmation URL a recipient has to open.
func VerifyLink(baseURL, email, token string) string {
	return fmt.Sprintf("%s/v1/verify?user=%s&token=%s",
		baseURL, url.QueryEscape(email), url.QueryEscape(token))
}
