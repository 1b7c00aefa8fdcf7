package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSNotifier publishes verification messages to a topic; a downstream
// consumer turns them into email.
type SNSNotifier struct {
	client   *sns.Client
	topicARN string
	baseURL  string
}

func NewSNSNotifier(ctx context.Context, region, topicARN, baseURL string) (*SNSNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("sns notifier: %w", err)
	}
	return &SNSNotifier{
		client:   sns.NewFromConfig(awsCfg),
		topicARN: topicARN,
		baseURL:  baseURL,
	}, nil
}

type verificationMessage struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	VerifyURL string    `json:"verify_url"`
}

func (n *SNSNotifier) SendVerification(ctx context.Context, email, token string, expiresAt time.Time) error {
	payload, err := json.Marshal(verificationMessage{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
		VerifyURL: VerifyLink(n.baseURL, email, token),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
