package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/findr-api/internal/config"
)

// TopicPublisher posts match alerts to one SNS topic. Subscribers (SMS,
// email lists, campus office tooling) are managed on the topic itself.
type TopicPublisher interface {
	PublishAlert(ctx context.Context, userID, subject, message string) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewTopicPublisher(ctx context.Context, cfg *config.Config) (TopicPublisher, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.SNSRegion)}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SNS: %w", err)
	}
	var clientOpts []func(*sns.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return &publisher{client: sns.NewFromConfig(awsCfg, clientOpts...), topicARN: cfg.SNSTopicARN}, nil
}

// PublishAlert tags the message with the recipient so subscriptions can
// filter on user_id.
func (p *publisher) PublishAlert(ctx context.Context, userID, subject, message string) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"user_id": {DataType: aws.String("String"), StringValue: aws.String(userID)},
		},
	})
	return err
}
