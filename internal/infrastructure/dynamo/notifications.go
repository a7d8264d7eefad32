package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/findr-api/internal/domain"
)

// NotificationRepo provides typed DynamoDB operations for the notifications table.
type NotificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNotificationRepo(client *dynamodb.Client, tableName string) *NotificationRepo {
	return &NotificationRepo{client: client, tableName: tableName}
}

func (r *NotificationRepo) Put(ctx context.Context, n *domain.Notification) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NotificationRepo) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldNotificationID, notificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser queries the user_id-created_at GSI newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexUserNotification),
		KeyConditionExpression:    aws.String("#u = :uid"),
		ExpressionAttributeNames:  map[string]string{"#u": fieldUserID},
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": strValue(userID)},
		ScanIndexForward:          aws.Bool(false),
	})
	var notifications []domain.Notification
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []domain.Notification
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		notifications = append(notifications, batch...)
	}
	return notifications, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexUserNotification),
		KeyConditionExpression: aws.String("#u = :uid"),
		FilterExpression:       aws.String("#r = :f"),
		ExpressionAttributeNames: map[string]string{
			"#u": fieldUserID,
			"#r": fieldIsRead,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": strValue(userID),
			":f":   &types.AttributeValueMemberBOOL{Value: false},
		},
		Select: types.SelectCount,
	})
	total := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int(page.Count)
	}
	return total, nil
}

// MarkAsRead is idempotent.
func (r *NotificationRepo) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldIsRead: true})
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = fieldNotificationID
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldNotificationID, notificationID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
		}
		return nil, err
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Attributes, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
