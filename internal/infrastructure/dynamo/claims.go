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

// ClaimRepo provides typed DynamoDB operations for the claims table. Claim
// transitions also write the items table inside one transaction.
type ClaimRepo struct {
	client     *dynamodb.Client
	tableName  string
	itemsTable string
}

func NewClaimRepo(client *dynamodb.Client, tableName, itemsTable string) *ClaimRepo {
	return &ClaimRepo{client: client, tableName: tableName, itemsTable: itemsTable}
}

// Submit inserts c and moves its item from OPEN to PENDING atomically.
func (r *ClaimRepo) Submit(ctx context.Context, c *domain.Claim) error {
	av, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.itemsTable),
				Key:                 strKey(fieldItemID, c.ItemID),
				UpdateExpression:    aws.String("SET #s = :pending"),
				ConditionExpression: aws.String("attribute_exists(#pk) AND #s = :open"),
				ExpressionAttributeNames: map[string]string{
					"#pk": fieldItemID,
					"#s":  fieldStatus,
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending": strValue(string(domain.ItemStatusPending)),
					":open":    strValue(string(domain.ItemStatusOpen)),
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{"#pk": fieldClaimID},
			}},
		},
	})
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return classifySubmitCancel(c.ItemID, tce.CancellationReasons)
	}
	return err
}

// Resolve settles a PENDING claim and moves its item to RESOLVED (approved)
// or back to OPEN (rejected). The item write is skipped when the item no
// longer exists.
func (r *ClaimRepo) Resolve(ctx context.Context, claimID string, approved bool) (*domain.Claim, error) {
	c, err := r.Get(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ClaimStatusPending {
		return nil, fmt.Errorf("claim %s is %s: %w", claimID, c.Status, domain.ErrInvalidState)
	}

	claimStatus, itemStatus := domain.ClaimStatusRejected, domain.ItemStatusOpen
	if approved {
		claimStatus, itemStatus = domain.ClaimStatusApproved, domain.ItemStatusResolved
	}

	actions := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                aws.String(r.tableName),
			Key:                      strKey(fieldClaimID, claimID),
			UpdateExpression:         aws.String("SET #s = :next"),
			ConditionExpression:      aws.String("#s = :pending"),
			ExpressionAttributeNames: map[string]string{"#s": fieldStatus},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":next":    strValue(string(claimStatus)),
				":pending": strValue(string(domain.ClaimStatusPending)),
			},
		}},
	}
	exists, err := r.itemExists(ctx, c.ItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		actions = append(actions, types.TransactWriteItem{Update: &types.Update{
			TableName:           aws.String(r.itemsTable),
			Key:                 strKey(fieldItemID, c.ItemID),
			UpdateExpression:    aws.String("SET #s = :next"),
			ConditionExpression: aws.String("attribute_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{
				"#pk": fieldItemID,
				"#s":  fieldStatus,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":next": strValue(string(itemStatus)),
			},
		}})
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions})
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		return nil, classifyResolveCancel(claimID, tce.CancellationReasons)
	}
	if err != nil {
		return nil, err
	}
	c.Status = claimStatus
	return c, nil
}

func (r *ClaimRepo) Get(ctx context.Context, claimID string) (*domain.Claim, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldClaimID, claimID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("claim %s: %w", claimID, domain.ErrNotFound)
	}
	var c domain.Claim
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClaimRepo) ListByClaimant(ctx context.Context, userID string) ([]domain.Claim, error) {
	return r.query(ctx, indexClaimant, fieldClaimantID, userID)
}

func (r *ClaimRepo) ListPending(ctx context.Context) ([]domain.Claim, error) {
	return r.query(ctx, indexClaimStatus, fieldStatus, string(domain.ClaimStatusPending))
}

func (r *ClaimRepo) query(ctx context.Context, index, attr, value string) ([]domain.Claim, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": strValue(value)},
	})
	var claims []domain.Claim
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []domain.Claim
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		claims = append(claims, batch...)
	}
	return claims, nil
}

func (r *ClaimRepo) itemExists(ctx context.Context, itemID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(r.itemsTable),
		Key:                      strKey(fieldItemID, itemID),
		ProjectionExpression:     aws.String("#pk"),
		ExpressionAttributeNames: map[string]string{"#pk": fieldItemID},
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}
