package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/findr-api/internal/domain"
)

// ItemRepo provides typed DynamoDB operations for the items table.
type ItemRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewItemRepo(client *dynamodb.Client, tableName string) *ItemRepo {
	return &ItemRepo{client: client, tableName: tableName}
}

func (r *ItemRepo) Put(ctx context.Context, item *domain.Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *ItemRepo) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldItemID, itemID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	var item domain.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// List scans the table, pushing equality predicates down to DynamoDB and
// applying the rest of f in memory. Results are newest first.
func (r *ItemRepo) List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if fe, ok := buildItemFilter(f); ok {
		input.FilterExpression = aws.String(fe.Expr)
		input.ExpressionAttributeNames = fe.Names
		input.ExpressionAttributeValues = fe.Values
	}

	var items []domain.Item
	p := dynamodb.NewScanPaginator(r.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []domain.Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		for i := range batch {
			if f.Match(&batch[i]) {
				items = append(items, batch[i])
			}
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (r *ItemRepo) ListByReporter(ctx context.Context, userID string) ([]domain.Item, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexReporter),
		KeyConditionExpression:    aws.String("#r = :r"),
		ExpressionAttributeNames:  map[string]string{"#r": fieldReporterID},
		ExpressionAttributeValues: map[string]types.AttributeValue{":r": strValue(userID)},
		ScanIndexForward:          aws.Bool(false),
	})
	var items []domain.Item
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []domain.Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

func (r *ItemRepo) MarkVerified(ctx context.Context, itemID string) (*domain.Item, error) {
	return r.update(ctx, itemID, map[string]interface{}{fieldIsVerified: true}, false)
}

// Resolve settles an item unless it is waiting on a claim.
func (r *ItemRepo) Resolve(ctx context.Context, itemID string) (*domain.Item, error) {
	return r.update(ctx, itemID, map[string]interface{}{fieldStatus: domain.ItemStatusResolved}, true)
}

// update applies updates to an existing item. With skipPending the update
// is refused while the item waits on a claim.
func (r *ItemRepo) update(ctx context.Context, itemID string, updates map[string]interface{}, skipPending bool) (*domain.Item, error) {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = fieldItemID
	cond := "attribute_exists(#pk)"
	if skipPending {
		ue.Names["#c"] = fieldStatus
		ue.Values[":pending"] = strValue(string(domain.ItemStatusPending))
		cond += " AND #c <> :pending"
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 strKey(fieldItemID, itemID),
		UpdateExpression:                    aws.String(ue.Expr),
		ConditionExpression:                 aws.String(cond),
		ExpressionAttributeNames:            ue.Names,
		ExpressionAttributeValues:           ue.Values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if len(ccf.Item) == 0 {
				return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("item %s has a pending claim: %w", itemID, domain.ErrInvalidState)
		}
		return nil, err
	}
	var item domain.Item
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item permanently.
func (r *ItemRepo) Delete(ctx context.Context, itemID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey(fieldItemID, itemID),
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": fieldItemID},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return err
}

func sortNewestFirst(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
