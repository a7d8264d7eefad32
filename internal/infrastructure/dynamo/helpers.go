package dynamo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/findr-api/internal/domain"
)

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

func strValue(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// expression is a rendered DynamoDB expression with its placeholder maps.
type expression struct {
	Expr   string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

// buildUpdateExpr converts a map of field->value into a DynamoDB SET expression.
// Fields are emitted in sorted order so the output is deterministic.
func buildUpdateExpr(updates map[string]interface{}) (expression, error) {
	if len(updates) == 0 {
		return expression{}, fmt.Errorf("no fields to update")
	}
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ue := expression{
		Names:  make(map[string]string, len(keys)),
		Values: make(map[string]types.AttributeValue, len(keys)),
	}
	parts := make([]string, 0, len(keys))
	for i, k := range keys {
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		av, err := attributevalue.Marshal(updates[k])
		if err != nil {
			return expression{}, fmt.Errorf("marshal field %s: %w", k, err)
		}
		ue.Names[nameKey] = k
		ue.Values[valueKey] = av
		parts = append(parts, nameKey+" = "+valueKey)
	}
	ue.Expr = "SET " + strings.Join(parts, ", ")
	return ue, nil
}

// buildItemFilter pushes the equality predicates of f into a Scan filter.
// Date range and text search stay in Go through ItemFilter.Match. ok is
// false when no predicate can be pushed down.
func buildItemFilter(f domain.ItemFilter) (fe expression, ok bool) {
	fe = expression{
		Names:  map[string]string{},
		Values: map[string]types.AttributeValue{},
	}
	var parts []string
	if f.IsVerified != nil {
		fe.Names["#ver"] = fieldIsVerified
		fe.Values[":ver"] = &types.AttributeValueMemberBOOL{Value: *f.IsVerified}
		parts = append(parts, "#ver = :ver")
	}
	if f.Category != "" {
		fe.Names["#cat"] = fieldCategory
		fe.Values[":cat"] = strValue(f.Category)
		parts = append(parts, "#cat = :cat")
	}
	if len(parts) == 0 {
		return expression{}, false
	}
	fe.Expr = strings.Join(parts, " AND ")
	return fe, true
}

// statusOf reads the status attribute of a raw item, "" when absent.
func statusOf(item map[string]types.AttributeValue) string {
	if v, ok := item[fieldStatus].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// classifySubmitCancel turns the cancellation reasons of a claim submission
// transaction into a domain error. The item update is the first action and
// returns the old item on condition failure.
func classifySubmitCancel(itemID string, reasons []types.CancellationReason) error {
	if len(reasons) == 0 || reasons[0].Code == nil || *reasons[0].Code != "ConditionalCheckFailed" {
		return fmt.Errorf("submit claim on item %s: transaction cancelled: %w", itemID, domain.ErrConflict)
	}
	old := reasons[0].Item
	if len(old) == 0 {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	switch domain.ItemStatus(statusOf(old)) {
	case domain.ItemStatusResolved:
		return fmt.Errorf("item %s is resolved: %w", itemID, domain.ErrInvalidState)
	default:
		return fmt.Errorf("item %s already has an active claim: %w", itemID, domain.ErrConflict)
	}
}

// classifyResolveCancel does the same for claim processing, where the claim
// update is the first action and the item update the optional second.
func classifyResolveCancel(claimID string, reasons []types.CancellationReason) error {
	failed := func(i int) bool {
		return i < len(reasons) && reasons[i].Code != nil && *reasons[i].Code == "ConditionalCheckFailed"
	}
	switch {
	case failed(0):
		return fmt.Errorf("claim %s is no longer pending: %w", claimID, domain.ErrInvalidState)
	case failed(1):
		return fmt.Errorf("item of claim %s changed concurrently: %w", claimID, domain.ErrConflict)
	default:
		return fmt.Errorf("process claim %s: transaction cancelled: %w", claimID, domain.ErrConflict)
	}
}
