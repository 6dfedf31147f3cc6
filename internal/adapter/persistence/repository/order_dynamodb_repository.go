package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// OrderDynamoRepository persists work orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Every write bumps "version"; writes that carry an expected version are
// conditioned on it.
type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	now       func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	if o.Version == 0 {
		o.Version = 1
	}
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if failed, _ := conditionFailure(err); failed {
			return entities.Order{}, interfaces.ErrDuplicate
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// List scans the table, newest first. Filters are applied server side.
func (r *OrderDynamoRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if expr, names, values := orderFilterExpression(filter); expr != "" {
		in.FilterExpression = aws.String(expr)
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}

	orders := []entities.Order{}
	paginator := dynamodb.NewScanPaginator(r.ddb, in)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if filter.Limit > 0 && len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
	}
	return orders, nil
}

func orderFilterExpression(f interfaces.OrderFilter) (string, map[string]string, map[string]types.AttributeValue) {
	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	add := func(attr, value string) {
		if value == "" {
			return
		}
		clauses = append(clauses, "#"+attr+" = :"+attr)
		names["#"+attr] = attr
		values[":"+attr] = &types.AttributeValueMemberS{Value: value}
	}
	add("status", f.Status)
	add("company_id", f.CompanyID)
	add("customer_id", f.CustomerID)
	if len(clauses) == 0 {
		return "", nil, nil
	}
	return strings.Join(clauses, " AND "), names, values
}

func (r *OrderDynamoRepository) AppendStatus(ctx context.Context, id string, entry entities.StatusHistoryEntry, expectedVersion int64) (entities.Order, error) {
	hist, err := attributevalue.Marshal([]statusHistoryItem{toStatusHistoryItem(entry)})
	if err != nil {
		return entities.Order{}, err
	}
	return r.update(ctx, id, expectedVersion, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #history = list_append(if_not_exists(#history, :empty), :entry), #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: entry.Status},
			":entry":      hist,
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#history":    "status_history",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *OrderDynamoRepository) UpdateCostEstimate(ctx context.Context, id string, costEstimate, balanceDue float64, expectedVersion int64) (entities.Order, error) {
	return r.update(ctx, id, expectedVersion, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #cost = :cost, #balance = :balance, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":cost":       &types.AttributeValueMemberN{Value: floatToString(costEstimate)},
			":balance":    &types.AttributeValueMemberN{Value: floatToString(balanceDue)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#cost":       "cost_estimate",
			"#balance":    "balance_due",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// update applies build's SET clause and bumps the version, conditioned on the
// stored version being expectedVersion.
func (r *OrderDynamoRepository) update(
	ctx context.Context,
	id string,
	expectedVersion int64,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Order, error) {
	updateExpr, values, names := build(formatTime(r.now()))
	values[":expected"] = &types.AttributeValueMemberN{Value: intToString(expectedVersion)}
	values[":one"] = &types.AttributeValueMemberN{Value: "1"}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:                    aws.String(updateExpr + " ADD #version :one"),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id", "#version": "version"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if failed, exists := conditionFailure(err); failed {
			return entities.Order{}, versionConflictOr(exists)
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}
