package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/infrastructure/config"
	"tallerpro/internal/infrastructure/database"
	"tallerpro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// LedgerDynamoRepository persists transactions, sales, timeline events and
// the email/audit logs in DynamoDB.
//
// Table requirements:
//   - PK: id (string) on every table
//   - GSI: order_id-index (PK: order_id, SK: created_at) on transactions,
//     sales, events and email logs
type LedgerDynamoRepository struct {
	ddb    *dynamodb.Client
	tables config.Tables
	now    func() time.Time
}

var _ interfaces.ILedgerRepository = (*LedgerDynamoRepository)(nil)

func NewLedgerDynamoRepository(ddb *dynamodb.Client, tables config.Tables) *LedgerDynamoRepository {
	return &LedgerDynamoRepository{ddb: ddb, tables: tables, now: time.Now}
}

// ApplyDeposit commits the order update and the three ledger rows in a single
// TransactWriteItems call.
func (r *LedgerDynamoRepository) ApplyDeposit(ctx context.Context, d interfaces.DepositWrite) (entities.Order, error) {
	items, err := r.depositWriteItems(d)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return entities.Order{}, r.cancellationError(tce)
		}
		return entities.Order{}, err
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Orders),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: d.OrderID}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("reload order after deposit: %w", err)
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *LedgerDynamoRepository) depositWriteItems(d interfaces.DepositWrite) ([]types.TransactWriteItem, error) {
	txAV, err := attributevalue.MarshalMap(toTransactionItem(d.Transaction))
	if err != nil {
		return nil, err
	}
	saleAV, err := attributevalue.MarshalMap(toSaleItem(d.Sale))
	if err != nil {
		return nil, err
	}
	eventAV, err := attributevalue.MarshalMap(toEventItem(d.Event))
	if err != nil {
		return nil, err
	}

	newRow := func(table string, item map[string]types.AttributeValue) types.TransactWriteItem {
		return types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(table),
			Item:                     item,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}}
	}

	return []types.TransactWriteItem{
		{Update: &types.Update{
			TableName: aws.String(r.tables.Orders),
			Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: d.OrderID}},
			UpdateExpression: aws.String(
				"SET #paid = :paid, #deposit = :deposit, #balance = :balance, #updated_at = :updated_at ADD #version :one",
			),
			ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#paid":       "amount_paid",
				"#deposit":    "deposit_amount",
				"#balance":    "balance_due",
				"#updated_at": "updated_at",
				"#version":    "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":paid":       &types.AttributeValueMemberN{Value: floatToString(d.AmountPaid)},
				":deposit":    &types.AttributeValueMemberN{Value: floatToString(d.DepositAmount)},
				":balance":    &types.AttributeValueMemberN{Value: floatToString(d.BalanceDue)},
				":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
				":expected":   &types.AttributeValueMemberN{Value: intToString(d.ExpectedVersion)},
				":one":        &types.AttributeValueMemberN{Value: "1"},
			},
			ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		}},
		newRow(r.tables.Transactions, txAV),
		newRow(r.tables.Sales, saleAV),
		newRow(r.tables.Events, eventAV),
	}, nil
}

// cancellationError maps the per-item reasons of a cancelled transaction. The
// order update is item 0.
func (r *LedgerDynamoRepository) cancellationError(tce *types.TransactionCanceledException) error {
	reasons := tce.CancellationReasons
	if len(reasons) == 0 {
		return tce
	}
	if aws.ToString(reasons[0].Code) == "ConditionalCheckFailed" {
		if len(reasons[0].Item) == 0 {
			return nil
		}
		return interfaces.ErrVersionConflict
	}
	for _, reason := range reasons[1:] {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return interfaces.ErrDuplicate
		}
	}
	return tce
}

func (r *LedgerDynamoRepository) CreateEvent(ctx context.Context, e entities.WorkOrderEvent) error {
	return r.put(ctx, r.tables.Events, toEventItem(e))
}

func (r *LedgerDynamoRepository) CreateEmailLog(ctx context.Context, l entities.EmailLog) error {
	return r.put(ctx, r.tables.EmailLogs, emailLogItem{
		ID:         l.ID,
		OrderID:    l.OrderID,
		To:         l.To,
		Subject:    l.Subject,
		ProviderID: l.ProviderID,
		Status:     l.Status,
		SentBy:     l.SentBy,
		CreatedAt:  formatTime(l.CreatedAt),
	})
}

func (r *LedgerDynamoRepository) CreateAuditLog(ctx context.Context, a entities.AuditLog) error {
	return r.put(ctx, r.tables.AuditLogs, auditLogItem{
		ID:         a.ID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		UserName:   a.UserName,
		Changes:    a.Changes,
		CreatedAt:  formatTime(a.CreatedAt),
	})
}

func (r *LedgerDynamoRepository) put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if failed, _ := conditionFailure(err); failed {
		return interfaces.ErrDuplicate
	}
	return err
}

func (r *LedgerDynamoRepository) ListEventsByOrderID(ctx context.Context, orderID string) ([]entities.WorkOrderEvent, error) {
	raw, err := r.queryByOrderID(ctx, r.tables.Events, orderID)
	if err != nil {
		return nil, err
	}
	events := make([]entities.WorkOrderEvent, 0, len(raw))
	for _, item := range raw {
		var it eventItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		events = append(events, fromEventItem(it))
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events, nil
}

func (r *LedgerDynamoRepository) ListTransactionsByOrderID(ctx context.Context, orderID string) ([]entities.Transaction, error) {
	raw, err := r.queryByOrderID(ctx, r.tables.Transactions, orderID)
	if err != nil {
		return nil, err
	}
	txs := make([]entities.Transaction, 0, len(raw))
	for _, item := range raw {
		var it transactionItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		txs = append(txs, fromTransactionItem(it))
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })
	return txs, nil
}

func (r *LedgerDynamoRepository) queryByOrderID(ctx context.Context, table, orderID string) ([]map[string]types.AttributeValue, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(database.OrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return nil, fmt.Errorf("query %s (%s): %w", table, apiErr.ErrorCode(), err)
			}
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
