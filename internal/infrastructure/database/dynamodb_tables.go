package database

import (
	"context"
	"errors"
	"fmt"

	"tallerpro/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// OrderIDIndex is the GSI every ledger table carries to list rows of one order.
const OrderIDIndex = "order_id-index"

type tableSpec struct {
	name         string
	orderIDIndex bool
}

func tableSpecs(t config.Tables) []tableSpec {
	return []tableSpec{
		{name: t.Orders},
		{name: t.Users},
		{name: t.Transactions, orderIDIndex: true},
		{name: t.Sales, orderIDIndex: true},
		{name: t.Events, orderIDIndex: true},
		{name: t.EmailLogs, orderIDIndex: true},
		{name: t.AuditLogs},
	}
}

// EnsureTables creates the tables that do not exist yet. Existing tables are
// left untouched.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, tables config.Tables, log *zap.Logger) error {
	for _, spec := range tableSpecs(tables) {
		_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.name)})
		if err == nil {
			log.Info("[migrate][dynamodb] table exists", zap.String("table", spec.name))
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return fmt.Errorf("describe %s: %w", spec.name, err)
		}

		if _, err := ddb.CreateTable(ctx, createTableInput(spec)); err != nil {
			return fmt.Errorf("create %s: %w", spec.name, err)
		}
		log.Info("[migrate][dynamodb] table created", zap.String("table", spec.name))
	}
	return nil
}

func createTableInput(spec tableSpec) *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(spec.name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
	}
	if spec.orderIDIndex {
		in.AttributeDefinitions = append(in.AttributeDefinitions,
			types.AttributeDefinition{AttributeName: aws.String("order_id"), AttributeType: types.ScalarAttributeTypeS},
			types.AttributeDefinition{AttributeName: aws.String("created_at"), AttributeType: types.ScalarAttributeTypeS},
		)
		in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
			IndexName: aws.String(OrderIDIndex),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("order_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("created_at"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}}
	}
	return in
}
