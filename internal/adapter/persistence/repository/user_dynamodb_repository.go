package repository

import (
	"context"
	"errors"
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

// UserDynamoRepository persists staff users in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Email and employee code uniqueness is enforced with guard items written in
// the same transaction as the user.
type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	now       func() time.Time
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func emailGuardKey(email string) string { return "email#" + strings.ToLower(email) }
func codeGuardKey(code string) string   { return "code#" + strings.ToUpper(code) }

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	userAV, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}

	guards := []string{emailGuardKey(u.Email)}
	if u.EmployeeCode != "" {
		guards = append(guards, codeGuardKey(u.EmployeeCode))
	}

	items := []types.TransactWriteItem{r.putNew(userAV)}
	for _, key := range guards {
		guardAV, err := attributevalue.MarshalMap(uniqueGuardItem{ID: key, Kind: userKindUnique, UserID: u.ID})
		if err != nil {
			return entities.User{}, err
		}
		items = append(items, r.putNew(guardAV))
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return entities.User{}, interfaces.ErrDuplicate
				}
			}
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) putNew(item map[string]types.AttributeValue) types.TransactWriteItem {
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	if it.Kind != userKindUser {
		return entities.User{}, nil
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) List(ctx context.Context) ([]entities.User, error) {
	return r.scan(ctx, false)
}

func (r *UserDynamoRepository) ListActive(ctx context.Context) ([]entities.User, error) {
	return r.scan(ctx, true)
}

func (r *UserDynamoRepository) scan(ctx context.Context, onlyActive bool) ([]entities.User, error) {
	filter := "#kind = :user"
	values := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userKindUser},
	}
	names := map[string]string{"#kind": "kind"}
	if onlyActive {
		filter += " AND #active = :active"
		values[":active"] = &types.AttributeValueMemberBOOL{Value: true}
		names["#active"] = "active"
	}

	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConsistentRead:            aws.Bool(true),
	})

	users := []entities.User{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it userItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			users = append(users, fromUserItem(it))
		}
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	return users, nil
}

func (r *UserDynamoRepository) SetActive(ctx context.Context, id string, active bool) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #kind = :user"),
		UpdateExpression:    aws.String("SET #active = :active, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#kind":       "kind",
			"#active":     "active",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user":       &types.AttributeValueMemberS{Value: userKindUser},
			":active":     &types.AttributeValueMemberBOOL{Value: active},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if failed, _ := conditionFailure(err); failed {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}
