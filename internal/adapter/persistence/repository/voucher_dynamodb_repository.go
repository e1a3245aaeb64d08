package repository

import (
	"context"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const vouchersCheckoutIDIndex = "checkout_id-index"

type voucherItem struct {
	ID         string `dynamodbav:"id"`
	CheckoutID string `dynamodbav:"checkout_id"`
	EventID    string `dynamodbav:"event_id"`
	Active     bool   `dynamodbav:"active"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// VoucherDynamoRepository persists Voucher entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: checkout_id-index (PK: checkout_id)

type VoucherDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IVoucherRepository = (*VoucherDynamoRepository)(nil)

func NewVoucherDynamoRepository(ddb dynamoAPI, tableName string) *VoucherDynamoRepository {
	return &VoucherDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *VoucherDynamoRepository) Create(ctx context.Context, v entities.Voucher) (entities.Voucher, error) {
	av, err := attributevalue.MarshalMap(toVoucherItem(v))
	if err != nil {
		return entities.Voucher{}, err
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
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Voucher{}, interfaces.ErrAlreadyExists
		}
		return entities.Voucher{}, err
	}
	return v, nil
}

func (r *VoucherDynamoRepository) GetByID(ctx context.Context, id string) (entities.Voucher, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Voucher{}, err
	}
	if len(out.Item) == 0 {
		return entities.Voucher{}, nil
	}
	return unmarshalVoucher(out.Item)
}

// GetByCheckoutID returns the checkout's voucher. A checkout has at most one.
func (r *VoucherDynamoRepository) GetByCheckoutID(ctx context.Context, checkoutID string) (entities.Voucher, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(vouchersCheckoutIDIndex),
		KeyConditionExpression: aws.String("checkout_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: checkoutID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Voucher{}, err
	}
	if len(out.Items) == 0 {
		return entities.Voucher{}, nil
	}
	return unmarshalVoucher(out.Items[0])
}

func (r *VoucherDynamoRepository) SetActive(ctx context.Context, id string, active bool) (entities.Voucher, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #active = :active, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#active":     "active",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active":     &types.AttributeValueMemberBOOL{Value: active},
			":updated_at": &types.AttributeValueMemberS{Value: nowString()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Voucher{}, nil
		}
		return entities.Voucher{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Voucher{}, nil
	}
	return unmarshalVoucher(out.Attributes)
}

func unmarshalVoucher(raw map[string]types.AttributeValue) (entities.Voucher, error) {
	var it voucherItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Voucher{}, err
	}
	return fromVoucherItem(it), nil
}

func toVoucherItem(v entities.Voucher) voucherItem {
	return voucherItem{
		ID:         v.ID,
		CheckoutID: v.CheckoutID,
		EventID:    v.EventID,
		Active:     v.Active,
		CreatedAt:  formatTime(v.CreatedAt),
		UpdatedAt:  formatTime(v.UpdatedAt),
	}
}

func fromVoucherItem(it voucherItem) entities.Voucher {
	return entities.Voucher{
		ID:         it.ID,
		CheckoutID: it.CheckoutID,
		EventID:    it.EventID,
		Active:     it.Active,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}

