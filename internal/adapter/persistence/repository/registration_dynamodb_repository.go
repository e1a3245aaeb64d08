package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const registrationsCheckoutIDIndex = "checkout_id-index"

type registrationItem struct {
	ID              string `dynamodbav:"id"`
	EventID         string `dynamodbav:"event_id"`
	CheckoutID      string `dynamodbav:"checkout_id"`
	AttendeeUserID  string `dynamodbav:"attendee_user_id,omitempty"`
	CreatedByUserID string `dynamodbav:"created_by_user_id"`
	CreatedByRole   string `dynamodbav:"created_by_role"`
	Status          string `dynamodbav:"status"`
	Name            string `dynamodbav:"name"`
	CPF             string `dynamodbav:"cpf,omitempty"`
	Email           string `dynamodbav:"email"`
	Phone           string `dynamodbav:"phone,omitempty"`
	Organization    string `dynamodbav:"organization,omitempty"`
	JobTitle        string `dynamodbav:"job_title,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// RegistrationDynamoRepository persists Registration entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: checkout_id-index (PK: checkout_id)

type RegistrationDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IRegistrationRepository = (*RegistrationDynamoRepository)(nil)

func NewRegistrationDynamoRepository(ddb dynamoAPI, tableName string) *RegistrationDynamoRepository {
	return &RegistrationDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *RegistrationDynamoRepository) Create(ctx context.Context, reg entities.Registration) (entities.Registration, error) {
	av, err := attributevalue.MarshalMap(toRegistrationItem(reg))
	if err != nil {
		return entities.Registration{}, err
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
			return entities.Registration{}, interfaces.ErrAlreadyExists
		}
		return entities.Registration{}, err
	}
	return reg, nil
}

func (r *RegistrationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Registration, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Registration{}, err
	}
	if len(out.Item) == 0 {
		return entities.Registration{}, nil
	}
	return unmarshalRegistration(out.Item)
}

func (r *RegistrationDynamoRepository) ListByCheckoutID(ctx context.Context, checkoutID string) ([]entities.Registration, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(registrationsCheckoutIDIndex),
		KeyConditionExpression: aws.String("checkout_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: checkoutID},
		},
	})

	items := make([]entities.Registration, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			reg, err := unmarshalRegistration(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, reg)
		}
	}
	return items, nil
}

func (r *RegistrationDynamoRepository) CountByCheckoutID(ctx context.Context, checkoutID string, statuses []entities.RegistrationStatus, excludeID string) (int, error) {
	input := countQuery(r.tableName, checkoutID, statuses, excludeID)
	p := dynamodb.NewQueryPaginator(r.ddb, input)

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

func countQuery(table, checkoutID string, statuses []entities.RegistrationStatus, excludeID string) *dynamodb.QueryInput {
	values := map[string]types.AttributeValue{
		":cid": &types.AttributeValueMemberS{Value: checkoutID},
	}
	names := map[string]string{}

	var filters []string
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for i, s := range statuses {
			key := ":s" + strconv.Itoa(i)
			values[key] = &types.AttributeValueMemberS{Value: string(s)}
			placeholders = append(placeholders, key)
		}
		names["#status"] = "status"
		filters = append(filters, "#status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if excludeID != "" {
		values[":exclude"] = &types.AttributeValueMemberS{Value: excludeID}
		names["#id"] = "id"
		filters = append(filters, "#id <> :exclude")
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		IndexName:                 aws.String(registrationsCheckoutIDIndex),
		KeyConditionExpression:    aws.String("checkout_id = :cid"),
		ExpressionAttributeValues: values,
		Select:                    types.SelectCount,
	}
	if len(filters) > 0 {
		input.FilterExpression = aws.String(strings.Join(filters, " AND "))
		input.ExpressionAttributeNames = names
	}
	return input
}

func (r *RegistrationDynamoRepository) UpdateDetails(ctx context.Context, id string, form entities.RegistrationForm) (entities.Registration, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #name = :name, #cpf = :cpf, #email = :email, #phone = :phone, " +
			"#organization = :organization, #job_title = :job_title, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":name":         &types.AttributeValueMemberS{Value: form.Name},
			":cpf":          &types.AttributeValueMemberS{Value: form.CPF},
			":email":        &types.AttributeValueMemberS{Value: form.Email},
			":phone":        &types.AttributeValueMemberS{Value: form.Phone},
			":organization": &types.AttributeValueMemberS{Value: form.Organization},
			":job_title":    &types.AttributeValueMemberS{Value: form.JobTitle},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#name":         "name",
			"#cpf":          "cpf",
			"#email":        "email",
			"#phone":        "phone",
			"#organization": "organization",
			"#job_title":    "job_title",
			"#updated_at":   "updated_at",
		}
		return expr, vals, names
	})
}

// UpdateStatuses writes statuses in transactions of at most 100 registrations;
// each batch is applied entirely or not at all.
func (r *RegistrationDynamoRepository) UpdateStatuses(ctx context.Context, regs []entities.Registration) error {
	now := nowString()
	for start := 0; start < len(regs); start += maxTransactItems {
		end := start + maxTransactItems
		if end > len(regs) {
			end = len(regs)
		}

		batch := make([]types.TransactWriteItem, 0, end-start)
		for _, reg := range regs[start:end] {
			updatedAt := formatTime(reg.UpdatedAt)
			if updatedAt == "" {
				updatedAt = now
			}
			batch = append(batch, types.TransactWriteItem{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(reg.ID),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#status":     "status",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status":     &types.AttributeValueMemberS{Value: string(reg.Status)},
					":updated_at": &types.AttributeValueMemberS{Value: updatedAt},
				},
			}})
		}

		if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: batch}); err != nil {
			return fmt.Errorf("update registration statuses [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

func (r *RegistrationDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Registration, error) {
	updateExpr, values, names := build(nowString())

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Registration{}, nil
		}
		return entities.Registration{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Registration{}, nil
	}
	return unmarshalRegistration(out.Attributes)
}

func unmarshalRegistration(raw map[string]types.AttributeValue) (entities.Registration, error) {
	var it registrationItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Registration{}, err
	}
	return fromRegistrationItem(it), nil
}

func toRegistrationItem(r entities.Registration) registrationItem {
	return registrationItem{
		ID:              r.ID,
		EventID:         r.EventID,
		CheckoutID:      r.CheckoutID,
		AttendeeUserID:  r.AttendeeUserID,
		CreatedByUserID: r.CreatedByUserID,
		CreatedByRole:   string(r.CreatedByRole),
		Status:          string(r.Status),
		Name:            r.Form.Name,
		CPF:             r.Form.CPF,
		Email:           r.Form.Email,
		Phone:           r.Form.Phone,
		Organization:    r.Form.Organization,
		JobTitle:        r.Form.JobTitle,
		CreatedAt:       formatTime(r.CreatedAt),
		UpdatedAt:       formatTime(r.UpdatedAt),
	}
}

func fromRegistrationItem(it registrationItem) entities.Registration {
	return entities.Registration{
		ID:              it.ID,
		EventID:         it.EventID,
		CheckoutID:      it.CheckoutID,
		AttendeeUserID:  it.AttendeeUserID,
		CreatedByUserID: it.CreatedByUserID,
		CreatedByRole:   entities.CreatorRole(it.CreatedByRole),
		Status:          entities.RegistrationStatus(it.Status),
		Form: entities.RegistrationForm{
			Name:         it.Name,
			CPF:          it.CPF,
			Email:        it.Email,
			Phone:        it.Phone,
			Organization: it.Organization,
			JobTitle:     it.JobTitle,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
