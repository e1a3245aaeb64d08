package repository

import (
	"context"
	"fmt"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type attachmentItem struct {
	FileName    string `dynamodbav:"file_name"`
	ContentType string `dynamodbav:"content_type"`
	StoragePath string `dynamodbav:"storage_path"`
	Size        int64  `dynamodbav:"size"`
	UploadedAt  string `dynamodbav:"uploaded_at"`
}

type paymentItem struct {
	Method            string          `dynamodbav:"method"`
	Status            string          `dynamodbav:"status"`
	Value             string          `dynamodbav:"value"`
	Commitment        *attachmentItem `dynamodbav:"commitment,omitempty"`
	PaymentProof      *attachmentItem `dynamodbav:"payment_proof,omitempty"`
	Invoice           *attachmentItem `dynamodbav:"invoice,omitempty"`
	ProviderPaymentID string          `dynamodbav:"provider_payment_id,omitempty"`
	ProviderStatus    string          `dynamodbav:"provider_status,omitempty"`
	PaidAt            string          `dynamodbav:"paid_at,omitempty"`
	UpdatedAt         string          `dynamodbav:"updated_at"`
}

type billingDetailsItem struct {
	Name          string `dynamodbav:"name"`
	Email         string `dynamodbav:"email"`
	Document      string `dynamodbav:"document"`
	Phone         string `dynamodbav:"phone,omitempty"`
	Organization  string `dynamodbav:"organization,omitempty"`
	PaymentMethod string `dynamodbav:"payment_method"`
}

type checkoutItem struct {
	ID               string              `dynamodbav:"id"`
	Type             string              `dynamodbav:"type"`
	Status           string              `dynamodbav:"status"`
	UserID           string              `dynamodbav:"user_id"`
	EventID          string              `dynamodbav:"event_id"`
	Amount           int                 `dynamodbav:"amount"`
	Complimentary    int                 `dynamodbav:"complimentary"`
	TotalValue       string              `dynamodbav:"total_value"`
	RegistrateMyself bool                `dynamodbav:"registrate_myself"`
	VoucherID        string              `dynamodbav:"voucher_id,omitempty"`
	Payment          *paymentItem        `dynamodbav:"payment,omitempty"`
	BillingDetails   *billingDetailsItem `dynamodbav:"billing_details,omitempty"`
	PreviousStatus   string              `dynamodbav:"previous_status,omitempty"`
	SeatVersion      int64               `dynamodbav:"seat_version"`
	CreatedAt        string              `dynamodbav:"created_at"`
	UpdatedAt        string              `dynamodbav:"updated_at"`
	DeletedAt        string              `dynamodbav:"deleted_at,omitempty"`
}

// CheckoutDynamoRepository persists Checkout entities in DynamoDB.
//
// Table requirements (both tables):
//   - PK: id (string)
//
// Soft-deleted checkouts are moved to a second table so that scans and
// lookups of the live table never see them.

type CheckoutDynamoRepository struct {
	ddb          dynamoAPI
	tableName    string
	deletedTable string
}

var _ interfaces.ICheckoutRepository = (*CheckoutDynamoRepository)(nil)

func NewCheckoutDynamoRepository(ddb dynamoAPI, tableName, deletedTable string) *CheckoutDynamoRepository {
	return &CheckoutDynamoRepository{
		ddb:          ddb,
		tableName:    tableName,
		deletedTable: deletedTable,
	}
}

func (r *CheckoutDynamoRepository) Create(ctx context.Context, c entities.Checkout) (entities.Checkout, error) {
	av, err := attributevalue.MarshalMap(toCheckoutItem(c))
	if err != nil {
		return entities.Checkout{}, err
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
			return entities.Checkout{}, interfaces.ErrAlreadyExists
		}
		return entities.Checkout{}, err
	}
	return c, nil
}

func (r *CheckoutDynamoRepository) GetByID(ctx context.Context, id string) (entities.Checkout, error) {
	return r.get(ctx, r.tableName, id)
}

func (r *CheckoutDynamoRepository) GetDeletedByID(ctx context.Context, id string) (entities.Checkout, error) {
	return r.get(ctx, r.deletedTable, id)
}

func (r *CheckoutDynamoRepository) get(ctx context.Context, table, id string) (entities.Checkout, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Checkout{}, err
	}
	if len(out.Item) == 0 {
		return entities.Checkout{}, nil
	}
	return unmarshalCheckout(out.Item)
}

// UpdateStatus moves a live checkout from one status to another. It returns
// ErrVersionConflict when the stored status is no longer from, and a zero
// Checkout when the document does not exist.
func (r *CheckoutDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.CheckoutStatus) (entities.Checkout, error) {
	return r.update(ctx, id, "#status = :from", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *CheckoutDynamoRepository) UpdatePayment(ctx context.Context, id string, payment entities.Payment) (entities.Checkout, error) {
	pav, err := attributevalue.Marshal(toPaymentItem(payment))
	if err != nil {
		return entities.Checkout{}, err
	}
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment = :payment, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":payment":    pav,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment":    "payment",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// SoftDelete moves the checkout into the deleted table, remembering its
// status so a restore can bring it back. The live document must still carry
// c.Status and c.UpdatedAt, otherwise ErrVersionConflict is returned: the
// archived copy is c itself, so any write since c was read would be lost.
func (r *CheckoutDynamoRepository) SoftDelete(ctx context.Context, c entities.Checkout) (entities.Checkout, error) {
	cond := "attribute_exists(#id) AND #status = :status AND #updated_at = :read_updated_at"
	if c.UpdatedAt.IsZero() {
		cond = "attribute_exists(#id) AND #status = :status AND (attribute_not_exists(#updated_at) OR #updated_at = :read_updated_at)"
	}
	now := nowString()
	deleted := c
	deleted.PreviousStatus = c.Status
	deleted.Status = entities.CheckoutStatusDeleted
	deleted.UpdatedAt = parseTime(now)
	deleted.DeletedAt = parseTimePtr(now)

	av, err := attributevalue.MarshalMap(toCheckoutItem(deleted))
	if err != nil {
		return entities.Checkout{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName:           aws.String(r.tableName),
				Key:                 idKey(c.ID),
				ConditionExpression: aws.String(cond),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#status":     "status",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status":          &types.AttributeValueMemberS{Value: string(c.Status)},
					":read_updated_at": &types.AttributeValueMemberS{Value: formatTime(c.UpdatedAt)},
				},
			}},
			{Put: &types.Put{
				TableName: aws.String(r.deletedTable),
				Item:      av,
			}},
		},
	})
	if err != nil {
		if failed, ok := cancelledAt(err); ok && containsIndex(failed, 0) {
			return entities.Checkout{}, interfaces.ErrVersionConflict
		}
		return entities.Checkout{}, fmt.Errorf("soft delete checkout %s: %w", c.ID, err)
	}
	return deleted, nil
}

// Restore moves a deleted checkout back to the live table with status.
// ErrAlreadyExists is returned, and nothing written, when a live document
// occupies the id. A zero Checkout means the deleted document vanished.
func (r *CheckoutDynamoRepository) Restore(ctx context.Context, deleted entities.Checkout, status entities.CheckoutStatus) (entities.Checkout, error) {
	now := nowString()
	restored := deleted
	restored.Status = status
	restored.PreviousStatus = ""
	restored.DeletedAt = nil
	restored.UpdatedAt = parseTime(now)

	av, err := attributevalue.MarshalMap(toCheckoutItem(restored))
	if err != nil {
		return entities.Checkout{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			}},
			{Delete: &types.Delete{
				TableName:           aws.String(r.deletedTable),
				Key:                 idKey(deleted.ID),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#id": "id",
				},
			}},
		},
	})
	if err != nil {
		if failed, ok := cancelledAt(err); ok {
			if containsIndex(failed, 0) {
				return entities.Checkout{}, interfaces.ErrAlreadyExists
			}
			if containsIndex(failed, 1) {
				return entities.Checkout{}, nil
			}
		}
		return entities.Checkout{}, fmt.Errorf("restore checkout %s: %w", deleted.ID, err)
	}
	return restored, nil
}

// ListByStatus scans the live table. It is meant for batch jobs only.
func (r *CheckoutDynamoRepository) ListByStatus(ctx context.Context, status entities.CheckoutStatus) ([]entities.Checkout, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})

	var out []entities.Checkout
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			c, err := unmarshalCheckout(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// update applies an UpdateItem to an existing live document. cond, when set,
// is and-ed with the existence check; its failure on an existing document is
// reported as ErrVersionConflict.
func (r *CheckoutDynamoRepository) update(
	ctx context.Context,
	id string,
	cond string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Checkout, error) {
	updateExpr, values, names := build(nowString())

	condition := "attribute_exists(#id)"
	if cond != "" {
		condition += " AND " + cond
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 idKey(id),
		ConditionExpression:                 aws.String(condition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if cfe, ok := isConditionalCheckFailed(err); ok {
			if len(cfe.Item) == 0 {
				return entities.Checkout{}, nil
			}
			return entities.Checkout{}, interfaces.ErrVersionConflict
		}
		return entities.Checkout{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Checkout{}, nil
	}
	return unmarshalCheckout(out.Attributes)
}

func unmarshalCheckout(raw map[string]types.AttributeValue) (entities.Checkout, error) {
	var it checkoutItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Checkout{}, err
	}
	return fromCheckoutItem(it), nil
}

func toCheckoutItem(c entities.Checkout) checkoutItem {
	it := checkoutItem{
		ID:               c.ID,
		Type:             string(c.Type),
		Status:           string(c.Status),
		UserID:           c.UserID,
		EventID:          c.EventID,
		Amount:           c.Amount,
		Complimentary:    c.Complimentary,
		TotalValue:       floatToString(c.TotalValue),
		RegistrateMyself: c.RegistrateMyself,
		VoucherID:        c.VoucherID,
		PreviousStatus:   string(c.PreviousStatus),
		SeatVersion:      c.SeatVersion,
		CreatedAt:        formatTime(c.CreatedAt),
		UpdatedAt:        formatTime(c.UpdatedAt),
		DeletedAt:        formatTimePtr(c.DeletedAt),
	}
	if c.Payment != nil {
		p := toPaymentItem(*c.Payment)
		it.Payment = &p
	}
	if b := c.BillingDetails; b != nil {
		it.BillingDetails = &billingDetailsItem{
			Name:          b.Name,
			Email:         b.Email,
			Document:      b.Document,
			Phone:         b.Phone,
			Organization:  b.Organization,
			PaymentMethod: string(b.PaymentMethod),
		}
	}
	return it
}

func fromCheckoutItem(it checkoutItem) entities.Checkout {
	c := entities.Checkout{
		ID:               it.ID,
		Type:             entities.CheckoutType(it.Type),
		Status:           entities.CheckoutStatus(it.Status),
		UserID:           it.UserID,
		EventID:          it.EventID,
		Amount:           it.Amount,
		Complimentary:    it.Complimentary,
		TotalValue:       parseFloat(it.TotalValue),
		RegistrateMyself: it.RegistrateMyself,
		VoucherID:        it.VoucherID,
		PreviousStatus:   entities.CheckoutStatus(it.PreviousStatus),
		SeatVersion:      it.SeatVersion,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
		DeletedAt:        parseTimePtr(it.DeletedAt),
	}
	if it.Payment != nil {
		p := fromPaymentItem(*it.Payment)
		c.Payment = &p
	}
	if b := it.BillingDetails; b != nil {
		c.BillingDetails = &entities.BillingDetails{
			Name:          b.Name,
			Email:         b.Email,
			Document:      b.Document,
			Phone:         b.Phone,
			Organization:  b.Organization,
			PaymentMethod: entities.PaymentMethod(b.PaymentMethod),
		}
	}
	return c
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		Method:            string(p.Method),
		Status:            string(p.Status),
		Value:             floatToString(p.Value),
		Commitment:        toAttachmentItem(p.Commitment),
		PaymentProof:      toAttachmentItem(p.PaymentProof),
		Invoice:           toAttachmentItem(p.Invoice),
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		PaidAt:            formatTimePtr(p.PaidAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		Method:            entities.PaymentMethod(it.Method),
		Status:            entities.PaymentStatus(it.Status),
		Value:             parseFloat(it.Value),
		Commitment:        fromAttachmentItem(it.Commitment),
		PaymentProof:      fromAttachmentItem(it.PaymentProof),
		Invoice:           fromAttachmentItem(it.Invoice),
		ProviderPaymentID: it.ProviderPaymentID,
		ProviderStatus:    it.ProviderStatus,
		PaidAt:            parseTimePtr(it.PaidAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}

func toAttachmentItem(a *entities.Attachment) *attachmentItem {
	if a == nil {
		return nil
	}
	return &attachmentItem{
		FileName:    a.FileName,
		ContentType: a.ContentType,
		StoragePath: a.StoragePath,
		Size:        a.Size,
		UploadedAt:  formatTime(a.UploadedAt),
	}
}

func fromAttachmentItem(it *attachmentItem) *entities.Attachment {
	if it == nil {
		return nil
	}
	return &entities.Attachment{
		FileName:    it.FileName,
		ContentType: it.ContentType,
		StoragePath: it.StoragePath,
		Size:        it.Size,
		UploadedAt:  parseTime(it.UploadedAt),
	}
}
