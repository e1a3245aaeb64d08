package repository

import (
	"context"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type priceBreakpointItem struct {
	MinQuantity int    `dynamodbav:"min_quantity"`
	Price       float64 `dynamodbav:"price"`
}

type eventItem struct {
	ID               string                `dynamodbav:"id"`
	Title            string                `dynamodbav:"title"`
	Status           string                `dynamodbav:"status"`
	PriceBreakpoints []priceBreakpointItem `dynamodbav:"price_breakpoints"`
	StartsAt         string                `dynamodbav:"starts_at"`
}

// EventDynamoRepository reads the event catalogue that the CMS mirrors into
// DynamoDB. This service never writes events.
//
// Table requirements:
//   - PK: id (string)

type EventDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IEventRepository = (*EventDynamoRepository)(nil)

func NewEventDynamoRepository(ddb dynamoAPI, tableName string) *EventDynamoRepository {
	return &EventDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *EventDynamoRepository) GetByID(ctx context.Context, id string) (entities.Event, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.Event{}, err
	}
	if len(out.Item) == 0 {
		return entities.Event{}, nil
	}

	var it eventItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Event{}, err
	}
	return fromEventItem(it), nil
}

func fromEventItem(it eventItem) entities.Event {
	e := entities.Event{
		ID:       it.ID,
		Title:    it.Title,
		Status:   entities.EventStatus(it.Status),
		StartsAt: parseTime(it.StartsAt),
	}
	for _, bp := range it.PriceBreakpoints {
		e.PriceBreakpoints = append(e.PriceBreakpoints, entities.PriceBreakpoint{
			MinQuantity: bp.MinQuantity,
			Price:       bp.Price,
		})
	}
	return e
}
