package repository

import (
	"context"
	"fmt"
	"strconv"

	"eventos_inscricoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

// Positions of the actions inside a seat transaction.
const (
	seatActionVersion = iota
	seatActionRegistration
	seatActionAttendeeCheckout
)

// SeatLedgerDynamo commits seat-consuming registration writes together with a
// conditional bump of the buyer checkout's seat_version, so that two writers
// that counted the same quota cannot both succeed.
type SeatLedgerDynamo struct {
	ddb                dynamoAPI
	checkoutsTable     string
	registrationsTable string
}

var _ interfaces.ISeatLedger = (*SeatLedgerDynamo)(nil)

func NewSeatLedgerDynamo(ddb dynamoAPI, checkoutsTable, registrationsTable string) *SeatLedgerDynamo {
	return &SeatLedgerDynamo{
		ddb:                ddb,
		checkoutsTable:     checkoutsTable,
		registrationsTable: registrationsTable,
	}
}

func (l *SeatLedgerDynamo) Commit(ctx context.Context, change interfaces.SeatChange) error {
	input, err := l.transaction(change, nowString())
	if err != nil {
		return err
	}

	_, err = l.ddb.TransactWriteItems(ctx, input)
	if err == nil {
		log.WithFields(log.Fields{
			"checkout_id":     change.CheckoutID,
			"registration_id": change.Registration.ID,
			"seat_version":    change.ExpectedVersion + 1,
		}).Debug("[registration][ledger] seat change committed")
		return nil
	}

	failed, ok := cancelledAt(err)
	if !ok {
		return fmt.Errorf("commit seat change on checkout %s: %w", change.CheckoutID, err)
	}
	switch {
	case containsIndex(failed, seatActionVersion):
		return interfaces.ErrVersionConflict
	case containsIndex(failed, seatActionRegistration):
		if change.NewRegistration {
			return interfaces.ErrAlreadyExists
		}
		return interfaces.ErrVersionConflict
	case containsIndex(failed, seatActionAttendeeCheckout):
		return interfaces.ErrCheckoutOccupied
	}
	return fmt.Errorf("commit seat change on checkout %s: %w", change.CheckoutID, err)
}

func (l *SeatLedgerDynamo) transaction(change interfaces.SeatChange, now string) (*dynamodb.TransactWriteItemsInput, error) {
	versionCond := "attribute_exists(#id) AND #seat_version = :expected"
	if change.ExpectedVersion == 0 {
		versionCond = "attribute_exists(#id) AND (attribute_not_exists(#seat_version) OR #seat_version = :expected)"
	}

	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(l.checkoutsTable),
			Key:                 idKey(change.CheckoutID),
			ConditionExpression: aws.String(versionCond),
			UpdateExpression:    aws.String("SET #seat_version = :next, #updated_at = :updated_at"),
			ExpressionAttributeNames: map[string]string{
				"#id":           "id",
				"#seat_version": "seat_version",
				"#updated_at":   "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected":   &types.AttributeValueMemberN{Value: strconv.FormatInt(change.ExpectedVersion, 10)},
				":next":       &types.AttributeValueMemberN{Value: strconv.FormatInt(change.ExpectedVersion+1, 10)},
				":updated_at": &types.AttributeValueMemberS{Value: now},
			},
		}},
	}

	regAV, err := attributevalue.MarshalMap(toRegistrationItem(change.Registration))
	if err != nil {
		return nil, err
	}
	regCond := "attribute_exists(#id)"
	if change.NewRegistration {
		regCond = "attribute_not_exists(#id)"
	}
	items = append(items, types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(l.registrationsTable),
		Item:                     regAV,
		ConditionExpression:      aws.String(regCond),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}})

	if change.AttendeeCheckout != nil {
		chkAV, err := attributevalue.MarshalMap(toCheckoutItem(*change.AttendeeCheckout))
		if err != nil {
			return nil, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(l.checkoutsTable),
			Item:                     chkAV,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}})
	}

	return &dynamodb.TransactWriteItemsInput{TransactItems: items}, nil
}
