package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoDB.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDB is a RecordStore backed by a table whose partition key is IDField.
// Numbers read back as float64.
type DynamoDB struct {
	client DynamoDBAPI
	table  string
}

// NewDynamoDB wraps a DynamoDB client for the given table.
func NewDynamoDB(client DynamoDBAPI, table string) *DynamoDB {
	return &DynamoDB{client: client, table: table}
}

func (d *DynamoDB) key(id string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		IDField: &ddbtypes.AttributeValueMemberS{Value: id},
	}
}

// CreateRecord puts rec on the condition that no item with the same
// identifier exists.
func (d *DynamoDB) CreateRecord(ctx context.Context, rec Record) error {
	id, err := rec.ID()
	if err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(d.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": IDField},
	})
	if err != nil {
		var ccf *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: %s", ErrConflict, id)
		}
		return fmt.Errorf("storage: dynamodb put %s: %w", id, err)
	}
	return nil
}

// GetRecord fetches the item stored under id.
func (d *DynamoDB) GetRecord(ctx context.Context, id string) (Record, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       d.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: dynamodb get %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	return decodeItem(id, out.Item)
}

// DeleteRecord removes the item stored under id and returns its old value.
func (d *DynamoDB) DeleteRecord(ctx context.Context, id string) (Record, error) {
	out, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(d.table),
		Key:          d.key(id),
		ReturnValues: ddbtypes.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: dynamodb delete %s: %w", id, err)
	}
	if len(out.Attributes) == 0 {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	return decodeItem(id, out.Attributes)
}

func decodeItem(id string, item map[string]ddbtypes.AttributeValue) (Record, error) {
	var rec Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("storage: decode record %s: %w", id, err)
	}
	return rec, nil
}
