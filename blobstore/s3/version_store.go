package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentModification is returned when another writer published a
// version concurrently.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrNoVersion is returned when no version has been published yet.
var ErrNoVersion = errors.New("no published version")

// DDBClient is the interface for the DynamoDB operations the VersionStore
// performs. Satisfied by *dynamodb.Client.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// VersionStore tracks the latest published snapshot blob per vector set using
// DynamoDB conditional writes. S3 alone lacks the compare-and-swap needed for
// safe concurrent publishers; the version row supplies it.
//
// Table schema:
//   - Partition key: set_name (string)
//   - Sort key: version (number) - monotonically increasing
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name scriptvec-versions \
//	  --attribute-definitions AttributeName=set_name,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=set_name,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type VersionStore struct {
	client    DDBClient
	tableName string
	setName   string
}

// NewVersionStore creates a VersionStore for the given vector set.
func NewVersionStore(client DDBClient, tableName, setName string) *VersionStore {
	return &VersionStore{
		client:    client,
		tableName: tableName,
		setName:   setName,
	}
}

// Latest returns the newest published version and the blob key it points at.
func (s *VersionStore) Latest(ctx context.Context) (uint64, string, error) {
	version, key, ok, err := s.latest(ctx)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", ErrNoVersion
	}
	return version, key, nil
}

// Publish atomically records blobKey as the next version. It fails with
// ErrConcurrentModification when another writer claimed the same version
// number first.
func (s *VersionStore) Publish(ctx context.Context, blobKey string) (uint64, error) {
	current, _, _, err := s.latest(ctx)
	if err != nil {
		return 0, err
	}
	next := current + 1

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"set_name": &types.AttributeValueMemberS{Value: s.setName},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"blob_key": &types.AttributeValueMemberS{Value: blobKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("publish version: %w", err)
	}
	return next, nil
}

func (s *VersionStore) latest(ctx context.Context) (uint64, string, bool, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("set_name = :n"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberS{Value: s.setName},
		},
		ScanIndexForward: aws.Bool(false), // descending: newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", false, fmt.Errorf("query versions: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", false, nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", false, errors.New("invalid version attribute")
	}
	keyAttr, ok := item["blob_key"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", false, errors.New("invalid blob_key attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", false, fmt.Errorf("parse version: %w", err)
	}
	return version, keyAttr.Value, true, nil
}
