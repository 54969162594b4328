package s3

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB implements DDBClient over an in-memory version table.
type fakeDDB struct {
	rows map[string]map[uint64]string // set_name -> version -> blob_key
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{rows: make(map[string]map[uint64]string)}
}

func (f *fakeDDB) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	set := params.Item["set_name"].(*types.AttributeValueMemberS).Value
	version, _ := strconv.ParseUint(params.Item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
	key := params.Item["blob_key"].(*types.AttributeValueMemberS).Value

	if f.rows[set] == nil {
		f.rows[set] = make(map[uint64]string)
	}
	if _, exists := f.rows[set][version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.rows[set][version] = key
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	set := params.ExpressionAttributeValues[":n"].(*types.AttributeValueMemberS).Value

	versions := make([]uint64, 0, len(f.rows[set]))
	for v := range f.rows[set] {
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })
	newest := versions[0]

	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{{
			"set_name": &types.AttributeValueMemberS{Value: set},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(newest, 10)},
			"blob_key": &types.AttributeValueMemberS{Value: f.rows[set][newest]},
		}},
	}, nil
}

func TestVersionStorePublishAndLatest(t *testing.T) {
	ctx := context.Background()
	vs := NewVersionStore(newFakeDDB(), "versions", "samples")

	_, _, err := vs.Latest(ctx)
	assert.ErrorIs(t, err, ErrNoVersion)

	v, err := vs.Publish(ctx, "samples/1.snap")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = vs.Publish(ctx, "samples/2.snap")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	version, key, err := vs.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, "samples/2.snap", key)
}

// raceDDB makes another writer claim the next version between a reader's
// Query and its conditional PutItem.
type raceDDB struct {
	*fakeDDB
	raced bool
}

func (r *raceDDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	out, err := r.fakeDDB.Query(ctx, params, optFns...)
	if err == nil && !r.raced {
		r.raced = true
		// Competing writer lands version 1 first.
		r.rows["samples"] = map[uint64]string{1: "samples/other.snap"}
	}
	return out, err
}

func TestVersionStoreConcurrentPublish(t *testing.T) {
	ctx := context.Background()
	vs := NewVersionStore(&raceDDB{fakeDDB: newFakeDDB()}, "versions", "samples")

	_, err := vs.Publish(ctx, "samples/1.snap")
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestVersionStoreIsolatedSets(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()

	a := NewVersionStore(ddb, "versions", "alpha")
	b := NewVersionStore(ddb, "versions", "beta")

	_, err := a.Publish(ctx, "alpha/1.snap")
	require.NoError(t, err)

	_, _, err = b.Latest(ctx)
	assert.ErrorIs(t, err, ErrNoVersion)
}
