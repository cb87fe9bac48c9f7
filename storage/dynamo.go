package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoClient is the subset of *dynamodb.Client the storage layer uses.
type DynamoClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

type TableNames struct {
	Campaigns     string
	Donations     string
	Votes         string
	Sessions      string
	Reports       string
	Notifications string
}

const (
	indexCampaignStatus    = "StatusIndex"
	indexCampaignOrganizer = "OrganizerIndex"
	indexDonationUser      = "UserIndex"
	indexDonationSession   = "VotingSessionIndex"
	indexStartDate         = "StartDateIndex"
)

func pkKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
	}
}

func pkskKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func getItem[T any](ctx context.Context, client DynamoClient, table string, key map[string]types.AttributeValue) (*T, int64, error) {
	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, err
	}
	if out.Item == nil {
		return nil, 0, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, 0, err
	}
	var version int64
	if v, ok := out.Item["Version"]; ok {
		if err := attributevalue.Unmarshal(v, &version); err != nil {
			return nil, 0, err
		}
	}
	return &item, version, nil
}

// queryItems pages through a query until limit items were collected (limit <= 0: all pages).
// Filter expressions are applied per page, so a page can come back short.
func queryItems[T any](ctx context.Context, client DynamoClient, input *dynamodb.QueryInput, limit int) ([]*T, error) {
	var result []*T
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []*T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		result = append(result, items...)
		if limit > 0 && len(result) >= limit {
			return result[:limit], nil
		}
	}
	return result, nil
}

// putNew writes item only if no item with the same key exists.
func putNew(ctx context.Context, client DynamoClient, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrItemWithIDAlreadyExists
		}
		return err
	}
	return nil
}

// putVersioned replaces item only if its stored Version still equals expected.
func putVersioned(ctx context.Context, client DynamoClient, table string, item any, expected int64) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("#version = :v"),
		ExpressionAttributeNames: map[string]string{
			"#version": "Version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": versionValue(expected),
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// EnsureTables creates any missing table with its secondary indexes. Used for local runs
// and integration tests; deployed tables are provisioned outside the service.
func EnsureTables(ctx context.Context, client *dynamodb.Client, names TableNames) error {
	waiter := dynamodb.NewTableExistsWaiter(client)
	for _, def := range tableDefinitions(names) {
		_, err := client.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				logging.Log.Debugf("STORAGE: table %s already exists", aws.ToString(def.TableName))
				continue
			}
			logging.Log.Errorf("STORAGE: failed to create table %s: %v", aws.ToString(def.TableName), err)
			return err
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, 2*time.Minute); err != nil {
			return err
		}
		logging.Log.Infof("STORAGE: created table %s", aws.ToString(def.TableName))
	}
	return nil
}

func tableDefinitions(names TableNames) []*dynamodb.CreateTableInput {
	attr := func(name string, t types.ScalarAttributeType) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: t}
	}
	hash := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
	}
	rng := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeRange}
	}
	gsi := func(name string, keys ...types.KeySchemaElement) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  keys,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}
	table := func(name string, attrs []types.AttributeDefinition, keys []types.KeySchemaElement, indexes ...types.GlobalSecondaryIndex) *dynamodb.CreateTableInput {
		in := &dynamodb.CreateTableInput{
			TableName:            aws.String(name),
			AttributeDefinitions: attrs,
			KeySchema:            keys,
			BillingMode:          types.BillingModePayPerRequest,
		}
		if len(indexes) > 0 {
			in.GlobalSecondaryIndexes = indexes
		}
		return in
	}

	return []*dynamodb.CreateTableInput{
		table(names.Campaigns,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("Status", types.ScalarAttributeTypeS), attr("OrganizerID", types.ScalarAttributeTypeS)},
			[]types.KeySchemaElement{hash("PK")},
			gsi(indexCampaignStatus, hash("Status")),
			gsi(indexCampaignOrganizer, hash("OrganizerID")),
		),
		table(names.Donations,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("UserID", types.ScalarAttributeTypeS), attr("VotingSessionID", types.ScalarAttributeTypeS)},
			[]types.KeySchemaElement{hash("PK")},
			gsi(indexDonationUser, hash("UserID")),
			gsi(indexDonationSession, hash("VotingSessionID")),
		),
		table(names.Votes,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("SK", types.ScalarAttributeTypeS)},
			[]types.KeySchemaElement{hash("PK"), rng("SK")},
		),
		table(names.Sessions,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("Kind", types.ScalarAttributeTypeS), attr("StartDate", types.ScalarAttributeTypeN)},
			[]types.KeySchemaElement{hash("PK")},
			gsi(indexStartDate, hash("Kind"), rng("StartDate")),
		),
		table(names.Reports,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("Kind", types.ScalarAttributeTypeS), attr("StartDate", types.ScalarAttributeTypeN)},
			[]types.KeySchemaElement{hash("PK")},
			gsi(indexStartDate, hash("Kind"), rng("StartDate")),
		),
		table(names.Notifications,
			[]types.AttributeDefinition{attr("PK", types.ScalarAttributeTypeS), attr("SK", types.ScalarAttributeTypeS)},
			[]types.KeySchemaElement{hash("PK"), rng("SK")},
		),
	}
}

func versionValue(v int64) types.AttributeValue {
	av, _ := attributevalue.Marshal(v)
	return av
}
