package storage

import (
	"context"
	"errors"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoSessionStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoSessionStorage) Get(ctx context.Context, id string) (*VotingSession, error) {
	session, _, err := getItem[VotingSession](ctx, s.Client, s.TableName, pkKey(id))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Log.Errorf("SESSION: GetItem for ID %s failed: %v", id, err)
		}
		return nil, err
	}
	return session, nil
}

// Create is a conditional put: when two requests race to open the same week, exactly one
// document wins and the loser gets ErrItemWithIDAlreadyExists.
func (s *DynamoSessionStorage) Create(ctx context.Context, session *VotingSession) error {
	session.Kind = kindSession
	session.Version = 1
	if err := putNew(ctx, s.Client, s.TableName, session); err != nil {
		if errors.Is(err, ErrItemWithIDAlreadyExists) {
			logging.Log.Infof("SESSION: session %s was created concurrently", session.ID)
			return err
		}
		logging.Log.Errorf("SESSION: failed to create session %s: %v", session.ID, err)
		return err
	}
	return nil
}

func (s *DynamoSessionStorage) ListRecent(ctx context.Context, limit int) ([]*VotingSession, error) {
	return s.query(ctx, "", nil, limit)
}

func (s *DynamoSessionStorage) ListActive(ctx context.Context) ([]*VotingSession, error) {
	return s.query(ctx, "#active = :active", &types.AttributeValueMemberBOOL{Value: true}, 0)
}

func (s *DynamoSessionStorage) ListClosed(ctx context.Context, limit int) ([]*VotingSession, error) {
	return s.query(ctx, "#active = :active", &types.AttributeValueMemberBOOL{Value: false}, limit)
}

func (s *DynamoSessionStorage) query(ctx context.Context, filter string, active types.AttributeValue, limit int) ([]*VotingSession, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(indexStartDate),
		KeyConditionExpression: aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#kind": "Kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kindSession},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
		input.ExpressionAttributeNames["#active"] = "Active"
		input.ExpressionAttributeValues[":active"] = active
	}

	sessions, err := queryItems[VotingSession](ctx, s.Client, input, limit)
	if err != nil {
		logging.Log.Errorf("SESSION: query failed: %v", err)
		return nil, err
	}
	return sessions, nil
}
