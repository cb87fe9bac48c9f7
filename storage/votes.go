package storage

import (
	"context"
	"errors"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Votes are keyed by (session, user), so a user holds at most one vote per session.
type DynamoVoteStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoVoteStorage) Get(ctx context.Context, sessionID, userID string) (*Vote, error) {
	vote, _, err := getItem[Vote](ctx, s.Client, s.TableName, pkskKey(sessionID, userID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("VOTE: failed to get vote of %s in session %s: %v", userID, sessionID, err)
		return nil, err
	}
	return vote, nil
}

func (s *DynamoVoteStorage) ListBySession(ctx context.Context, sessionID string) ([]*Vote, error) {
	votes, err := queryItems[Vote](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		KeyConditionExpression: aws.String("PK = :session"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":session": &types.AttributeValueMemberS{Value: sessionID},
		},
	}, 0)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to query votes for session %s: %v", sessionID, err)
		return nil, err
	}
	return votes, nil
}
