package storage

import (
	"context"
	"sort"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoDonationStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoDonationStorage) Get(ctx context.Context, id string) (*Donation, error) {
	donation, _, err := getItem[Donation](ctx, s.Client, s.TableName, pkKey(id))
	if err != nil {
		logging.Log.Warnf("DONATION: get %s failed: %v", id, err)
		return nil, err
	}
	return donation, nil
}

func (s *DynamoDonationStorage) ListByUser(ctx context.Context, userID string) ([]*Donation, error) {
	donations, err := queryItems[Donation](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(indexDonationUser),
		KeyConditionExpression: aws.String("UserID = :user"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		},
	}, 0)
	if err != nil {
		logging.Log.Errorf("DONATION: failed to query donations for user %s: %v", userID, err)
		return nil, err
	}
	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].Timestamp.After(donations[j].Timestamp)
	})
	return donations, nil
}

func (s *DynamoDonationStorage) ListBySession(ctx context.Context, sessionID string) ([]*Donation, error) {
	donations, err := querySessionDonations(ctx, s.Client, s.TableName, sessionID)
	if err != nil {
		logging.Log.Errorf("DONATION: failed to query donations for session %s: %v", sessionID, err)
		return nil, err
	}
	return donations, nil
}

func querySessionDonations(ctx context.Context, client DynamoClient, table, sessionID string) ([]*Donation, error) {
	return queryItems[Donation](ctx, client, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(indexDonationSession),
		KeyConditionExpression: aws.String("VotingSessionID = :session"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":session": &types.AttributeValueMemberS{Value: sessionID},
		},
	}, 0)
}
