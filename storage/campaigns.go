package storage

import (
	"context"
	"errors"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoCampaignStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoCampaignStorage) Get(ctx context.Context, id string) (*Campaign, error) {
	campaign, _, err := getItem[Campaign](ctx, s.Client, s.TableName, pkKey(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.Log.Warnf("CAMPAIGN: no campaign found with ID %s", id)
			return nil, err
		}
		logging.Log.Errorf("CAMPAIGN: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	return campaign, nil
}

func (s *DynamoCampaignStorage) Create(ctx context.Context, campaign *Campaign) error {
	campaign.Version = 1
	if err := putNew(ctx, s.Client, s.TableName, campaign); err != nil {
		if errors.Is(err, ErrItemWithIDAlreadyExists) {
			logging.Log.Warnf("CAMPAIGN: item with ID %s already exists", campaign.ID)
			return err
		}
		logging.Log.Errorf("CAMPAIGN: failed to create campaign: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCampaignStorage) Update(ctx context.Context, campaign *Campaign) error {
	expected := campaign.Version
	campaign.Version++
	if err := putVersioned(ctx, s.Client, s.TableName, campaign, expected); err != nil {
		campaign.Version = expected
		logging.Log.Errorf("CAMPAIGN: failed to update campaign %s: %v", campaign.ID, err)
		return err
	}
	return nil
}

func (s *DynamoCampaignStorage) ListByStatus(ctx context.Context, status CampaignStatus) ([]*Campaign, error) {
	campaigns, err := queryItems[Campaign](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(indexCampaignStatus),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}, 0)
	if err != nil {
		logging.Log.Errorf("CAMPAIGN: failed to query campaigns by status %s: %v", status, err)
		return nil, err
	}
	return campaigns, nil
}

func (s *DynamoCampaignStorage) ListByOrganizer(ctx context.Context, organizerID string) ([]*Campaign, error) {
	campaigns, err := queryItems[Campaign](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(indexCampaignOrganizer),
		KeyConditionExpression: aws.String("OrganizerID = :organizer"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":organizer": &types.AttributeValueMemberS{Value: organizerID},
		},
	}, 0)
	if err != nil {
		logging.Log.Errorf("CAMPAIGN: failed to query campaigns for organizer %s: %v", organizerID, err)
		return nil, err
	}
	return campaigns, nil
}
