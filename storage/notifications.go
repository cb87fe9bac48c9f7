package storage

import (
	"context"
	"errors"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type DynamoNotificationStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoNotificationStorage) Create(ctx context.Context, n *Notification) error {
	if n.SortKey == "" {
		n.SortKey = NotificationSortKey(n.Timestamp, n.ID)
	}
	if err := putNew(ctx, s.Client, s.TableName, n); err != nil {
		logging.Log.Errorf("NOTIFICATION: failed to store notification for %s: %v", n.UserID, err)
		return err
	}
	return nil
}

func (s *DynamoNotificationStorage) ListByUser(ctx context.Context, userID string) ([]*Notification, error) {
	notifications, err := queryItems[Notification](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		KeyConditionExpression: aws.String("PK = :user"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}, 0)
	if err != nil {
		logging.Log.Errorf("NOTIFICATION: failed to list notifications for %s: %v", userID, err)
		return nil, err
	}
	return notifications, nil
}

// MarkRead looks the notification up by ID since the inbox is keyed by time.
func (s *DynamoNotificationStorage) MarkRead(ctx context.Context, userID, id string) error {
	inbox, err := s.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range inbox {
		if n.ID != id {
			continue
		}
		_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(s.TableName),
			Key:                 pkskKey(n.UserID, n.SortKey),
			UpdateExpression:    aws.String("SET #read = :val"),
			ConditionExpression: aws.String("attribute_exists(PK)"),
			ExpressionAttributeNames: map[string]string{
				"#read": "Read",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":val": &types.AttributeValueMemberBOOL{Value: true},
			},
		})
		if err != nil {
			var cce *types.ConditionalCheckFailedException
			if errors.As(err, &cce) {
				return ErrNotFound
			}
			logging.Log.Errorf("NOTIFICATION: failed to mark %s read: %v", id, err)
			return err
		}
		return nil
	}
	return ErrNotFound
}
