package storage

import (
	"context"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Reports are only ever written by the settlement transaction.
type DynamoReportStorage struct {
	Client    DynamoClient
	TableName string
}

func (s *DynamoReportStorage) Get(ctx context.Context, id string) (*WeeklyReport, error) {
	report, _, err := getItem[WeeklyReport](ctx, s.Client, s.TableName, pkKey(id))
	if err != nil {
		logging.Log.Warnf("REPORT: get %s failed: %v", id, err)
		return nil, err
	}
	return report, nil
}

func (s *DynamoReportStorage) ListRecent(ctx context.Context, limit int) ([]*WeeklyReport, error) {
	reports, err := queryItems[WeeklyReport](ctx, s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(indexStartDate),
		KeyConditionExpression: aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#kind": "Kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kindReport},
		},
		ScanIndexForward: aws.Bool(false),
	}, limit)
	if err != nil {
		logging.Log.Errorf("REPORT: query failed: %v", err)
		return nil, err
	}
	return reports, nil
}
