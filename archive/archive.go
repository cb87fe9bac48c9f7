package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/ITCS-6112-Dilio/dilio/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultPrefix = "reports"

// S3API is the subset of *s3.Client used to upload reports.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver stores each weekly report as JSON at <prefix>/<report id>.json.
type S3Archiver struct {
	Client S3API
	Bucket string
	Prefix string
}

func NewS3Archiver(client S3API, bucket, prefix string) *S3Archiver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &S3Archiver{Client: client, Bucket: bucket, Prefix: prefix}
}

func (a *S3Archiver) Key(reportID string) string {
	return path.Join(a.Prefix, reportID+".json")
}

func (a *S3Archiver) Archive(ctx context.Context, report *storage.WeeklyReport) error {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.ID, err)
	}

	key := a.Key(report.ID)
	_, err = a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", a.Bucket, key, err)
	}

	logging.Log.Infof("ARCHIVE: stored report %s at s3://%s/%s", report.ID, a.Bucket, key)
	return nil
}
