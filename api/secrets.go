package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the part of the Secrets Manager client used to load the admin token.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var errEmptyAdminToken = errors.New("admin token is empty")

// resolveAdminToken returns the token admin routes compare against.
func resolveAdminToken(ctx context.Context, client SecretsManagerAPI, conf AdminConfig) (string, error) {
	if conf.AdminTokenSecretID == "" {
		if conf.AdminToken == "" {
			return "", errEmptyAdminToken
		}
		return conf.AdminToken, nil
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(conf.AdminTokenSecretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", conf.AdminTokenSecretID, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return "", fmt.Errorf("secret %s: %w", conf.AdminTokenSecretID, errEmptyAdminToken)
	}
	logging.Log.Infof("ADMIN: loaded admin token from secret %s", conf.AdminTokenSecretID)
	return *out.SecretString, nil
}
