package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ReportSecrets holds the API credentials retrieved from Secrets Manager.
type ReportSecrets struct {
	IntercomToken string
	SlackBotToken string
}

// GetReportSecretsFromSecretsManager fetches the report credentials from AWS
// Secrets Manager. The secret should be a JSON object with intercomToken and
// slackBotToken fields; slackBotToken may be omitted when delivery is
// skipped.
func GetReportSecretsFromSecretsManager(ctx context.Context, logger *Logger, secretArn string) (*ReportSecrets, error) {
	// Extract region from secret ARN
	region, err := extractRegionFromSecretArn(secretArn)
	if err != nil {
		return nil, fmt.Errorf("failed to extract region from secret ARN: %w", err)
	}

	// Load AWS config with the region
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Errorf("Failed to load AWS config: %v", err)
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create Secrets Manager client
	client := secretsmanager.NewFromConfig(cfg)

	// Get secret value
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretArn),
	}

	result, err := client.GetSecretValue(ctx, input)
	if err != nil {
		logger.Errorf("Failed to retrieve secret from Secrets Manager: %v", err)
		return nil, fmt.Errorf("failed to retrieve secret from Secrets Manager: %w", err)
	}

	if result.SecretString == nil {
		return nil, fmt.Errorf("secret value is empty or not a string")
	}

	// Parse JSON secret value
	var secretValue map[string]any
	if err := json.Unmarshal([]byte(*result.SecretString), &secretValue); err != nil {
		logger.Errorf("Failed to parse secret JSON: %v", err)
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	intercomToken, _ := secretValue["intercomToken"].(string)
	slackBotToken, _ := secretValue["slackBotToken"].(string)

	if intercomToken == "" {
		return nil, fmt.Errorf("secret must contain intercomToken as a non-empty string")
	}

	logger.Debugf("Successfully retrieved report credentials from Secrets Manager")

	return &ReportSecrets{
		IntercomToken: intercomToken,
		SlackBotToken: slackBotToken,
	}, nil
}

// extractRegionFromSecretArn extracts AWS region from Secrets Manager ARN
// Format: arn:aws:secretsmanager:REGION:ACCOUNT:secret:NAME
func extractRegionFromSecretArn(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) < 4 || parts[0] != "arn" || parts[1] != "aws" || parts[2] != "secretsmanager" {
		return "", fmt.Errorf("invalid Secrets Manager ARN format: %s", arn)
	}
	return parts[3], nil
}
