package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventos_inscricoes/internal/infrastructure/config"
)

func TestNewAWSConfig(t *testing.T) {
	t.Run("local defaults", func(t *testing.T) {
		cfg, err := NewAWSConfig(context.Background(), config.AWSConfig{})
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", cfg.Region)

		creds, err := cfg.Credentials.Retrieve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "local", creds.AccessKeyID)
		assert.Equal(t, "local", creds.SecretAccessKey)
	})

	t.Run("explicit settings", func(t *testing.T) {
		cfg, err := NewAWSConfig(context.Background(), config.AWSConfig{
			Region:           "sa-east-1",
			AccessKeyID:      "AKID",
			SecretAccessKey:  "SECRET",
			DynamoDBEndpoint: "http://localhost:8000",
		})
		require.NoError(t, err)
		assert.Equal(t, "sa-east-1", cfg.Region)

		creds, err := cfg.Credentials.Retrieve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "AKID", creds.AccessKeyID)
	})
}

func TestConnectDynamoDB(t *testing.T) {
	client, err := ConnectDynamoDB(context.Background(), config.AWSConfig{DynamoDBEndpoint: "http://localhost:8000"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
