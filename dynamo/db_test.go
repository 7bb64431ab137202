package dynamo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	container "github.com/testcontainers/testcontainers-go/modules/dynamodb"
)

const tableName = "InfoTechDrafts-Test"

var (
	dynamoClient *dynamodb.Client
	db           *DB
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	endpoint, stop, err := startDynamo(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := connect(ctx, endpoint); err != nil {
		fmt.Println(err)
		stop(ctx)
		os.Exit(1)
	}

	code := m.Run()
	stop(ctx)
	os.Exit(code)
}

// startDynamo uses the dynamodb-local already running in CI, or starts one
// in a container.
func startDynamo(ctx context.Context) (string, func(context.Context), error) {
	if _, ok := os.LookupEnv("TEST_IN_CI"); ok {
		return "http://localhost:8000", func(context.Context) {}, nil
	}

	c, err := container.Run(ctx, "amazon/dynamodb-local")
	if err != nil {
		return "", nil, fmt.Errorf("error starting dynamo testcontainer: %w", err)
	}

	hostPort, err := c.Endpoint(ctx, "")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get endpoint: %w", err)
	}

	stop := func(ctx context.Context) {
		if err := c.Terminate(ctx); err != nil {
			fmt.Printf("error terminating dynamo testcontainer: %s\n", err)
		}
	}
	return "http://" + hostPort, stop, nil
}

func connect(ctx context.Context, endpoint string) error {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("localhost"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		return fmt.Errorf("error making dynamo config: %w", err)
	}

	dynamoClient = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	db = NewDB(dynamoClient, tableName)

	return db.EnsureTable(ctx)
}

// resetTable drops every draft so each test starts from an empty table.
func resetTable(ctx context.Context) {
	_, err := dynamoClient.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		fmt.Printf("failed to delete table: %s\n", err)
	}

	if err := db.EnsureTable(ctx); err != nil {
		fmt.Printf("failed to remake table: %s\n", err)
	}
}
