package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/dynamo"
	"github.com/infotech-symposium/event-registration/sqlite"
)

const (
	ownerFileName  = "owner-id"
	sqliteFileName = "drafts.db"
)

// createDraftStore picks the draft backend. The returned func releases
// whatever the backend holds open.
func createDraftStore(ctx context.Context, logger *slog.Logger, cfg Config) (draft.Store, func(), error) {
	switch cfg.DraftBackend {
	case draftBackendSQLite:
		if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		path := filepath.Join(cfg.ConfigDir, sqliteFileName)
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using SQLite drafts", slog.String("path", path))
		return db.Drafts(), func() { db.Close() }, nil

	case draftBackendDynamo:
		owner, err := loadOrCreateOwnerID(cfg.ConfigDir)
		if err != nil {
			return nil, nil, err
		}

		db, err := createDynamoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Env == api.LOCAL {
			if err := db.EnsureTable(ctx); err != nil {
				return nil, nil, err
			}
		}

		logger.Debug("Using DynamoDB drafts", slog.String("table", cfg.DraftTable), slog.String("owner", owner.String()))
		return db.Drafts(owner), func() {}, nil

	default:
		return draft.NewFileStore(cfg.ConfigDir), func() {}, nil
	}
}

func createDynamoDB(ctx context.Context, cfg Config) (*dynamo.DB, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Env == api.LOCAL {
		opts = append(opts,
			config.WithRegion("localhost"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		} else if cfg.Env == api.LOCAL {
			o.BaseEndpoint = aws.String("http://localhost:8000")
		}
	})

	return dynamo.NewDB(client, cfg.DraftTable), nil
}

// loadOrCreateOwnerID returns the id that ties this device's drafts
// together. Copy the owner-id file to another device to share drafts.
func loadOrCreateOwnerID(dir string) (uuid.UUID, error) {
	path := filepath.Join(dir, ownerFileName)

	data, err := os.ReadFile(path)
	if err == nil {
		id, err := uuid.Parse(strings.TrimSpace(string(data)))
		if err != nil {
			return uuid.Nil, fmt.Errorf("owner id file %q is corrupt: %w", path, err)
		}
		return id, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return uuid.Nil, fmt.Errorf("failed to read owner id: %w", err)
	}

	id := uuid.New()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0o600); err != nil {
		return uuid.Nil, fmt.Errorf("failed to write owner id: %w", err)
	}
	return id, nil
}
