package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/draft"
)

// Drafts left untouched this long are removed by the table's TTL.
const draftTTL = 30 * 24 * time.Hour

const (
	ownerEntityName = "OWNER"
	draftEntityName = "DRAFT"
)

var _ draft.Store = &DraftStore{}

// DraftStore keeps one draft per owner, so a participant can pick the form
// up again on another device that shares the same owner id.
type DraftStore struct {
	db    *DB
	owner uuid.UUID
	now   func() time.Time
}

func (d *DB) Drafts(owner uuid.UUID) *DraftStore {
	return &DraftStore{
		db:    d,
		owner: owner,
		now:   time.Now,
	}
}

type draftDynamo struct {
	PK         string
	SK         string
	FullName   string
	College    string
	Department string
	Email      string
	Phone      string
	Member2    string
	Member3    string
	Member4    string
	Notes      string
	UpdatedAt  time.Time
	ExpiresAt  int64
}

func draftPK(owner uuid.UUID) string {
	return fmt.Sprintf("%s#%s", ownerEntityName, owner)
}

func draftSK() string {
	return fmt.Sprintf("%s#%s", draftEntityName, draft.Key)
}

func (s *DraftStore) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: draftPK(s.owner)},
		"SK": &types.AttributeValueMemberS{Value: draftSK()},
	}
}

func newDraftDynamo(owner uuid.UUID, d draft.Draft, now time.Time) draftDynamo {
	return draftDynamo{
		PK:         draftPK(owner),
		SK:         draftSK(),
		FullName:   d.FullName,
		College:    d.College,
		Department: d.Department,
		Email:      d.Email,
		Phone:      d.Phone,
		Member2:    d.Member2,
		Member3:    d.Member3,
		Member4:    d.Member4,
		Notes:      d.Notes,
		UpdatedAt:  now.UTC(),
		ExpiresAt:  now.Add(draftTTL).Unix(),
	}
}

func draftFromDraftDynamo(d draftDynamo) draft.Draft {
	return draft.Draft{
		FullName:   d.FullName,
		College:    d.College,
		Department: d.Department,
		Email:      d.Email,
		Phone:      d.Phone,
		Member2:    d.Member2,
		Member3:    d.Member3,
		Member4:    d.Member4,
		Notes:      d.Notes,
	}
}

// Save replaces the owner's draft. There is no version check: the last
// write wins.
func (s *DraftStore) Save(ctx context.Context, d draft.Draft) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	item, err := attributevalue.MarshalMap(newDraftDynamo(s.owner, d, s.now()))
	if err != nil {
		return draft.NewFailedToTranslateError("Failed to convert Draft to draftDynamo", err)
	}

	_, err = s.db.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.db.tableName),
		Item:      item,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return draft.NewTimeoutError("SaveDraft timed out")
		}
		return draft.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (s *DraftStore) Load(ctx context.Context) (draft.Draft, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	expr := exprMustBuild(expression.NewBuilder().
		WithProjection(expression.NamesList(
			expression.Name("FullName"),
			expression.Name("College"),
			expression.Name("Department"),
			expression.Name("Email"),
			expression.Name("Phone"),
			expression.Name("Member2"),
			expression.Name("Member3"),
			expression.Name("Member4"),
			expression.Name("Notes"),
		)))

	resp, err := s.db.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.db.tableName),
		Key:                      s.key(),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return draft.Draft{}, false, draft.NewTimeoutError("LoadDraft timed out")
		}
		return draft.Draft{}, false, draft.NewFailedToFetchError(fmt.Sprintf("Failed to fetch draft for owner %q", s.owner), err)
	}

	if len(resp.Item) == 0 {
		return draft.Draft{}, false, nil
	}

	var item draftDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &item)
	if err != nil {
		return draft.Draft{}, false, draft.NewFailedToTranslateError("Failed to convert draftDynamo to Draft", err)
	}

	return draftFromDraftDynamo(item), true, nil
}

func (s *DraftStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	_, err := s.db.dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.db.tableName),
		Key:       s.key(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return draft.NewTimeoutError("ClearDraft timed out")
		}
		return draft.NewFailedToDeleteError(fmt.Sprintf("Failed to delete draft for owner %q", s.owner), err)
	}

	return nil
}
