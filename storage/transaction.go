package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ITCS-6112-Dilio/dilio/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMaxAttempts = 5
	// TransactWriteItems accepts at most 100 actions.
	maxTransactItems = 100
)

// DynamoTransactor implements optimistic transactions on top of TransactWriteItems.
// Every document read inside a transaction is pinned to the Version it had when read:
// written documents carry a Version condition on their Put/Delete, read-only documents
// get a ConditionCheck. A cancelled commit re-runs the whole function.
type DynamoTransactor struct {
	Client      DynamoClient
	Tables      TableNames
	MaxAttempts int
	// Backoff is the base delay between attempts; jitter is added on top.
	Backoff time.Duration
}

func (t *DynamoTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	attempts := t.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	backoff := t.Backoff
	if backoff <= 0 {
		backoff = 25 * time.Millisecond
	}

	for attempt := 1; ; attempt++ {
		tx := &dynamoTx{
			client: t.Client,
			tables: t.Tables,
			seen:   make(map[itemRef]int64),
			writes: make(map[itemRef]types.TransactWriteItem),
		}
		if err := fn(ctx, tx); err != nil {
			return err
		}

		err := tx.commit(ctx)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			logging.Log.Errorf("TX: commit failed: %v", err)
			return err
		}
		if attempt >= attempts {
			logging.Log.Warnf("TX: giving up after %d conflicting attempts", attempt)
			return fmt.Errorf("%w: %d attempts", ErrConflict, attempt)
		}

		logging.Log.Debugf("TX: conflict on attempt %d, retrying", attempt)
		delay := backoff*time.Duration(attempt) + time.Duration(rand.Int64N(int64(backoff)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func isConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		var tc *types.TransactionConflictException
		return errors.As(err, &tc)
	}
	for _, reason := range tce.CancellationReasons {
		switch aws.ToString(reason.Code) {
		case "ConditionalCheckFailed", "TransactionConflict":
			return true
		}
	}
	return false
}

type itemRef struct {
	table string
	pk    string
	sk    string
}

func (r itemRef) key() map[string]types.AttributeValue {
	if r.sk != "" {
		return pkskKey(r.pk, r.sk)
	}
	return pkKey(r.pk)
}

type dynamoTx struct {
	client DynamoClient
	tables TableNames
	// Version observed per document; 0 means the document did not exist.
	seen   map[itemRef]int64
	order  []itemRef
	writes map[itemRef]types.TransactWriteItem
	err    error
}

func (tx *dynamoTx) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	return txGet[Campaign](ctx, tx, itemRef{table: tx.tables.Campaigns, pk: id})
}

func (tx *dynamoTx) GetSession(ctx context.Context, id string) (*VotingSession, error) {
	return txGet[VotingSession](ctx, tx, itemRef{table: tx.tables.Sessions, pk: id})
}

func (tx *dynamoTx) GetDonation(ctx context.Context, id string) (*Donation, error) {
	return txGet[Donation](ctx, tx, itemRef{table: tx.tables.Donations, pk: id})
}

func (tx *dynamoTx) GetVote(ctx context.Context, sessionID, userID string) (*Vote, error) {
	vote, err := txGet[Vote](ctx, tx, itemRef{table: tx.tables.Votes, pk: sessionID, sk: userID})
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return vote, err
}

// SessionDonations reads the session index. The index is eventually consistent and not
// covered by the version checks, so it can miss a donation whose transaction already
// committed. Callers compare it with the session's PoolAmount, which is read consistently.
func (tx *dynamoTx) SessionDonations(ctx context.Context, sessionID string) ([]*Donation, error) {
	return querySessionDonations(ctx, tx.client, tx.tables.Donations, sessionID)
}

func (tx *dynamoTx) PutCampaign(c *Campaign) {
	ref := itemRef{table: tx.tables.Campaigns, pk: c.ID}
	c.Version = tx.nextVersion(ref)
	tx.put(ref, c)
}

func (tx *dynamoTx) PutSession(s *VotingSession) {
	ref := itemRef{table: tx.tables.Sessions, pk: s.ID}
	s.Kind = kindSession
	s.Version = tx.nextVersion(ref)
	tx.put(ref, s)
}

func (tx *dynamoTx) PutDonation(d *Donation) {
	ref := itemRef{table: tx.tables.Donations, pk: d.ID}
	d.Version = tx.nextVersion(ref)
	tx.put(ref, d)
}

func (tx *dynamoTx) DeleteDonation(d *Donation) {
	ref := itemRef{table: tx.tables.Donations, pk: d.ID}
	cond, names, values := tx.condition(ref)
	tx.stage(ref, types.TransactWriteItem{Delete: &types.Delete{
		TableName:                 aws.String(ref.table),
		Key:                       ref.key(),
		ConditionExpression:       cond,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}})
}

func (tx *dynamoTx) PutVote(v *Vote) {
	ref := itemRef{table: tx.tables.Votes, pk: v.SessionID, sk: v.UserID}
	v.Version = tx.nextVersion(ref)
	tx.put(ref, v)
}

func (tx *dynamoTx) CreateReport(r *WeeklyReport) {
	ref := itemRef{table: tx.tables.Reports, pk: r.ID}
	r.Kind = kindReport
	r.Version = 1
	// Reports are never read inside a transaction, so this always stages a create.
	tx.put(ref, r)
}

func txGet[T any](ctx context.Context, tx *dynamoTx, ref itemRef) (*T, error) {
	item, version, err := getItem[T](ctx, tx.client, ref.table, ref.key())
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, already := tx.seen[ref]; !already {
		tx.seen[ref] = version
	}
	return item, err
}

func (tx *dynamoTx) nextVersion(ref itemRef) int64 {
	return tx.seen[ref] + 1
}

// condition pins ref to what this transaction observed. Unread documents must not exist.
func (tx *dynamoTx) condition(ref itemRef) (*string, map[string]string, map[string]types.AttributeValue) {
	version, read := tx.seen[ref]
	if !read || version == 0 {
		return aws.String("attribute_not_exists(PK)"), nil, nil
	}
	return aws.String("#version = :v"),
		map[string]string{"#version": "Version"},
		map[string]types.AttributeValue{":v": versionValue(version)}
}

func (tx *dynamoTx) put(ref itemRef, item any) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		tx.err = errors.Join(tx.err, fmt.Errorf("marshal %s/%s: %w", ref.table, ref.pk, err))
		return
	}
	cond, names, values := tx.condition(ref)
	tx.stage(ref, types.TransactWriteItem{Put: &types.Put{
		TableName:                 aws.String(ref.table),
		Item:                      av,
		ConditionExpression:       cond,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}})
}

// stage keeps one action per document; the last write wins.
func (tx *dynamoTx) stage(ref itemRef, item types.TransactWriteItem) {
	if _, exists := tx.writes[ref]; !exists {
		tx.order = append(tx.order, ref)
	}
	tx.writes[ref] = item
}

func (tx *dynamoTx) commit(ctx context.Context) error {
	if tx.err != nil {
		return tx.err
	}
	if len(tx.writes) == 0 {
		// Read-only transactions need no commit.
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(tx.writes)+len(tx.seen))
	for _, ref := range tx.order {
		items = append(items, tx.writes[ref])
	}
	for ref := range tx.seen {
		if _, written := tx.writes[ref]; written {
			continue
		}
		cond, names, values := tx.condition(ref)
		items = append(items, types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName:                 aws.String(ref.table),
			Key:                       ref.key(),
			ConditionExpression:       cond,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}})
	}
	if len(items) > maxTransactItems {
		return fmt.Errorf("transaction touches %d documents, limit is %d", len(items), maxTransactItems)
	}

	_, err := tx.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return err
}
