package dynamo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/vitae/resume"
	"github.com/jacentio/vitae/store"
)

// maxBatchWrite is the DynamoDB limit on requests per BatchWriteItem call.
const maxBatchWrite = 25

// maxBatchAttempts bounds the retries of unprocessed batch requests.
const maxBatchAttempts = 5

// API is the subset of the DynamoDB client used by Store.
// *dynamodb.Client satisfies it.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// Store is a store.Store backed by a single DynamoDB table.
// It is safe for concurrent use.
type Store struct {
	client API
	config Config
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a new Store instance.
func New(client API, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Config returns the validated configuration.
func (s *Store) Config() Config {
	return s.config
}

// Save puts r with a fresh version, failing if the id is already stored.
func (s *Store) Save(ctx context.Context, r *resume.Resume) error {
	if r == nil {
		return store.ErrNilResume
	}
	item, err := EncodeItem(r)
	if err != nil {
		return err
	}

	now := s.now().UTC().Format(time.RFC3339)
	item[attrVersion] = &types.AttributeValueMemberN{Value: "1"}
	item[attrCreatedAt] = &types.AttributeValueMemberS{Value: now}
	item[attrUpdatedAt] = &types.AttributeValueMemberS{Value: now}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%w: %s", store.ErrDuplicateID, r.ID())
	}
	if err != nil {
		return fmt.Errorf("put %s: %w", r.ID(), err)
	}
	return nil
}

// Load reads the resume with a strongly consistent GetItem.
func (s *Store) Load(ctx context.Context, id string) (*resume.Resume, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.config.Table),
		Key:            Key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return DecodeItem(result.Item)
}

// Update overwrites every resume attribute of an existing item, bumps its
// version and refreshes updated_at. Attributes the new state no longer has
// are removed.
func (s *Store) Update(ctx context.Context, r *resume.Resume) error {
	if r == nil {
		return store.ErrNilResume
	}
	item, err := EncodeItem(r)
	if err != nil {
		return err
	}

	exprNames := map[string]string{
		"#id":         attrID,
		"#updated_at": attrUpdatedAt,
		"#version":    attrVersion,
	}
	exprValues := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: s.now().UTC().Format(time.RFC3339)},
		":one":        &types.AttributeValueMemberN{Value: "1"},
	}

	// Sorted for a stable expression.
	attrs := make([]string, 0, len(item))
	for k := range item {
		if k != attrID {
			attrs = append(attrs, k)
		}
	}
	sort.Strings(attrs)

	var setClauses []string
	for i, k := range attrs {
		nameKey := "#attr" + strconv.Itoa(i)
		valueKey := ":val" + strconv.Itoa(i)
		exprNames[nameKey] = k
		exprValues[valueKey] = item[k]
		setClauses = append(setClauses, nameKey+" = "+valueKey)
	}
	setClauses = append(setClauses, "#updated_at = :updated_at", "#version = #version + :one")
	updateExpr := "SET " + strings.Join(setClauses, ", ")

	var removeClauses []string
	for i, k := range optionalAttributes {
		if _, ok := item[k]; ok {
			continue
		}
		nameKey := "#opt" + strconv.Itoa(i)
		exprNames[nameKey] = k
		removeClauses = append(removeClauses, nameKey)
	}
	if len(removeClauses) > 0 {
		updateExpr += " REMOVE " + strings.Join(removeClauses, ", ")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.Table),
		Key:                       Key(r.ID()),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%w: %s", store.ErrNotFound, r.ID())
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", r.ID(), err)
	}
	return nil
}

// optionalAttributes are the record attributes omitted when empty.
var optionalAttributes = []string{"contacts", "location", "sections"}

// Delete removes the item, failing if it does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.Table),
		Key:                 Key(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// Clear scans every key and deletes the items in batches.
func (s *Store) Clear(ctx context.Context) error {
	var keys []Item
	err := s.scan(ctx, func() *dynamodb.ScanInput {
		return &dynamodb.ScanInput{
			ProjectionExpression:     aws.String("#id"),
			ExpressionAttributeNames: map[string]string{"#id": attrID},
		}
	}, func(page *dynamodb.ScanOutput) error {
		for _, item := range page.Items {
			if id, ok := item[attrID]; ok {
				keys = append(keys, Item{attrID: id})
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(keys, maxBatchWrite) {
		requests := make([]types.WriteRequest, len(batch))
		for i, key := range batch {
			requests[i] = types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: key}}
		}
		if err := s.batchWrite(ctx, requests); err != nil {
			return err
		}
	}
	return nil
}

// batchWrite submits requests, resubmitting unprocessed ones with linear backoff.
func (s *Store) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.config.Table: requests}
	for attempt := 0; attempt < maxBatchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
			}
		}
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("batch write: %w", err)
		}
		if len(out.UnprocessedItems[s.config.Table]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
	}
	return fmt.Errorf("%w: %d requests", ErrUnprocessed, len(pending[s.config.Table]))
}

// Size counts the items with a COUNT scan.
func (s *Store) Size(ctx context.Context) (int, error) {
	var total int
	err := s.scan(ctx, func() *dynamodb.ScanInput {
		return &dynamodb.ScanInput{Select: types.SelectCount}
	}, func(page *dynamodb.ScanOutput) error {
		total += int(page.Count)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// AllSorted scans the whole table and returns the decoded resumes ordered by
// full name, then id.
func (s *Store) AllSorted(ctx context.Context) ([]*resume.Resume, error) {
	var list []*resume.Resume
	err := s.scan(ctx, func() *dynamodb.ScanInput {
		return &dynamodb.ScanInput{}
	}, func(page *dynamodb.ScanOutput) error {
		for _, item := range page.Items {
			r, err := DecodeItem(item)
			if err != nil {
				return err
			}
			list = append(list, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*resume.Resume{}
	}
	store.Sort(list)
	return list, nil
}

// scan runs a consistent scan over the table, one goroutine per configured
// segment. newInput supplies the per-segment base input; visit is called
// for every page, never concurrently.
func (s *Store) scan(ctx context.Context, newInput func() *dynamodb.ScanInput, visit func(*dynamodb.ScanOutput) error) error {
	segments := s.config.ScanSegments

	// Fast path for single segment (default)
	if segments == 1 {
		return s.scanSegment(ctx, newInput(), visit)
	}

	// Multi-segment fan-out
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make(chan error, segments)

	for segment := 0; segment < segments; segment++ {
		wg.Add(1)
		go func(segment int) {
			defer wg.Done()

			input := newInput()
			input.Segment = aws.Int32(int32(segment))
			input.TotalSegments = aws.Int32(int32(segments))

			err := s.scanSegment(ctx, input, func(page *dynamodb.ScanOutput) error {
				mu.Lock()
				defer mu.Unlock()
				return visit(page)
			})
			if err != nil {
				errs <- fmt.Errorf("segment %02d: %w", segment, err)
				cancel()
			}
		}(segment)
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	var first error
	for err := range errs {
		if first == nil || errors.Is(first, context.Canceled) {
			first = err
		}
	}
	return first
}

func (s *Store) scanSegment(ctx context.Context, input *dynamodb.ScanInput, visit func(*dynamodb.ScanOutput) error) error {
	input.TableName = aws.String(s.config.Table)
	input.ConsistentRead = aws.Bool(true)

	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("scan %s: %w", s.config.Table, err)
		}
		if err := visit(page); err != nil {
			return err
		}
	}
	return nil
}

func isConditionFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}
