package dynamo

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-memory table that understands the expressions Store sends.
type fakeAPI struct {
	mu    sync.Mutex
	table string
	items map[string]Item

	// pageSize limits items per Scan page. Zero means unlimited.
	pageSize int

	// unprocessed makes BatchWriteItem defer the second half of each call
	// this many times.
	unprocessed int

	// scanErr is returned by every Scan when set.
	scanErr error

	// onBatch runs after every BatchWriteItem call.
	onBatch func()

	calls map[string]int
}

var _ API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		table: DefaultTable,
		items: make(map[string]Item),
		calls: make(map[string]int),
	}
}

func (f *fakeAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) raw(id string) Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.items[id])
}

func (f *fakeAPI) put(item Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[keyOf(item)] = maps.Clone(item)
}

func (f *fakeAPI) checkTable(name *string) error {
	if aws.ToString(name) != f.table {
		return &types.ResourceNotFoundException{Message: aws.String("table not found: " + aws.ToString(name))}
	}
	return nil
}

func keyOf(item Item) string {
	if v, ok := item[attrID].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// segmentOf assigns id to one of total scan segments.
func segmentOf(id string, total int) int {
	if total <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % uint32(total))
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

// checkCondition evaluates the attribute_exists/attribute_not_exists
// conditions Store uses.
func checkCondition(expr *string, names map[string]string, exists bool) error {
	if expr == nil {
		return nil
	}
	e := aws.ToString(expr)
	var want bool
	var attr string
	switch {
	case strings.HasPrefix(e, "attribute_not_exists(") && strings.HasSuffix(e, ")"):
		want = false
		attr = strings.TrimSuffix(strings.TrimPrefix(e, "attribute_not_exists("), ")")
	case strings.HasPrefix(e, "attribute_exists(") && strings.HasSuffix(e, ")"):
		want = true
		attr = strings.TrimSuffix(strings.TrimPrefix(e, "attribute_exists("), ")")
	default:
		return fmt.Errorf("fake: unsupported condition %q", e)
	}
	if n, ok := names[attr]; ok {
		attr = n
	}
	if attr != attrID {
		return fmt.Errorf("fake: unsupported condition attribute %q", attr)
	}
	if exists != want {
		return conditionFailed()
	}
	return nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["PutItem"]++
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}
	id := keyOf(in.Item)
	_, exists := f.items[id]
	if err := checkCondition(in.ConditionExpression, in.ExpressionAttributeNames, exists); err != nil {
		return nil, err
	}
	f.items[id] = maps.Clone(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetItem"]++
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}
	item, ok := f.items[keyOf(in.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: maps.Clone(item)}, nil
}

func (f *fakeAPI) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateItem"]++
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}
	id := keyOf(in.Key)
	current, exists := f.items[id]
	if err := checkCondition(in.ConditionExpression, in.ExpressionAttributeNames, exists); err != nil {
		return nil, err
	}

	next := maps.Clone(current)
	if next == nil {
		next = maps.Clone(in.Key)
	}
	resolve := func(name string) string {
		if n, ok := in.ExpressionAttributeNames[name]; ok {
			return n
		}
		return name
	}

	expr := aws.ToString(in.UpdateExpression)
	setPart, removePart, _ := strings.Cut(expr, " REMOVE ")
	setPart = strings.TrimPrefix(setPart, "SET ")
	for _, clause := range strings.Split(setPart, ", ") {
		lhs, rhs, ok := strings.Cut(clause, " = ")
		if !ok {
			return nil, fmt.Errorf("fake: malformed clause %q", clause)
		}
		if base, inc, ok := strings.Cut(rhs, " + "); ok {
			cur, _ := next[resolve(base)].(*types.AttributeValueMemberN)
			add, _ := in.ExpressionAttributeValues[inc].(*types.AttributeValueMemberN)
			if cur == nil || add == nil {
				return nil, fmt.Errorf("fake: non-numeric increment %q", clause)
			}
			a, _ := strconv.Atoi(cur.Value)
			b, _ := strconv.Atoi(add.Value)
			next[resolve(lhs)] = &types.AttributeValueMemberN{Value: strconv.Itoa(a + b)}
			continue
		}
		v, ok := in.ExpressionAttributeValues[rhs]
		if !ok {
			return nil, fmt.Errorf("fake: missing value %q", rhs)
		}
		next[resolve(lhs)] = v
	}
	if removePart != "" {
		for _, name := range strings.Split(removePart, ", ") {
			delete(next, resolve(name))
		}
	}
	f.items[id] = next
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteItem"]++
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}
	id := keyOf(in.Key)
	_, exists := f.items[id]
	if err := checkCondition(in.ConditionExpression, in.ExpressionAttributeNames, exists); err != nil {
		return nil, err
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Scan"]++
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if err := f.checkTable(in.TableName); err != nil {
		return nil, err
	}

	segment, total := int(aws.ToInt32(in.Segment)), int(aws.ToInt32(in.TotalSegments))
	var ids []string
	for id := range f.items {
		if segmentOf(id, total) == segment {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	if in.ExclusiveStartKey != nil {
		start := keyOf(in.ExclusiveStartKey)
		i := sort.SearchStrings(ids, start)
		if i < len(ids) && ids[i] == start {
			i++
		}
		ids = ids[i:]
	}

	out := &dynamodb.ScanOutput{}
	if f.pageSize > 0 && len(ids) > f.pageSize {
		ids = ids[:f.pageSize]
		out.LastEvaluatedKey = Key(ids[len(ids)-1])
	}
	out.Count = int32(len(ids))
	out.ScannedCount = out.Count
	if in.Select == types.SelectCount {
		return out, nil
	}

	projectID := in.ProjectionExpression != nil
	for _, id := range ids {
		if projectID {
			out.Items = append(out.Items, Key(id))
			continue
		}
		out.Items = append(out.Items, maps.Clone(f.items[id]))
	}
	return out, nil
}

func (f *fakeAPI) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["BatchWriteItem"]++

	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}
	for table, requests := range in.RequestItems {
		if err := f.checkTable(aws.String(table)); err != nil {
			return nil, err
		}
		if len(requests) > maxBatchWrite {
			return nil, errors.New("fake: too many requests in batch")
		}
		process := requests
		if f.unprocessed > 0 && len(requests) > 0 {
			f.unprocessed--
			half := len(requests) / 2
			process, out.UnprocessedItems[table] = requests[:half], requests[half:]
			if len(out.UnprocessedItems[table]) == 0 {
				delete(out.UnprocessedItems, table)
			}
		}
		for _, req := range process {
			if req.DeleteRequest != nil {
				delete(f.items, keyOf(req.DeleteRequest.Key))
			}
			if req.PutRequest != nil {
				f.items[keyOf(req.PutRequest.Item)] = maps.Clone(req.PutRequest.Item)
			}
		}
	}
	if f.onBatch != nil {
		f.onBatch()
	}
	return out, nil
}
