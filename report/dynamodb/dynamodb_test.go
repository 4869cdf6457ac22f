package dynamodb

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmcheck/sinkscan/report"
)

// fakeClient stores items in memory keyed by scan_id/seq.
type fakeClient struct {
	mu    sync.Mutex
	items []map[string]types.AttributeValue
}

func (c *fakeClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	newSeq := params.Item["seq"].(*types.AttributeValueMemberN).Value
	newScan := params.Item["scan_id"].(*types.AttributeValueMemberS).Value
	for _, item := range c.items {
		seq := item["seq"].(*types.AttributeValueMemberN).Value
		scan := item["scan_id"].(*types.AttributeValueMemberS).Value
		if seq == newSeq && scan == newScan {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	c.items = append(c.items, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (c *fakeClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scanID := params.ExpressionAttributeValues[":sid"].(*types.AttributeValueMemberS).Value
	var matched []map[string]types.AttributeValue
	for _, item := range c.items {
		if item["scan_id"].(*types.AttributeValueMemberS).Value == scanID {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, _ := strconv.ParseInt(matched[i]["seq"].(*types.AttributeValueMemberN).Value, 10, 64)
		b, _ := strconv.ParseInt(matched[j]["seq"].(*types.AttributeValueMemberN).Value, 10, 64)
		return a < b
	})
	return &dynamodb.QueryOutput{Items: matched}, nil
}

func TestSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	sink := NewSink(client, "findings", "scan-1")

	want := []report.Finding{
		{EdgeIDs: []int64{3, 7}, Instruction: report.Instruction},
		{EdgeIDs: []int64{-12, 12}, Instruction: report.Instruction},
	}
	for _, f := range want {
		require.NoError(t, sink.Report(ctx, f))
	}

	got, err := sink.Findings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSinkIsolatesScans(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}

	first := NewSink(client, "findings", "scan-1")
	second := NewSink(client, "findings", "scan-2")

	require.NoError(t, first.Report(ctx, report.Finding{EdgeIDs: []int64{1}, Instruction: report.Instruction}))
	require.NoError(t, second.Report(ctx, report.Finding{EdgeIDs: []int64{2}, Instruction: report.Instruction}))

	got, err := first.Findings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{1}, got[0].EdgeIDs)
}

func TestSinkDuplicateSeq(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}

	// Two sinks sharing a scan ID race to seq 1.
	a := NewSink(client, "findings", "scan-1")
	b := NewSink(client, "findings", "scan-1")

	require.NoError(t, a.Report(ctx, report.Finding{EdgeIDs: []int64{1}, Instruction: report.Instruction}))
	err := b.Report(ctx, report.Finding{EdgeIDs: []int64{2}, Instruction: report.Instruction})
	require.ErrorIs(t, err, ErrDuplicateSeq)
}

func TestSinkConcurrentReports(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	sink := NewSink(client, "findings", "scan-1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 25; j++ {
				err := sink.Report(ctx, report.Finding{
					EdgeIDs:     []int64{n*25 + j},
					Instruction: report.Instruction,
				})
				assert.NoError(t, err)
			}
		}(int64(i))
	}
	wg.Wait()

	got, err := sink.Findings(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 200)
}
