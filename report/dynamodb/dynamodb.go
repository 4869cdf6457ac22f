// Package dynamodb persists findings to a DynamoDB table, one item per
// finding, partitioned by scan run.
//
// Table schema:
//   - Partition key: scan_id (string) - identifies one scan run
//   - Sort key: seq (number) - order the finding was reported in
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name sinkscan-findings \
//	  --attribute-definitions AttributeName=scan_id,AttributeType=S AttributeName=seq,AttributeType=N \
//	  --key-schema AttributeName=scan_id,KeyType=HASH AttributeName=seq,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/osmcheck/sinkscan/report"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrDuplicateSeq is returned when an item with the same sequence number
// already exists, which means two sinks share a scan ID.
var ErrDuplicateSeq = errors.New("dynamodb: duplicate finding sequence")

// Sink writes findings to DynamoDB. It implements report.Reporter.
type Sink struct {
	client    Client
	tableName string
	scanID    string
	seq       atomic.Int64
}

// NewSink creates a sink appending to tableName under the given scan ID.
func NewSink(client Client, tableName, scanID string) *Sink {
	return &Sink{
		client:    client,
		tableName: tableName,
		scanID:    scanID,
	}
}

// Report writes one finding item. The conditional put makes a sequence
// collision an error instead of a silent overwrite.
func (s *Sink) Report(ctx context.Context, f report.Finding) error {
	seq := s.seq.Add(1)

	ids := make([]string, len(f.EdgeIDs))
	for i, id := range f.EdgeIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"scan_id":     &types.AttributeValueMemberS{Value: s.scanID},
			"seq":         &types.AttributeValueMemberN{Value: strconv.FormatInt(seq, 10)},
			"edge_ids":    &types.AttributeValueMemberNS{Value: ids},
			"instruction": &types.AttributeValueMemberS{Value: f.Instruction},
		},
		ConditionExpression: aws.String("attribute_not_exists(seq)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("%w: scan %s seq %d", ErrDuplicateSeq, s.scanID, seq)
		}
		return fmt.Errorf("put finding: %w", err)
	}
	return nil
}

// Findings reads back every finding stored under the sink's scan ID, in
// sequence order.
func (s *Sink) Findings(ctx context.Context) ([]report.Finding, error) {
	var out []report.Finding
	var startKey map[string]types.AttributeValue

	for {
		resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("scan_id = :sid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sid": &types.AttributeValueMemberS{Value: s.scanID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query findings: %w", err)
		}

		for _, item := range resp.Items {
			f, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		startKey = resp.LastEvaluatedKey
	}
	return out, nil
}

func decodeItem(item map[string]types.AttributeValue) (report.Finding, error) {
	idsAttr, ok := item["edge_ids"].(*types.AttributeValueMemberNS)
	if !ok {
		return report.Finding{}, errors.New("dynamodb: invalid edge_ids attribute")
	}
	instrAttr, ok := item["instruction"].(*types.AttributeValueMemberS)
	if !ok {
		return report.Finding{}, errors.New("dynamodb: invalid instruction attribute")
	}

	f := report.Finding{
		EdgeIDs:     make([]int64, len(idsAttr.Value)),
		Instruction: instrAttr.Value,
	}
	for i, v := range idsAttr.Value {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return report.Finding{}, fmt.Errorf("dynamodb: parse edge id: %w", err)
		}
		f.EdgeIDs[i] = id
	}
	return f, nil
}
