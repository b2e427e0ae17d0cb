package airtable

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudnotes/cloudnotes-api/pkg/circuitbreaker"
	"github.com/cloudnotes/cloudnotes-api/pkg/logger"
	"github.com/cloudnotes/cloudnotes-api/pkg/metrics"
	"github.com/cloudnotes/cloudnotes-api/pkg/retry"
	"github.com/mehanizm/airtable"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// operationTimeout bounds a single store operation including retries.
const operationTimeout = 15 * time.Second

// CreateUniqueOutcome is the tagged result of CreateRecordUnique.
type CreateUniqueOutcome int

const (
	// CreateUniqueCreated means the record was appended.
	CreateUniqueCreated CreateUniqueOutcome = iota
	// CreateUniqueAlreadyExists means the store rejected the record as a duplicate.
	CreateUniqueAlreadyExists
	// CreateUniqueFailed means the store call failed for a non-duplicate reason.
	CreateUniqueFailed
)

func (o CreateUniqueOutcome) String() string {
	switch o {
	case CreateUniqueCreated:
		return "created"
	case CreateUniqueAlreadyExists:
		return "already_exists"
	default:
		return "failed"
	}
}

// Client wraps the Airtable SDK with circuit breaker protection, retries and
// per-operation metrics.
type Client struct {
	client         *airtable.Client
	baseID         string
	circuitBreaker *gobreaker.CircuitBreaker
}

// NewClient creates a record store client backed by mehanizm/airtable.
// The httpClient bounds every call with its timeout; pass nil for SDK defaults.
func NewClient(token, baseID string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("empty personal access token provided")
	}
	if baseID == "" {
		return nil, fmt.Errorf("empty base ID provided")
	}

	client := airtable.NewClient(token)
	if httpClient != nil {
		client.SetCustomClient(httpClient)
	}

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("airtable"))

	logger.Info("Airtable client initialized",
		zap.String("base_id", baseID),
		zap.String("library", "mehanizm/airtable@v0.3.4"))

	return &Client{
		client:         client,
		baseID:         baseID,
		circuitBreaker: cb,
	}, nil
}

// CreateRecord appends one record with the given fields to the named table
// and returns the created record ID.
func (c *Client) CreateRecord(ctx context.Context, tableName string, fields map[string]interface{}) (string, error) {
	start := time.Now()
	operation := "createRecord"

	retryCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	retryConfig := retry.RecordStoreConfig()
	// A duplicate rejection will not succeed on retry
	retryConfig.RetryableErrors = func(err error) bool {
		return !isDuplicateError(err)
	}

	recordID, err := circuitbreaker.Execute(c.circuitBreaker, func() (string, error) {
		return retry.DoWithResult(retryCtx, retryConfig, operation, func() (string, error) {
			table := c.client.GetTable(c.baseID, tableName)

			records := &airtable.Records{
				Records: []*airtable.Record{
					{
						Fields: fields,
					},
				},
			}

			createdRecords, err := table.AddRecords(records)
			if err != nil {
				return "", fmt.Errorf("failed to create record in %q: %w", tableName, err)
			}

			if len(createdRecords.Records) == 0 {
				return "", fmt.Errorf("no record returned from Airtable")
			}

			return createdRecords.Records[0].ID, nil
		})
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.RecordStoreRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.RecordStoreRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("airtable", operation, "error", duration,
			zap.String("table", tableName), zap.Error(err))
		return "", err
	}

	metrics.RecordStoreRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.RecordStoreRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("airtable", operation, "success", duration,
		zap.String("table", tableName), zap.String("record_id", recordID))

	return recordID, nil
}

// FindFirstByField queries the named table for the first record whose field
// equals value. Returns the record's fields and whether a record was found.
func (c *Client) FindFirstByField(ctx context.Context, tableName, field, value string) (map[string]interface{}, bool, error) {
	start := time.Now()
	operation := "findFirstByField"

	retryCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	retryConfig := retry.RecordStoreConfig()

	filterFormula := fmt.Sprintf("{%s} = '%s'", field, escapeFormulaValue(value))

	records, err := circuitbreaker.Execute(c.circuitBreaker, func() (*airtable.Records, error) {
		return retry.DoWithResult(retryCtx, retryConfig, operation, func() (*airtable.Records, error) {
			table := c.client.GetTable(c.baseID, tableName)

			query := table.GetRecords().
				WithFilterFormula(filterFormula).
				PageSize(1)

			recs, err := query.Do()
			if err != nil {
				return nil, fmt.Errorf("failed to query %q: %w", tableName, err)
			}

			return recs, nil
		})
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.RecordStoreRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.RecordStoreRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("airtable", operation, "error", duration,
			zap.String("table", tableName), zap.String("field", field), zap.Error(err))
		return nil, false, err
	}

	metrics.RecordStoreRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.RecordStoreRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("airtable", operation, "success", duration,
		zap.String("table", tableName), zap.String("field", field),
		zap.Int("count", len(records.Records)))

	if len(records.Records) == 0 {
		return nil, false, nil
	}

	return records.Records[0].Fields, true, nil
}

// CreateRecordUnique appends one record and classifies the result. The
// duplicate-detection heuristic lives here so callers never match on error
// text: Airtable reports a violated uniqueness constraint only through the
// error message.
func (c *Client) CreateRecordUnique(ctx context.Context, tableName string, fields map[string]interface{}) (CreateUniqueOutcome, string, error) {
	recordID, err := c.CreateRecord(ctx, tableName, fields)
	if err != nil {
		if isDuplicateError(err) {
			return CreateUniqueAlreadyExists, "", err
		}
		return CreateUniqueFailed, "", err
	}
	return CreateUniqueCreated, recordID, nil
}

// isDuplicateError sniffs the opaque store error for a duplicate-key condition.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"duplicate", "already exists", "unique", "not_unique"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// escapeFormulaValue escapes a value for use inside a single-quoted Airtable
// filter formula string.
func escapeFormulaValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
