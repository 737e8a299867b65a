package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpansQuery(t *testing.T) {
	t.Run("Includes only the clauses for set parameters", func(t *testing.T) {
		operation := "GET /orders"
		service := "checkout"
		query := getSpansQuery(SearchParams{
			Operation:   &operation,
			Service:     &service,
			StatusCodes: []string{"Error"},
		})

		boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
		mustClauses := boolQuery["must"].([]map[string]interface{})
		require.Len(t, mustClauses, 2)
		assert.Equal(t, map[string]interface{}{"name": "GET /orders"}, mustClauses[0]["term"])
		assert.Equal(t, map[string]interface{}{"status_code": []string{"Error"}}, mustClauses[1]["terms"])

		filterClauses := boolQuery["filter"].([]map[string]interface{})
		require.Len(t, filterClauses, 1)
		assert.Equal(t, map[string]interface{}{"service_name": "checkout"}, filterClauses[0]["term"])
	})

	t.Run("Overlapping time windows match spans alive within the window", func(t *testing.T) {
		startTime := "2024-06-01T00:00:00Z"
		endTime := "2024-06-02T00:00:00Z"
		query := getSpansQuery(SearchParams{StartTime: &startTime, EndTime: &endTime})

		boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
		mustClauses := boolQuery["must"].([]map[string]interface{})
		require.Len(t, mustClauses, 2)
		// a span overlaps the window when it ends after the window start
		// and starts before the window end
		assert.Equal(t, map[string]interface{}{
			"end_time": map[string]interface{}{"gte": startTime},
		}, mustClauses[0]["range"])
		assert.Equal(t, map[string]interface{}{
			"start_time": map[string]interface{}{"lte": endTime},
		}, mustClauses[1]["range"])
	})

	t.Run("Results sort newest first", func(t *testing.T) {
		query := getSpansQuery(SearchParams{})
		sort := query["sort"].([]map[string]interface{})
		require.Len(t, sort, 1)
		assert.Equal(t, map[string]interface{}{"order": "desc"}, sort[0]["start_time"])
	})
}

func TestGetTraceByIdQuery(t *testing.T) {
	t.Run("Builds a term query on the trace id", func(t *testing.T) {
		query := getTraceByIdQuery("abc123")
		assert.Equal(t, map[string]interface{}{
			"term": map[string]interface{}{"trace_id": "abc123"},
		}, query["query"])
	})
}

func TestGetTraceSummariesQuery(t *testing.T) {
	t.Run("Combines duration and error filters", func(t *testing.T) {
		minDuration := int64(5000000)
		query := getTraceSummariesQuery(SummarySearchParams{
			MinDurationNanos: &minDuration,
			ErrorsOnly:       true,
		})

		boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
		mustClauses := boolQuery["must"].([]map[string]interface{})
		require.Len(t, mustClauses, 2)
		assert.Equal(t, map[string]interface{}{
			"duration_nanos": map[string]interface{}{"gte": minDuration},
		}, mustClauses[0]["range"])
		assert.Equal(t, map[string]interface{}{
			"error_count": map[string]interface{}{"gt": 0},
		}, mustClauses[1]["range"])
	})

	t.Run("Filters by the root service", func(t *testing.T) {
		service := "checkout"
		query := getTraceSummariesQuery(SummarySearchParams{Service: &service})

		boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
		filterClauses := boolQuery["filter"].([]map[string]interface{})
		require.Len(t, filterClauses, 1)
		assert.Equal(t, map[string]interface{}{"root_service": "checkout"}, filterClauses[0]["term"])
	})
}
