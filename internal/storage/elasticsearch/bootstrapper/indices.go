package bootstrapper

const SpanIndexName = "span_index"

var spanIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 1,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"created_at": map[string]interface{}{
				"type": "date",
			},
			"trace_id": map[string]interface{}{
				"type": "keyword",
			},
			"span_id": map[string]interface{}{
				"type": "keyword",
			},
			"parent_span_id": map[string]interface{}{
				"type": "keyword",
			},
			"service_name": map[string]interface{}{
				"type": "keyword",
			},
			"name": map[string]interface{}{
				"type": "keyword",
			},
			"kind": map[string]interface{}{
				"type": "keyword",
			},
			"start_time": map[string]interface{}{
				"type": "date_nanos",
			},
			"end_time": map[string]interface{}{
				"type": "date_nanos",
			},
			"duration_nanos": map[string]interface{}{
				"type": "long",
			},
			"status_code": map[string]interface{}{
				"type": "keyword",
			},
			"status_message": map[string]interface{}{
				"type": "text",
			},
			"attributes": map[string]interface{}{
				"type": "flattened",
			},
			"scope_name": map[string]interface{}{
				"type": "keyword",
			},
			"scope_version": map[string]interface{}{
				"type": "keyword",
			},
		},
	},
}

const LogIndexName = "log_index"

var logIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 1,
		"analysis": map[string]interface{}{
			"analyzer": map[string]interface{}{
				"message_analyzer": map[string]interface{}{
					"type":      "custom",
					"tokenizer": "standard",
					"filter":    []string{"lowercase", "stop"},
				},
			},
		},
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"created_at": map[string]interface{}{
				"type": "date",
			},
			"timestamp": map[string]interface{}{
				"type": "date_nanos",
			},
			"severity": map[string]interface{}{
				"type": "keyword",
			},
			"message": map[string]interface{}{
				"type":     "text",
				"analyzer": "message_analyzer",
			},
			"service_name": map[string]interface{}{
				"type": "keyword",
			},
			"trace_id": map[string]interface{}{
				"type": "keyword",
			},
			"span_id": map[string]interface{}{
				"type": "keyword",
			},
			"attributes": map[string]interface{}{
				"type": "flattened",
			},
		},
	},
}

const MetricIndexName = "metric_index"

var metricIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 1,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"created_at": map[string]interface{}{
				"type": "date",
			},
			"name": map[string]interface{}{
				"type": "keyword",
			},
			"description": map[string]interface{}{
				"type": "text",
			},
			"unit": map[string]interface{}{
				"type": "keyword",
			},
			"type": map[string]interface{}{
				"type": "keyword",
			},
			"service_name": map[string]interface{}{
				"type": "keyword",
			},
			"timestamp": map[string]interface{}{
				"type": "date_nanos",
			},
			"value": map[string]interface{}{
				"type": "double",
			},
			"count": map[string]interface{}{
				"type": "long",
			},
			"sum": map[string]interface{}{
				"type": "double",
			},
			"bounds": map[string]interface{}{
				"type": "double",
			},
			"bucket_counts": map[string]interface{}{
				"type": "long",
			},
			"attributes": map[string]interface{}{
				"type": "flattened",
			},
		},
	},
}

const TraceSummaryIndexName = "trace_summary_index"

var traceSummaryIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 1,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"created_at": map[string]interface{}{
				"type": "date",
			},
			"trace_id": map[string]interface{}{
				"type": "keyword",
			},
			"root_name": map[string]interface{}{
				"type": "keyword",
			},
			"root_service": map[string]interface{}{
				"type": "keyword",
			},
			"span_count": map[string]interface{}{
				"type": "integer",
			},
			"error_count": map[string]interface{}{
				"type": "integer",
			},
			"start_time": map[string]interface{}{
				"type": "date_nanos",
			},
			"end_time": map[string]interface{}{
				"type": "date_nanos",
			},
			"duration_nanos": map[string]interface{}{
				"type": "long",
			},
		},
	},
}
