package trace

func getSpansQuery(params SearchParams) map[string]interface{} {
	var mustClauses []map[string]interface{}
	var filterClauses []map[string]interface{}

	if params.StartTime != nil {
		mustClauses = append(mustClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"end_time": map[string]interface{}{
					"gte": *params.StartTime,
				},
			},
		})
	}
	if params.EndTime != nil {
		mustClauses = append(mustClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"start_time": map[string]interface{}{
					"lte": *params.EndTime,
				},
			},
		})
	}

	if params.Operation != nil {
		mustClauses = append(mustClauses, map[string]interface{}{
			"term": map[string]interface{}{
				"name": *params.Operation,
			},
		})
	}

	if len(params.StatusCodes) > 0 {
		mustClauses = append(mustClauses, map[string]interface{}{
			"terms": map[string]interface{}{
				"status_code": params.StatusCodes,
			},
		})
	}

	if params.Service != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{
				"service_name": *params.Service,
			},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []map[string]interface{}{
			{"start_time": map[string]interface{}{"order": "desc"}},
		},
	}

	return query
}

func getTraceByIdQuery(traceID string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"trace_id": traceID,
			},
		},
	}
}

func getTraceSummariesQuery(params SummarySearchParams) map[string]interface{} {
	var mustClauses []map[string]interface{}
	var filterClauses []map[string]interface{}

	if params.StartTime != nil || params.EndTime != nil {
		timeRange := map[string]interface{}{}
		if params.StartTime != nil {
			timeRange["gte"] = *params.StartTime
		}
		if params.EndTime != nil {
			timeRange["lte"] = *params.EndTime
		}
		mustClauses = append(mustClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"start_time": timeRange,
			},
		})
	}

	if params.MinDurationNanos != nil {
		mustClauses = append(mustClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"duration_nanos": map[string]interface{}{
					"gte": *params.MinDurationNanos,
				},
			},
		})
	}

	if params.ErrorsOnly {
		mustClauses = append(mustClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"error_count": map[string]interface{}{
					"gt": 0,
				},
			},
		})
	}

	if params.Service != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{
				"root_service": *params.Service,
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []map[string]interface{}{
			{"start_time": map[string]interface{}{"order": "desc"}},
		},
	}
}
