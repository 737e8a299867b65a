package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

func (c *StoreClientImpl) BulkIndex(
	ctx context.Context,
	metaInfo []MetaMap,
	documentInfo []DocumentMap,
	index string,
) error {
	var buf bytes.Buffer
	for i, doc := range documentInfo {
		var meta MetaMap
		if metaInfo != nil && i < len(metaInfo) {
			meta = metaInfo[i]
		} else {
			// empty meta for bulk index
			meta = MetaMap{"index": map[string]interface{}{}}
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("error marshaling meta to bulk index: %w", err)
		}
		buf.Write(metaJSON)
		buf.WriteByte('\n')

		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("error marshaling document to bulk index: %w", err)
		}
		buf.Write(docJSON)
		buf.WriteByte('\n')
	}

	res, err := c.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithIndex(index),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithRefresh(c.refreshRate),
	)
	if err != nil {
		return fmt.Errorf("error bulk indexing: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.String())
	}
	return nil
}

func (c *StoreClientImpl) Index(
	ctx context.Context,
	metaInfo MetaMap,
	documentInfo DocumentMap,
	index string,
) error {
	if metaInfo == nil {
		return c.BulkIndex(ctx, nil, []DocumentMap{documentInfo}, index)
	}
	return c.BulkIndex(ctx, []MetaMap{metaInfo}, []DocumentMap{documentInfo}, index)
}
