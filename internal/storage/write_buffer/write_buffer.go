package write_buffer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/client"
	"go.uber.org/zap"
)

const WriteQueueSize = 30
const flushTimeOut = 10 * time.Second

type WriteBuffer[ValueType any] interface {
	WriteToBuffer(values []ValueType)
	// Flush synchronously drains the buffer, used on shutdown.
	Flush(ctx context.Context) error
}

type WriteBufferImpl[ValueType any] struct {
	writeQueue  []ValueType
	sc          client.StoreClient
	esIndexName string
	logger      *zap.Logger
	mu          sync.Mutex
}

func NewWriteBufferImpl[ValueType any](
	sc client.StoreClient,
	esIndexName string,
	logger *zap.Logger,
) *WriteBufferImpl[ValueType] {
	return &WriteBufferImpl[ValueType]{
		writeQueue:  []ValueType{},
		sc:          sc,
		esIndexName: esIndexName,
		logger:      logger,
	}
}

func (wb *WriteBufferImpl[ValueType]) WriteToBuffer(values []ValueType) {
	wb.mu.Lock()
	wb.writeQueue = append(wb.writeQueue, values...)
	size := len(wb.writeQueue)
	wb.mu.Unlock()
	if size > WriteQueueSize {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeOut)
			defer cancel()
			if err := wb.Flush(ctx); err != nil {
				wb.logger.Error("Failed to flush to Elasticsearch", zap.Error(err))
			}
		}()
	}
}

func (wb *WriteBufferImpl[ValueType]) Flush(ctx context.Context) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	metaMap, dataMap, err := client.ToMetaAndDataMap(wb.writeQueue)
	if err != nil {
		return fmt.Errorf("error converting write queue to meta and data map: %w", err)
	}
	if len(metaMap) == 0 {
		wb.writeQueue = []ValueType{}
		return nil
	}
	err = wb.sc.BulkIndex(ctx, metaMap, dataMap, wb.esIndexName)
	wb.writeQueue = []ValueType{}
	if err != nil {
		return fmt.Errorf("error bulk indexing to Elasticsearch: %w", err)
	}
	return nil
}
