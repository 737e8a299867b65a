package metric

import (
	"context"
	"testing"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Matching(t *testing.T) {
	inst := Instrument{Name: "http.server.duration", Kind: InstrumentKindHistogram}

	t.Run("Exact name matches", func(t *testing.T) {
		assert.True(t, View{InstrumentName: "http.server.duration"}.Matches(inst))
		assert.False(t, View{InstrumentName: "http.client.duration"}.Matches(inst))
	})

	t.Run("Wildcards match runs of characters", func(t *testing.T) {
		assert.True(t, View{InstrumentName: "http.*"}.Matches(inst))
		assert.True(t, View{InstrumentName: "*.duration"}.Matches(inst))
		assert.True(t, View{InstrumentName: "http.*.duration"}.Matches(inst))
		assert.True(t, View{InstrumentName: "*"}.Matches(inst))
		assert.False(t, View{InstrumentName: "rpc.*"}.Matches(inst))
	})

	t.Run("Empty name matches everything", func(t *testing.T) {
		assert.True(t, View{}.Matches(inst))
	})

	t.Run("Kind and scope narrow the match", func(t *testing.T) {
		assert.True(t, View{InstrumentKind: InstrumentKindHistogram}.Matches(inst))
		assert.False(t, View{InstrumentKind: InstrumentKindCounter}.Matches(inst))

		scoped := inst
		scoped.Scope.Name = "ingest"
		assert.True(t, View{ScopeName: "ingest"}.Matches(scoped))
		assert.False(t, View{ScopeName: "other"}.Matches(scoped))
	})
}

func TestView_Validate(t *testing.T) {
	t.Run("Renaming with a wildcard matcher is rejected", func(t *testing.T) {
		err := View{InstrumentName: "http.*", Name: "renamed"}.Validate()
		assert.ErrorIs(t, err, ErrWildcardRename)

		_, err = NewMeterProvider(WithViews(View{InstrumentName: "http.*", Name: "renamed"}))
		assert.ErrorIs(t, err, ErrWildcardRename)
	})

	t.Run("Renaming with an exact matcher is allowed", func(t *testing.T) {
		assert.Nil(t, View{InstrumentName: "http.server.duration", Name: "renamed"}.Validate())
	})
}

func TestView_StreamRewriting(t *testing.T) {
	t.Run("A view renames the output stream", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(View{
			InstrumentName: "old.name",
			Name:           "new.name",
		}))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("old.name")
		require.Nil(t, err)
		counter.Add(context.Background(), 1)

		m := collectMetric(t, provider, "new.name")
		assert.Equal(t, "new.name", m.Name)
	})

	t.Run("An attribute filter drops unlisted keys before aggregation", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(View{
			InstrumentName:  "requests.total",
			AttributeFilter: []attribute.Key{"route"},
		}))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("requests.total")
		require.Nil(t, err)

		ctx := context.Background()
		// user_id differs but is filtered away, so both land in one series
		counter.Add(ctx, 1, attribute.String("route", "/a"), attribute.String("user_id", "1"))
		counter.Add(ctx, 1, attribute.String("route", "/a"), attribute.String("user_id", "2"))

		sum := collectSum[int64](t, provider, "requests.total")
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(2), sum.DataPoints[0].Value)
		assert.Equal(t, []attribute.KeyValue{attribute.String("route", "/a")}, sum.DataPoints[0].Attributes)
	})

	t.Run("A drop view suppresses the stream entirely", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(View{
			InstrumentName: "noisy.*",
			Drop:           true,
		}))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("noisy.debug.counter")
		require.Nil(t, err)
		counter.Add(context.Background(), 1)

		rm, err := provider.Collect(context.Background())
		require.Nil(t, err)
		assert.Empty(t, rm.ScopeMetrics)
	})

	t.Run("A view can re-aggregate a counter stream", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(View{
			InstrumentName: "samples",
			Aggregation:    AggregationLastValue{},
		}))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("samples")
		require.Nil(t, err)

		ctx := context.Background()
		counter.Add(ctx, 7)
		counter.Add(ctx, 9)

		data := collectMetric(t, provider, "samples").Data
		g, ok := data.(Gauge[int64])
		require.True(t, ok)
		assert.Equal(t, int64(9), g.DataPoints[0].Value)
	})

	t.Run("The first matching view wins", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(
			View{InstrumentName: "requests.total", Name: "first.name"},
			View{InstrumentName: "requests.total", Name: "second.name"},
		))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("requests.total")
		require.Nil(t, err)
		counter.Add(context.Background(), 1)

		m := collectMetric(t, provider, "first.name")
		assert.Equal(t, "first.name", m.Name)
	})

	t.Run("Instruments matching no view keep their default stream", func(t *testing.T) {
		provider, err := NewMeterProvider(WithViews(View{
			InstrumentName: "unrelated",
			Drop:           true,
		}))
		require.Nil(t, err)
		meter := provider.Meter("test")

		counter, err := meter.Int64Counter("requests.total", WithDescription("total requests"))
		require.Nil(t, err)
		counter.Add(context.Background(), 1)

		m := collectMetric(t, provider, "requests.total")
		assert.Equal(t, "total requests", m.Description)
	})
}
