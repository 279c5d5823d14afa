package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/refer"
	reftestutil "github.com/hupe1980/refer/testutil"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	t.Run("Load", func(t *testing.T) {
		_, err := refer.New(reftestutil.Scenario(), refer.WithMetricsCollector(c))
		require.NoError(t, err)

		assert.Equal(t, 1.0, testutil.ToFloat64(c.loadsTotal.WithLabelValues("refcoco", "success")))
	})

	t.Run("Query", func(t *testing.T) {
		c.RecordQuery("ref_ids", 3, time.Millisecond, nil)
		c.RecordQuery("ref_ids", 0, time.Millisecond, errors.New("invalid split"))

		assert.Equal(t, 1.0, testutil.ToFloat64(c.queriesTotal.WithLabelValues("ref_ids", "success")))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.queriesTotal.WithLabelValues("ref_ids", "error")))
	})

	t.Run("Evaluate", func(t *testing.T) {
		c.RecordEvaluate("CIDEr", time.Second, nil)
		assert.Equal(t, 1.0, testutil.ToFloat64(c.evalsTotal.WithLabelValues("CIDEr", "success")))
	})

	t.Run("Gather", func(t *testing.T) {
		n, err := testutil.GatherAndCount(reg, "refer_queries_total", "refer_loads_total")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		_, err := NewCollector(reg)
		assert.Error(t, err)
	})
}
