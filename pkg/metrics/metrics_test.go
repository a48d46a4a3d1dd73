package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/entrhq/backnav/pkg/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector("")

	c.RecordSuccess(backpress.TypeFindToolbar)
	c.RecordSuccess(backpress.TypeFindToolbar)
	c.RecordFailure(backpress.TypeTabHistory)
	c.RecordEdge(backpress.TypeBottomSheet, backpress.EdgeRight)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.success.WithLabelValues("find_toolbar")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.success.WithLabelValues("tab_history")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failure.WithLabelValues("tab_history")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.edge.WithLabelValues("bottom_sheet", "right")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("demo")
	c.RecordSuccess(backpress.TypeFullscreen)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `demo_dispatch_success_total{type="fullscreen"} 1`)
}

func TestTally_RecordsInOrder(t *testing.T) {
	tally := NewTally()
	var seen []string
	tally.OnRecord(func(r types.Record) { seen = append(seen, r.String()) })

	tally.RecordFailure(backpress.TypeFindToolbar)
	tally.RecordSuccess(backpress.TypeTabHistory)
	tally.RecordEdge(backpress.TypeTabHistory, backpress.EdgeLeft)

	want := []string{"failure:find_toolbar", "success:tab_history", "edge:tab_history:left"}
	assert.Equal(t, want, seen)

	records := tally.Records()
	require.Len(t, records, 3)
	assert.Equal(t, types.RecordKindFailure, records[0].Kind)
	assert.Equal(t, 1, tally.Failures(backpress.TypeFindToolbar))
	assert.Equal(t, 1, tally.Successes(backpress.TypeTabHistory))

	s, f := tally.Totals()
	assert.Equal(t, 1, s)
	assert.Equal(t, 1, f)

	assert.Len(t, tally.Since(1), 2)
	assert.Nil(t, tally.Since(3))

	tally.Reset()
	assert.Equal(t, 0, tally.Len())
	assert.Equal(t, 0, tally.Successes(backpress.TypeTabHistory))
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewTally(), NewTally()
	m := Multi{a, b}

	m.RecordSuccess(backpress.TypeTextBubble)
	m.RecordFailure(backpress.TypeTextBubble)
	m.RecordEdge(backpress.TypeTextBubble, backpress.EdgeRight)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
}
