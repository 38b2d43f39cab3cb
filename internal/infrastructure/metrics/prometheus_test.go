package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

func TestMovementMetrics_Contadores(t *testing.T) {
	m := NewMovementMetrics()
	m.MovementRecorded(entity.MovementSale)
	m.MovementRecorded(entity.MovementSale)
	m.MovementRejected("negative_stock")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recorded.WithLabelValues("sale")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.recorded.WithLabelValues("restock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("negative_stock")))
}

func TestMovementMetrics_Handler(t *testing.T) {
	m := NewMovementMetrics()
	m.MovementRecorded(entity.MovementRestock)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `inventory_stock_movements_recorded_total{type="restock"} 1`)
}
