package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/router"
)

// newTestEngine builds the full HTTP surface over a test database. The empty
// JWT secret enables X-Actor header authentication, as in development.
func newTestEngine(t *testing.T, setup *TestSetup) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return router.New(router.Config{
		Env:    "test",
		Logger: zap.NewNop(),
		System: handler.NewSystemHandler(nil),
		Registrars: []router.RouteRegistrar{
			handler.NewPickingHandler(setup.Picking),
			handler.NewInventoryHandler(setup.Inventory),
			handler.NewTransferHandler(setup.Transfer),
		},
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, "expected success response, got %s", w.Body.String())
	return resp.Data
}

func TestWarehouseAPI(t *testing.T) {
	setup := NewTestSetup(t)
	engine := newTestEngine(t, setup)

	// Receive stock over the API.
	w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/records", "alice", map[string]any{
		"warehouse_id": setup.WarehouseID.String(),
		"sku":          "SKU-500",
		"product_name": "Bolt M8",
		"location":     "A1-1",
		"zone":         "A",
		"cartons":      5,
		"units":        3,
		"carton_rate":  10,
		"box_rate":     5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decodeData(t, w)
	assert.Equal(t, float64(53), record["pieces"])
	recordID := record["id"].(string)

	// An invalid location code is rejected before it reaches the domain.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/inventory/records", "alice", map[string]any{
		"warehouse_id": setup.WarehouseID.String(),
		"sku":          "SKU-501",
		"product_name": "Bolt M10",
		"location":     "7B",
		"cartons":      1,
		"carton_rate":  10,
		"box_rate":     5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Plan picking.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/picking/plan", "alice", map[string]any{
		"warehouse_id": setup.WarehouseID.String(),
		"needs": []map[string]any{
			{"product_code": "SKU-500", "needed_pieces": 23},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decodeData(t, w)
	summary := plan["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["sufficient_products"])

	// Run a transfer through its whole workflow over the API.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/transfers", "alice", map[string]any{
		"lines": []map[string]any{
			{"record_id": recordID, "to_location": "B2-1", "mode": "PARTIAL", "cartons": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decodeData(t, w)["id"].(string)

	// Without an actor the workflow endpoints refuse to act.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/submit", orderID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/submit", orderID), "alice", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A non-approver gets 403.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/approve", orderID), "alice", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/approve", orderID), "boss", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/execute", orderID), "alice", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	execution := decodeData(t, w)
	order := execution["order"].(map[string]any)
	assert.Equal(t, "COMPLETED", order["status"])
	mutations := execution["mutations"].([]any)
	require.Len(t, mutations, 1)
	assert.Equal(t, float64(33), mutations[0].(map[string]any)["new_source_pieces"])

	// The movement shows up on the source record's log.
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/inventory/records/%s/movements", recordID), "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var movementsResp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &movementsResp))
	require.Len(t, movementsResp.Data, 1)
	assert.Equal(t, "B2-1", movementsResp.Data[0]["to_location"])

	// Executing the same order again is rejected: it is already terminal.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/transfers/%s/execute", orderID), "alice", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown orders are 404.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/transfers/00000000-0000-0000-0000-000000000001/submit", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
