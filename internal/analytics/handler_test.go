package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(service).RegisterRoutes(router.Group("/api/v1/intel"))
	return router
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

func TestHandler_GetDashboard_NullGrowthWithoutSnapshot(t *testing.T) {
	service, reader, snapshots := newTestService(nil, testConfig)
	expectEmptyPlatform(reader, snapshots)

	req := httptest.NewRequest("GET", "/api/v1/intel/dashboard", nil)
	w := httptest.NewRecorder()
	setupRouter(service).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(w)["data"].(map[string]interface{})
	for _, section := range []string{"revenue", "customer", "vendor", "operational", "growth"} {
		assert.Contains(t, data, section)
	}

	growth := data["growth"].(map[string]interface{})
	assert.Contains(t, growth, "conversion_rate_pct")
	assert.Nil(t, growth["conversion_rate_pct"])
	assert.Nil(t, growth["organic_traffic"])

	customer := data["customer"].(map[string]interface{})
	assert.Nil(t, customer["ltv_to_cac"])
	assert.Equal(t, []interface{}{}, data["vendor"].(map[string]interface{})["revenue_distribution"])
}

func TestHandler_UpsertMarketingSnapshot(t *testing.T) {
	service, _, snapshots := newTestService(nil, testConfig)
	stored := &MarketingSnapshot{
		PeriodDate:     time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
		PeriodType:     PeriodWeekly,
		OrganicTraffic: ptr(int64(1200)),
	}
	snapshots.On("UpsertSnapshot", mock.Anything, mock.Anything).Return(stored, nil).Once()

	payload, _ := json.Marshal(map[string]interface{}{
		"period_date":     "2024-06-20",
		"period_type":     "weekly",
		"organic_traffic": 1200,
	})
	req := httptest.NewRequest("PUT", "/api/v1/intel/marketing/snapshots", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(w)["data"].(map[string]interface{})
	assert.Equal(t, "weekly", data["period_type"])
	assert.Equal(t, 1200.0, data["organic_traffic"])
}

func TestHandler_UpsertMarketingSnapshot_InvalidType(t *testing.T) {
	service, _, _ := newTestService(nil, testConfig)

	payload := []byte(`{"period_date":"2024-06","period_type":"quarterly"}`)
	req := httptest.NewRequest("PUT", "/api/v1/intel/marketing/snapshots", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(service).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := parseResponse(w)["error"].(map[string]interface{})["fields"].(map[string]interface{})
	assert.Contains(t, fields, "period_type")
}
