package pricing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		bodyBytes, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req

	return c, w
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return response
}

func TestHandler_QuoteDelivery_OutOfRange(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	handler := NewHandler(NewService(repo, geo.HaversineResolver{}))
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(&models.Vendor{
		ID:                  vendorID,
		Location:            &models.Coordinates{},
		MaxDeliveryRadiusKm: ptr(5.0),
		PerKmRate:           ptr(100.0),
		MinDeliveryFee:      ptr(200.0),
	}, nil).Once()

	c, w := setupTestContext("POST", "/api/v1/intel/delivery/quote", map[string]interface{}{
		"vendor_id":          vendorID.String(),
		"customer_latitude":  0.0,
		"customer_longitude": 0.0899322,
	})

	handler.QuoteDelivery(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(w)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["delivery_fee"])
	assert.InDelta(t, 10.0, data["distance_km"].(float64), 0.01)
	assert.Equal(t, true, data["out_of_range"])
	repo.AssertExpectations(t)
}

func TestHandler_QuoteDelivery_NullDistance(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	handler := NewHandler(NewService(repo, nil))
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(&models.Vendor{
		ID:             vendorID,
		MinDeliveryFee: ptr(350.0),
	}, nil).Once()

	c, w := setupTestContext("POST", "/api/v1/intel/delivery/quote", map[string]interface{}{
		"vendor_id": vendorID.String(),
	})

	handler.QuoteDelivery(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(w)["data"].(map[string]interface{})
	assert.Equal(t, 350.0, data["delivery_fee"])
	assert.Contains(t, data, "distance_km")
	assert.Nil(t, data["distance_km"])
}

func TestHandler_QuoteDelivery_MalformedBody(t *testing.T) {
	handler := NewHandler(NewService(new(mockVendorPolicyRepository), nil))

	c, w := setupTestContext("POST", "/api/v1/intel/delivery/quote", `{"vendor_id":`)

	handler.QuoteDelivery(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, parseResponse(w)["success"].(bool))
}

func TestHandler_QuoteDelivery_ValidationFields(t *testing.T) {
	handler := NewHandler(NewService(new(mockVendorPolicyRepository), nil))

	c, w := setupTestContext("POST", "/api/v1/intel/delivery/quote", map[string]interface{}{
		"vendor_id":         uuid.New().String(),
		"customer_latitude": 120.0,
	})

	handler.QuoteDelivery(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errInfo := parseResponse(w)["error"].(map[string]interface{})
	fields := errInfo["fields"].(map[string]interface{})
	assert.Contains(t, fields, "customer_latitude")
	assert.Contains(t, fields, "customer_longitude")
}

func TestHandler_QuoteDelivery_UnknownVendor(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	handler := NewHandler(NewService(repo, nil))
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(nil, ErrVendorNotFound).Once()

	c, w := setupTestContext("POST", "/api/v1/intel/delivery/quote", map[string]interface{}{
		"vendor_id": vendorID.String(),
	})

	handler.QuoteDelivery(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
