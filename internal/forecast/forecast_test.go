package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRevenueReader struct {
	mock.Mock
}

func (m *mockRevenueReader) RevenueByPeriod(ctx context.Context, g aggregation.Granularity, w aggregation.TimeWindow) ([]aggregation.PeriodTotal, error) {
	args := m.Called(ctx, g, w)
	totals, _ := args.Get(0).([]aggregation.PeriodTotal)
	return totals, args.Error(1)
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestFitLine_ExactLine(t *testing.T) {
	origin := month(2024, 1)
	day := 24 * time.Hour
	points := []Point{
		{Time: origin, Value: 100},
		{Time: origin.Add(10 * day), Value: 200},
		{Time: origin.Add(20 * day), Value: 300},
	}

	line, ok := FitLine(points)

	require.True(t, ok)
	perMs := 100.0 / float64((10 * day).Milliseconds())
	assert.InDelta(t, perMs, line.Slope, 1e-15)
	assert.InDelta(t, 100, line.Intercept, 1e-6)
	assert.InDelta(t, 400, line.At(origin.Add(30*day)), 1e-6)
}

func TestFitLine_MatchesTextbookFormula(t *testing.T) {
	points := []Point{
		{Time: time.UnixMilli(1_700_000_000_000), Value: 12},
		{Time: time.UnixMilli(1_702_592_000_000), Value: 18},
		{Time: time.UnixMilli(1_705_270_400_000), Value: 11},
		{Time: time.UnixMilli(1_707_948_800_000), Value: 25},
	}

	var n, sx, sy, sxy, sxx float64
	for _, p := range points {
		x := float64(p.Time.UnixMilli())
		n++
		sx += x
		sy += p.Value
		sxy += x * p.Value
		sxx += x * x
	}
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	intercept := (sy - slope*sx) / n

	line, ok := FitLine(points)
	require.True(t, ok)

	assert.InEpsilon(t, slope, line.Slope, 1e-6)
	at := time.UnixMilli(1_710_000_000_000)
	assert.InEpsilon(t, intercept+slope*float64(at.UnixMilli()), line.At(at), 1e-6)
}

func TestFitLine_Degenerate(t *testing.T) {
	_, ok := FitLine(nil)
	assert.False(t, ok)

	_, ok = FitLine([]Point{{Time: month(2024, 1), Value: 5}})
	assert.False(t, ok)

	same := month(2024, 1)
	_, ok = FitLine([]Point{{Time: same, Value: 5}, {Time: same, Value: 9}})
	assert.False(t, ok)
}

func TestProject_ClampsNegative(t *testing.T) {
	origin := month(2024, 1)
	line := Line{Origin: origin, Slope: -1e-6, Intercept: 1000}

	projected := Project(line, origin, ProjectionStep, 3)

	require.Len(t, projected, 3)
	for i, p := range projected {
		assert.Equal(t, origin.Add(time.Duration(i+1)*ProjectionStep), p.Time)
		assert.Equal(t, 0.0, p.Value)
	}
}

func TestBuildTrend_Degeneracy(t *testing.T) {
	empty := BuildTrend(nil)
	assert.Empty(t, empty.Historical)
	assert.Empty(t, empty.Predicted)
	assert.NotNil(t, empty.Predicted)

	single := BuildTrend([]aggregation.PeriodTotal{{Period: month(2024, 5), GMV: 5000}})
	assert.Len(t, single.Historical, 1)
	assert.Empty(t, single.Predicted)
}

func TestBuildTrend_GrowingRevenue(t *testing.T) {
	totals := []aggregation.PeriodTotal{
		{Period: month(2024, 1), GMV: 10000},
		{Period: month(2024, 2), GMV: 12000},
		{Period: month(2024, 3), GMV: 14000},
	}

	trend := BuildTrend(totals)

	require.Len(t, trend.Historical, 3)
	assert.Equal(t, "2024-01", trend.Historical[0].Period)
	require.Len(t, trend.Predicted, Horizon)
	assert.Equal(t, "2024-03-31", trend.Predicted[0].Period)
	prev := 14000.0
	for _, p := range trend.Predicted {
		assert.Greater(t, p.PredictedGMV, prev)
		prev = p.PredictedGMV
	}
}

func TestGetRevenueTrend_TrailingTwelveMonths(t *testing.T) {
	reader := new(mockRevenueReader)
	service := NewService(reader)
	service.now = func() time.Time { return time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC) }

	reader.On("RevenueByPeriod", mock.Anything, aggregation.GranularityMonth, aggregation.Since(month(2023, 7))).
		Return([]aggregation.PeriodTotal{}, nil).Once()

	trend, err := service.GetRevenueTrend(context.Background())

	require.NoError(t, err)
	assert.Empty(t, trend.Historical)
	reader.AssertExpectations(t)
}

func TestGetRevenueTrend_StorageFailure(t *testing.T) {
	reader := new(mockRevenueReader)
	service := NewService(reader)
	reader.On("RevenueByPeriod", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

	_, err := service.GetRevenueTrend(context.Background())

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestHandler_GetRevenueTrend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := new(mockRevenueReader)
	reader.On("RevenueByPeriod", mock.Anything, mock.Anything, mock.Anything).Return([]aggregation.PeriodTotal{
		{Period: month(2024, 1), GMV: 100},
	}, nil).Once()

	router := gin.New()
	NewHandler(NewService(reader)).RegisterRoutes(router.Group("/api/v1/intel"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/intel/revenue/trend", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"predicted":[]`)
}
