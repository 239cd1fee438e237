package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularity_Valid(t *testing.T) {
	assert.True(t, GranularityDay.Valid())
	assert.True(t, GranularityWeek.Valid())
	assert.True(t, GranularityMonth.Valid())
	assert.False(t, Granularity("year").Valid())
	assert.False(t, Granularity("month; DROP TABLE orders").Valid())
}

func TestMonthWindow(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	// 00:30 on 1 March in Lagos is still February in UTC
	w := MonthWindow(time.Date(2024, 3, 1, 0, 30, 0, 0, lagos))

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestMonthWindow_DecemberRollsOver(t *testing.T) {
	w := MonthWindow(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestTimeWindow_Validate(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		window  TimeWindow
		wantErr bool
	}{
		{name: "all time", window: AllTime},
		{name: "open ended", window: Since(now)},
		{name: "bounded", window: TimeWindow{From: now, To: now.Add(time.Hour)}},
		{name: "empty interval", window: TimeWindow{From: now, To: now}, wantErr: true},
		{name: "inverted", window: TimeWindow{From: now, To: now.Add(-time.Hour)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeWindow_Bounds(t *testing.T) {
	from, to := AllTime.bounds()
	assert.Nil(t, from)
	assert.Nil(t, to)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	from, to = Since(start).bounds()
	require.NotNil(t, from)
	assert.Equal(t, start, *from)
	assert.Nil(t, to)
}

func TestAsUTC(t *testing.T) {
	local := time.Date(2024, 6, 1, 0, 0, 0, 0, time.FixedZone("X", -7200))
	got := asUTC(local)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 0, got.Hour())
}
