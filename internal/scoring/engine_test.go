package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/signal"
)

var engineNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestEngine(mock pgxmock.PgxPoolIface) *Engine {
	e := NewEngine(mock, config.DefaultWeights(), nil)
	e.now = func() time.Time { return engineNow }
	return e
}

func productColumns() []string {
	return []string{"id", "sku", "title", "category", "rank_current", "rank_previous", "last_updated"}
}

func signalColumns() []string {
	return []string{"entity_key", "platform", "volume", "velocity", "sentiment", "recorded_at"}
}

func TestScoreItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	keyword := "stanley quencher h2.0"

	mock.ExpectQuery("product_for_scoring").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(productColumns()).
			AddRow(int64(1), "B0B3YC5VPC", "Stanley Quencher H2.0 FlowState Tumbler",
				"Home & Kitchen", intPtr(900), intPtr(1000), engineNow.Add(-time.Hour)))

	// Search window comes back newest first; oldest-first series is
	// 10, 20, 45 giving acceleration 15.
	mock.ExpectQuery("signal_window").
		WithArgs(keyword, signal.PlatformSearchTrends, engineNow.AddDate(0, 0, -signal.SearchWindowDays), signal.SearchWindowLimit).
		WillReturnRows(pgxmock.NewRows(signalColumns()).
			AddRow(keyword, signal.PlatformSearchTrends, 45.0, 25.0, 0.5, engineNow).
			AddRow(keyword, signal.PlatformSearchTrends, 20.0, 10.0, 0.5, engineNow.AddDate(0, 0, -1)).
			AddRow(keyword, signal.PlatformSearchTrends, 10.0, 0.0, 0.5, engineNow.AddDate(0, 0, -2)))

	mock.ExpectQuery("signal_social_window").
		WithArgs(keyword, []string{"social_reddit", "social_shortvideo"}, engineNow.AddDate(0, 0, -signal.SocialWindowDays)).
		WillReturnRows(pgxmock.NewRows(signalColumns()).
			AddRow(keyword, signal.PlatformReddit, 30.0, 5.0, 0.9, engineNow))

	mock.ExpectQuery("count_new_in_category").
		WithArgs("Home & Kitchen", engineNow.AddDate(0, 0, -CompetitionWindowDays)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(30))

	mock.ExpectExec("update_product_momentum").
		WithArgs(int64(1), pgxmock.AnyArg(), config.ConfidenceHigh, true, engineNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	e := newTestEngine(mock)
	p, err := e.ScoreItem(context.Background(), 1)
	require.NoError(t, err)

	// rank 60*0.35 + search 90*0.25 + social 66*0.20 + competition 80*0.20
	assert.InDelta(t, 72.7, p.MomentumScore, 0.01)
	assert.Equal(t, config.ConfidenceHigh, p.Confidence)
	assert.True(t, p.IsTrending)
	assert.Equal(t, engineNow, p.LastUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreItemEmptyTitleSkipsSignalReads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("product_for_scoring").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(productColumns()).
			AddRow(int64(2), "SF-0000001", "", "", nil, nil, engineNow.Add(-time.Hour)))

	// No search, social, or competition queries expected: title and
	// category are empty.
	mock.ExpectExec("update_product_momentum").
		WithArgs(int64(2), 0.0, config.ConfidenceLow, false, engineNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	e := newTestEngine(mock)
	p, err := e.ScoreItem(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, p.MomentumScore)
	assert.False(t, p.IsTrending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreItemStoreFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("product_for_scoring").
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection lost"))

	e := newTestEngine(mock)
	_, err = e.ScoreItem(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product 3")
}

func TestVolumesOldestFirst(t *testing.T) {
	records := []signal.Record{
		{Volume: 45}, {Volume: 20}, {Volume: 10}, // newest first
	}
	assert.Equal(t, []float64{10, 20, 45}, volumesOldestFirst(records))
	assert.Empty(t, volumesOldestFirst(nil))
}
