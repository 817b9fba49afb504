package signal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signalColumns() []string {
	return []string{"entity_key", "platform", "volume", "velocity", "sentiment", "recorded_at"}
}

func TestInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	records := []Record{
		{EntityKey: "air fryer", Platform: PlatformSearchTrends, Volume: 40, Velocity: 5, Sentiment: 0.5, RecordedAt: now},
		{EntityKey: "air fryer", Platform: PlatformReddit, Volume: 22, Velocity: 2, Sentiment: 0.7, RecordedAt: now},
	}
	for _, r := range records {
		mock.ExpectExec("insert_signal").
			WithArgs(r.EntityKey, r.Platform, r.Volume, r.Velocity, r.Sentiment, r.RecordedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	n, err := Insert(context.Background(), mock, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertStopsOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	records := []Record{
		{EntityKey: "air fryer", Platform: PlatformSearchTrends, RecordedAt: now},
		{EntityKey: "yoga mat", Platform: PlatformSearchTrends, RecordedAt: now},
	}
	mock.ExpectExec("insert_signal").
		WithArgs(records[0].EntityKey, records[0].Platform, 0.0, 0.0, 0.0, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("insert_signal").
		WithArgs(records[1].EntityKey, records[1].Platform, 0.0, 0.0, 0.0, now).
		WillReturnError(errors.New("connection lost"))

	n, err := Insert(context.Background(), mock, records)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "yoga mat")
}

func TestFetchWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Now().UTC().AddDate(0, 0, -30)
	newest := time.Now().UTC()
	mock.ExpectQuery("signal_window").
		WithArgs("air fryer", PlatformSearchTrends, since, 5).
		WillReturnRows(pgxmock.NewRows(signalColumns()).
			AddRow("air fryer", PlatformSearchTrends, 45.0, 10.0, 0.5, newest).
			AddRow("air fryer", PlatformSearchTrends, 35.0, 5.0, 0.5, newest.Add(-24*time.Hour)))

	records, err := FetchWindow(context.Background(), mock, "air fryer", PlatformSearchTrends, since, 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first, as the window reader contract requires.
	assert.Equal(t, 45.0, records[0].Volume)
	assert.Equal(t, 35.0, records[1].Volume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchSocialWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Now().UTC().AddDate(0, 0, -7)
	mock.ExpectQuery("signal_social_window").
		WithArgs("air fryer", []string{"social_reddit", "social_shortvideo"}, since).
		WillReturnRows(pgxmock.NewRows(signalColumns()).
			AddRow("air fryer", PlatformReddit, 30.0, 4.0, 0.8, time.Now().UTC()))

	records, err := FetchSocialWindow(context.Background(), mock, "air fryer", since)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, PlatformReddit, records[0].Platform)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlatformValid(t *testing.T) {
	assert.True(t, PlatformSearchTrends.Valid())
	assert.True(t, PlatformReddit.Valid())
	assert.True(t, PlatformShortVideo.Valid())
	assert.True(t, PlatformRankSource.Valid())
	assert.False(t, Platform("tiktok").Valid())
	assert.False(t, Platform("").Valid())
}
