package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/scoring"
)

func TestRunNoProducts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("list_product_ids").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	engine := scoring.NewEngine(mock, config.DefaultWeights(), nil)
	result := Run(context.Background(), mock, engine, 4, slog.Default())

	assert.Zero(t, result.ItemsFound)
	assert.Zero(t, result.ItemsScored)
	assert.Empty(t, result.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunListFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("list_product_ids").
		WillReturnError(errors.New("connection lost"))

	engine := scoring.NewEngine(mock, config.DefaultWeights(), nil)
	result := Run(context.Background(), mock, engine, 4, slog.Default())

	assert.Zero(t, result.ItemsScored)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "list product ids")
}

func TestRunScoresEachProductOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("list_product_ids").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	// Minimal product: empty title and category, so the engine skips the
	// signal window reads and writes a zero score.
	mock.ExpectQuery("product_for_scoring").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "sku", "title", "category", "rank_current", "rank_previous", "last_updated"}).
			AddRow(int64(1), "SKU-1", "", "", nil, nil, time.Now().UTC()))
	mock.ExpectExec("update_product_momentum").
		WithArgs(int64(1), 0.0, config.ConfidenceLow, false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	engine := scoring.NewEngine(mock, config.DefaultWeights(), nil)
	result := Run(context.Background(), mock, engine, 1, slog.Default())

	assert.Equal(t, 1, result.ItemsFound)
	assert.Equal(t, 1, result.ItemsScored)
	assert.Zero(t, result.ItemsFailed)
	assert.Zero(t, result.Trending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRecordsFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("list_product_ids").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectQuery("product_for_scoring").
		WithArgs(int64(9)).
		WillReturnError(errors.New("connection lost"))

	engine := scoring.NewEngine(mock, config.DefaultWeights(), nil)
	result := Run(context.Background(), mock, engine, 1, slog.Default())

	assert.Equal(t, 1, result.ItemsFailed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "product 9")
}

func TestRunResultSummary(t *testing.T) {
	r := RunResult{ItemsFound: 10, ItemsScored: 8, Trending: 3, ItemsFailed: 2}
	s := r.Summary()
	assert.Contains(t, s, "found=10")
	assert.Contains(t, s, "scored=8")
	assert.Contains(t, s, "trending=3")
	assert.Contains(t, s, "failed=2")
}
