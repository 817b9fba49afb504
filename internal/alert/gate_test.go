package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listingradar/radar/internal/config"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func testGateConfig() *config.Config {
	return &config.Config{
		MomentumThreshold: 60,
		AlertConfidences:  []config.Confidence{config.ConfidenceMedium, config.ConfidenceHigh},
		DedupWindow:       6 * time.Hour,
	}
}

func candidateColumns() []string {
	return []string{"id", "sku", "title", "category", "price",
		"rank_current", "rank_previous", "momentum_score", "confidence_level"}
}

func expectEligible(mock pgxmock.PgxPoolIface, rows *pgxmock.Rows) {
	mock.ExpectQuery("eligible_products").
		WithArgs(60.0, []string{"medium", "high"}).
		WillReturnRows(rows)
}

func TestCheckAndSendFirstAlert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(candidateColumns()).
		AddRow(int64(1), "B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen", 99.99,
			nil, nil, 72.5, config.ConfidenceHigh)
	expectEligible(mock, rows)

	// Never alerted before.
	mock.ExpectQuery("last_alert_sent_at").
		WithArgs("B09G9F43QL").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("insert_alert").
		WithArgs("B09G9F43QL", TypeMomentumSpike, pgxmock.AnyArg(), 72.5,
			config.ConfidenceHigh, pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sender := &fakeSender{}
	gate := NewGate(mock, sender, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "LEVOIT Core 300S Air Purifier")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndSendDedupInsideWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(candidateColumns()).
		AddRow(int64(1), "B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen", 99.99,
			nil, nil, 72.5, config.ConfidenceHigh)
	expectEligible(mock, rows)

	// Alerted one hour ago: inside the six hour quiet period, no insert.
	mock.ExpectQuery("last_alert_sent_at").
		WithArgs("B09G9F43QL").
		WillReturnRows(pgxmock.NewRows([]string{"sent_at"}).
			AddRow(time.Now().UTC().Add(-1 * time.Hour)))

	sender := &fakeSender{}
	gate := NewGate(mock, sender, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndSendAfterWindowExpires(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(candidateColumns()).
		AddRow(int64(1), "B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen", 99.99,
			nil, nil, 72.5, config.ConfidenceHigh)
	expectEligible(mock, rows)

	// Alerted seven hours ago: quiet period over, alert fires again.
	mock.ExpectQuery("last_alert_sent_at").
		WithArgs("B09G9F43QL").
		WillReturnRows(pgxmock.NewRows([]string{"sent_at"}).
			AddRow(time.Now().UTC().Add(-7 * time.Hour)))
	mock.ExpectExec("insert_alert").
		WithArgs("B09G9F43QL", TypeMomentumSpike, pgxmock.AnyArg(), 72.5,
			config.ConfidenceHigh, pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sender := &fakeSender{}
	gate := NewGate(mock, sender, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndSendRecordsFailedDelivery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(candidateColumns()).
		AddRow(int64(1), "B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen", 99.99,
			nil, nil, 72.5, config.ConfidenceHigh)
	expectEligible(mock, rows)

	mock.ExpectQuery("last_alert_sent_at").
		WithArgs("B09G9F43QL").
		WillReturnError(pgx.ErrNoRows)
	// Record is written with delivery_succeeded=false; the quiet period
	// starts anyway.
	mock.ExpectExec("insert_alert").
		WithArgs("B09G9F43QL", TypeMomentumSpike, pgxmock.AnyArg(), 72.5,
			config.ConfidenceHigh, pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sender := &fakeSender{err: errors.New("telegram down")}
	gate := NewGate(mock, sender, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndSendNilSender(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(candidateColumns()).
		AddRow(int64(1), "B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen", 99.99,
			nil, nil, 72.5, config.ConfidenceHigh)
	expectEligible(mock, rows)

	mock.ExpectQuery("last_alert_sent_at").
		WithArgs("B09G9F43QL").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("insert_alert").
		WithArgs("B09G9F43QL", TypeMomentumSpike, pgxmock.AnyArg(), 72.5,
			config.ConfidenceHigh, pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	gate := NewGate(mock, nil, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAndSendNoCandidates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expectEligible(mock, pgxmock.NewRows(candidateColumns()))

	gate := NewGate(mock, &fakeSender{}, testGateConfig(), nil)

	n, err := gate.CheckAndSend(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendTest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("insert_alert").
		WithArgs("-", TypeTest, pgxmock.AnyArg(), 0.0,
			config.Confidence(""), pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sender := &fakeSender{}
	gate := NewGate(mock, sender, testGateConfig(), nil)

	delivered, err := gate.SendTest(context.Background())
	require.NoError(t, err)
	assert.True(t, delivered)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Test Alert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatMomentumAlert(t *testing.T) {
	prev, cur := 5000, 1200
	c := Candidate{
		SKU:           "B0842B5C62",
		Title:         "Logitech MX Master 3S Mouse",
		Category:      "Office Products",
		Price:         89.99,
		RankCurrent:   &cur,
		RankPrevious:  &prev,
		MomentumScore: 81.3,
		Confidence:    config.ConfidenceHigh,
	}
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	msg := FormatMomentumAlert(c, at)
	assert.Contains(t, msg, "Logitech MX Master 3S Mouse")
	assert.Contains(t, msg, "B0842B5C62")
	assert.Contains(t, msg, "81.3")
	assert.Contains(t, msg, "high")
	assert.Contains(t, msg, "5000")
	assert.Contains(t, msg, "1200")
	assert.Contains(t, msg, "2026-03-14")

	// Same inputs, same message.
	assert.Equal(t, msg, FormatMomentumAlert(c, at))
}
