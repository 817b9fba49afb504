package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := Weights{RankVelocity: 0.5, SearchAcceleration: 0.5, SocialBuzz: 0.5}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")

	// Tiny float drift is tolerated.
	drifted := Weights{RankVelocity: 0.35, SearchAcceleration: 0.25, SocialBuzz: 0.2, CompetitionDensity: 0.2000000001}
	assert.NoError(t, drifted.Validate())
}

func TestValidConfidence(t *testing.T) {
	assert.True(t, ValidConfidence("low"))
	assert.True(t, ValidConfidence("medium"))
	assert.True(t, ValidConfidence("high"))
	assert.False(t, ValidConfidence("certain"))
	assert.False(t, ValidConfidence(""))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/radar")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/radar", cfg.DatabaseURL)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, DefaultWeights(), cfg.Weights)
	assert.Equal(t, 60.0, cfg.MomentumThreshold)
	assert.Equal(t, []Confidence{ConfidenceMedium, ConfidenceHigh}, cfg.AlertConfidences)
	assert.Equal(t, 6*time.Hour, cfg.DedupWindow)
	assert.Equal(t, 4, cfg.ScoreWorkers)
	assert.Equal(t, 9, cfg.DigestHour)
	assert.True(t, cfg.CacheEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RADAR_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsBadWeights(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/radar")
	t.Setenv("WEIGHT_RANK_VELOCITY", "0.9")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestLoadRejectsUnknownConfidence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/radar")
	t.Setenv("ALERT_CONFIDENCE_LEVELS", "medium,certain")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certain")
}

func TestLoadRejectsBadDigestHour(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/radar")
	t.Setenv("DIGEST_HOUR", "24")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DIGEST_HOUR")
}

func TestAlertConfidenceAllowed(t *testing.T) {
	cfg := &Config{AlertConfidences: []Confidence{ConfidenceMedium, ConfidenceHigh}}
	assert.True(t, cfg.AlertConfidenceAllowed(ConfidenceHigh))
	assert.True(t, cfg.AlertConfidenceAllowed(ConfidenceMedium))
	assert.False(t, cfg.AlertConfidenceAllowed(ConfidenceLow))
}

func TestEnvList(t *testing.T) {
	t.Setenv("RADAR_TEST_LIST", "a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, envList("RADAR_TEST_LIST", nil))

	t.Setenv("RADAR_TEST_LIST", "")
	assert.Equal(t, []string{"x"}, envList("RADAR_TEST_LIST", []string{"x"}))
}
