package viewmodel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
)

func TestFormatStat(t *testing.T) {
	line := players.StatLine{
		"avg":            ".285",
		"ops":            1.0243,
		"era":            json.Number("3.1"),
		"whip":           "1.2",
		"inningsPitched": "45.2",
		"homeRuns":       "12",
		"losses":         0,
		"obp":            "-.--",
	}

	cases := map[string]string{
		"avg":            ".285",
		"ops":            "1.024",
		"era":            "3.10",
		"whip":           "1.20",
		"inningsPitched": "45.2",
		"homeRuns":       "12",
		"losses":         "0",
		"obp":            Missing,
		"slg":            Missing,
	}
	for key, want := range cases {
		assert.Equal(t, want, FormatStat(key, line), key)
	}
	assert.Equal(t, Missing, FormatStat("inningsPitched", players.StatLine{}))
}

func TestFormatLocalTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	assert.Equal(t, "7:05 PM", FormatLocalTime("2025-06-01T23:05:00Z", ny))
	assert.Equal(t, "", FormatLocalTime("not a date", ny))
	assert.Equal(t, "", FormatLocalTime("", ny))
}

func TestTodayDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	now := time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-01", TodayDate(now, ny))
}
