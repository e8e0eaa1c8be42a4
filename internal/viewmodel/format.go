package viewmodel

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/timeutil"
)

// Display placeholders.
const (
	Missing = "—"
	TBD     = "TBD"
)

// FormatStat renders one stat for display; absent or non-numeric values render as Missing.
func FormatStat(key string, line players.StatLine) string {
	if key == "inningsPitched" {
		if raw, ok := line[key]; ok {
			if s := strings.TrimSpace(asString(raw)); s != "" {
				return s
			}
		}
		return Missing
	}

	v, ok := line.Float(key)
	if !ok {
		return Missing
	}
	switch key {
	case "avg", "obp", "slg", "ops":
		return rate(v)
	case "era", "whip":
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
}

// rate prints three decimals without the leading zero (.285, 1.024).
func rate(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}

func asString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case nil:
		return ""
	}
	if f, ok := players.Value(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// FormatLocalTime renders an ISO-8601 instant as a wall-clock time in loc, e.g. "3:05 PM".
// Unparseable input yields "".
func FormatLocalTime(iso string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(iso))
	if err != nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("3:04 PM")
}

// TodayDate returns now's date in loc as YYYY-MM-DD.
func TodayDate(now time.Time, loc *time.Location) string {
	return timeutil.Today(now, loc)
}
