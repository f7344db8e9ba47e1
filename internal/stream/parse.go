package stream

import (
	"regexp"
	"strconv"
	"time"
)

var resolutionRe = regexp.MustCompile(`(\d+)\s*[xX×]\s*(\d+)`)

// parseResolution finds a "1920x1080"-style resolution anywhere in s.
func parseResolution(s string) (width, height int) {
	m := resolutionRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	return width, height
}

// parseTimestamp converts an ISO-8601 timestamp to unix seconds, or nil
// when the value is absent or malformed.
func parseTimestamp(s string) *int64 {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}

var durationRe = regexp.MustCompile(`^P(?:([\d.]+)D)?(?:T(?:([\d.]+)H)?(?:([\d.]+)M)?(?:([\d.]+)S)?)?$`)

// parseISODuration converts an ISO-8601 duration ("PT1H2M3.5S") to seconds,
// or nil when the value is absent or malformed.
func parseISODuration(s string) *float64 {
	if s == "" {
		return nil
	}

	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	multipliers := []float64{86400, 3600, 60, 1}
	total := 0.0
	seen := false
	for i, mult := range multipliers {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return nil
		}
		total += v * mult
		seen = true
	}
	if !seen {
		return nil
	}
	return &total
}
