package server

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parsePagination reads offset/limit with route-level defaults.
func parsePagination(offsetRaw, limitRaw string, defaultLimit int) (offset, limit int, err error) {
	limit = defaultLimit

	if parsed, perr := parseOptionalInt(offsetRaw); perr != nil {
		return 0, 0, errors.New("invalid_offset")
	} else if parsed != nil {
		if *parsed < 0 {
			return 0, 0, errors.New("invalid_offset")
		}
		offset = *parsed
	}

	if parsed, perr := parseOptionalInt(limitRaw); perr != nil {
		return 0, 0, errors.New("invalid_limit")
	} else if parsed != nil {
		if *parsed <= 0 {
			return 0, 0, errors.New("invalid_limit")
		}
		limit = *parsed
	}

	return offset, limit, nil
}

// parseCSV splits a comma-separated query value ("expand", "fields").
func parseCSV(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		if endOfDay {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		} else {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return &parsed, nil
	}
	return nil, errors.New("invalid_time")
}
