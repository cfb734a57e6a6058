package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pesokrava/bugstore/internal/domain"
)

const maxRequestBodySize = 1 << 20 // 1MB

// dateLayouts are tried in order; the first that parses wins
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"01-02-2006",
}

// DecodeJSON decodes JSON request body into the provided struct with size limit.
// Malformed bodies are reported as ErrInvalidFormat.
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return domain.NewError(domain.ErrInvalidFormat, domain.MsgInvalidBody)
	}
	return nil
}

// GetUUIDParam extracts a UUID parameter from the URL
func GetUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return uuid.Nil, domain.NewError(domain.ErrInvalidFormat, fmt.Sprintf("missing parameter: %s", key))
	}

	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, domain.NewError(domain.ErrInvalidFormat, domain.MsgInvalidIdentifier)
	}

	return id, nil
}

// GetIntQuery extracts an integer query parameter with a default value
func GetIntQuery(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// GetPageParams extracts page and pageSize. Clamping happens in domain.NewPage.
func GetPageParams(r *http.Request) (page, pageSize int) {
	return GetIntQuery(r, "page", 1), GetIntQuery(r, "pageSize", domain.DefaultPageSize)
}

// ParseDate parses a report date. The second result is true when value
// carried no time of day.
func ParseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, domain.NewError(domain.ErrInvalidFormat, domain.MsgInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true, nil
		}
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}

	return time.Time{}, false, domain.NewError(domain.ErrInvalidFormat, domain.MsgInvalidDate)
}

// GetDateRange reads startDate and endDate. A date-only endDate covers that whole day.
func GetDateRange(r *http.Request) (start, end time.Time, err error) {
	start, _, err = ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, dateOnly, err := ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		end = EndOfDay(end)
	}

	return start, end, nil
}

// EndOfDay returns the last microsecond of t's day
func EndOfDay(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, 1).Add(-time.Microsecond)
}
