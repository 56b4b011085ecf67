package web

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// DateLayout - формат дат в query и в input type=date
const DateLayout = "2006-01-02"

var (
	errBadDate   = errors.New("bad date")
	errDateRange = errors.New("end date before start date")
)

// TripState - параметры поиска, которые передаются между страницами через query
type TripState struct {
	Country string
	Sport   string
	Start   time.Time
	End     time.Time
}

// Query кодирует состояние поиска; пустые поля опускаются
func (s TripState) Query() url.Values {
	q := url.Values{}
	if s.Country != "" {
		q.Set("country", s.Country)
	}
	if s.Sport != "" {
		q.Set("sport", s.Sport)
	}
	if !s.Start.IsZero() {
		q.Set("start", s.Start.Format(DateLayout))
	}
	if !s.End.IsZero() {
		q.Set("end", s.End.Format(DateLayout))
	}
	return q
}

func (s TripState) StartValue() string { return formatInputDate(s.Start) }
func (s TripState) EndValue() string   { return formatInputDate(s.End) }

func formatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

// ParseTripState читает состояние поиска из формы или query.
// Все поля необязательны, но дата возвращения не может быть раньше даты отъезда.
func ParseTripState(v url.Values) (TripState, error) {
	s := TripState{
		Country: strings.TrimSpace(v.Get("country")),
		Sport:   strings.TrimSpace(v.Get("sport")),
	}

	var err error
	if s.Start, err = parseDate(v.Get("start")); err != nil {
		return s, err
	}
	if s.End, err = parseDate(v.Get("end")); err != nil {
		return s, err
	}
	if !s.Start.IsZero() && !s.End.IsZero() && s.End.Before(s.Start) {
		return s, errDateRange
	}
	return s, nil
}

// withQuery добавляет к пути закодированную query-строку
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
