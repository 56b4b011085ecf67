package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1 октября 2026 — 15 октября 2026", FormatDateRange(start, end, language.Russian))
	assert.Equal(t, "1 October 2026 — 15 October 2026", FormatDateRange(start, end, language.English))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "31 декабря 2025", FormatDate(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), language.Russian))
	assert.Equal(t, "3 мая 2026", FormatDate(time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC), language.MustParse("ru-RU")))
	assert.Empty(t, FormatDate(time.Time{}, language.Russian))
}

func TestLocalizer_Plural(t *testing.T) {
	ru := NewLocalizer(language.Russian)
	tests := []struct {
		n    int
		want string
	}{
		{1, "Найдено 1 предложение"},
		{3, "Найдено 3 предложения"},
		{5, "Найдено 5 предложений"},
		{11, "Найдено 11 предложений"},
		{21, "Найдено 21 предложение"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ru.T("results.found", tt.n))
	}

	en := NewLocalizer(language.English)
	assert.Equal(t, "Found 1 offer", en.T("results.found", 1))
	assert.Equal(t, "Found 4 offers", en.T("results.found", 4))
}

func TestLocalizer_Names(t *testing.T) {
	en := NewLocalizer(language.English)
	assert.Equal(t, "France", en.Country("FR"))
	assert.Equal(t, "Japan", en.Country("JP"))
	assert.Equal(t, "XX1", en.Country("XX1"))
	assert.Equal(t, "Surfing", en.Sport("surfing"))
	assert.Equal(t, "base_jumping", en.Sport("base_jumping"))
	assert.Empty(t, en.Sport(""))

	ru := NewLocalizer(language.Russian)
	assert.Equal(t, "Рафтинг", ru.Sport("rafting"))
	assert.Equal(t, "Назад", ru.T("common.back"))
	assert.Equal(t, "ru", ru.Lang())
}

func TestLocalizer_Amount(t *testing.T) {
	en := NewLocalizer(language.English)
	assert.Equal(t, "100,000", en.Amount(100000))
	assert.Equal(t, "45.5 USD", en.Money(45.5, "USD"))
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		cookie  string
		accept  string
		want    language.Tag
		persist bool
	}{
		{name: "default", want: language.Russian},
		{name: "query", query: "en", want: language.English, persist: true},
		{name: "query with region", query: "en-GB", want: language.English, persist: true},
		{name: "cookie", cookie: "en", want: language.English},
		{name: "query beats cookie", query: "ru", cookie: "en", want: language.Russian, persist: true},
		{name: "accept language", accept: "en-US,en;q=0.9", want: language.English},
		{name: "unsupported accept language", accept: "de", want: language.Russian},
		{name: "garbage query falls through", query: "!!", cookie: "en", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?" + url.Values{LangParam: {tt.query}}.Encode()
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			tag, persist := ResolveTag(req, language.Russian)
			assert.Equal(t, tt.want, tag)
			assert.Equal(t, tt.persist, persist)
		})
	}
}

func TestParseDefaultTag(t *testing.T) {
	assert.Equal(t, language.English, ParseDefaultTag("en"))
	assert.Equal(t, language.Russian, ParseDefaultTag("ru"))
	assert.Equal(t, language.Russian, ParseDefaultTag(""))
}

func TestLangLinks_KeepQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/results?country=FR&lang=ru", nil)
	links := langLinks(req, language.Russian)

	require.Len(t, links, 2)
	assert.Equal(t, "RU", links[0].Code)
	assert.True(t, links[0].Active)
	assert.Equal(t, "/results?country=FR&lang=en", links[1].URL)
	assert.False(t, links[1].Active)
}

func TestParseTripState(t *testing.T) {
	s, err := ParseTripState(url.Values{
		"country": {" FR "},
		"sport":   {"surfing"},
		"start":   {"2026-10-01"},
		"end":     {"2026-10-15"},
	})
	require.NoError(t, err)
	assert.Equal(t, "FR", s.Country)
	assert.Equal(t, "2026-10-01", s.StartValue())
	assert.Equal(t, url.Values{
		"country": {"FR"},
		"sport":   {"surfing"},
		"start":   {"2026-10-01"},
		"end":     {"2026-10-15"},
	}, s.Query())

	_, err = ParseTripState(url.Values{"start": {"01.10.2026"}})
	assert.ErrorIs(t, err, errBadDate)

	_, err = ParseTripState(url.Values{"start": {"2026-10-15"}, "end": {"2026-10-01"}})
	assert.ErrorIs(t, err, errDateRange)

	s, err = ParseTripState(url.Values{"start": {"2026-10-01"}, "end": {"2026-10-01"}})
	require.NoError(t, err)
	assert.Empty(t, s.Sport)
	assert.Empty(t, TripState{}.Query())
}
