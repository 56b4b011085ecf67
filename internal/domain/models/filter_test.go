package models_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOfferFilter_AllFields(t *testing.T) {
	q := url.Values{}
	q.Set("min_price", "10.5")
	q.Set("max_price", "100")
	q.Set("type", "sport")
	q.Set("currency", "usd")
	q.Set("min_coverage", "50000")

	f, err := models.ParseOfferFilter(q)
	require.NoError(t, err)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 10.5, *f.MinPrice)
	assert.Equal(t, 100.0, *f.MaxPrice)
	assert.Equal(t, "sport", *f.Type)
	// валюта приводится к верхнему регистру
	assert.Equal(t, "USD", *f.Currency)
	assert.Equal(t, int64(50000), *f.MinCoverage)
	assert.False(t, f.IsEmpty())
}

func TestParseOfferFilter_Empty(t *testing.T) {
	f, err := models.ParseOfferFilter(url.Values{"type": {"  "}})
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}

func TestParseOfferFilter_Invalid(t *testing.T) {
	cases := map[string]url.Values{
		"bad min_price":    {"min_price": {"abc"}},
		"bad max_price":    {"max_price": {"1,5"}},
		"bad min_coverage": {"min_coverage": {"10.5"}},
		"inverted range":   {"min_price": {"100"}, "max_price": {"10"}},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := models.ParseOfferFilter(q)
			assert.True(t, errors.Is(err, models.ErrInvalidFilter), "expected ErrInvalidFilter, got %v", err)
		})
	}
}

func TestOfferFilter_QueryRoundTrip(t *testing.T) {
	minCoverage := int64(25000)
	currency := "EUR"
	f := models.OfferFilter{Currency: &currency, MinCoverage: &minCoverage}

	q := f.Query()
	assert.Equal(t, "currency=EUR&min_coverage=25000", q.Encode())

	parsed, err := models.ParseOfferFilter(q)
	require.NoError(t, err)
	assert.Equal(t, f, parsed)
}

func TestOfferInput_WithDefaults(t *testing.T) {
	in := models.OfferInput{Name: "Basic", Type: "sport", CoverageAmount: 10000}.WithDefaults()
	assert.Equal(t, models.DefaultCurrency, in.Currency)

	in = models.OfferInput{Currency: "USD"}.WithDefaults()
	assert.Equal(t, "USD", in.Currency)
}
