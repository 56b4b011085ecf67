package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter")

// OfferFilter - параметры фильтрации предложений, все поля необязательны
type OfferFilter struct {
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	MinCoverage *int64   `json:"min_coverage,omitempty"`
}

// IsEmpty сообщает, что ни один параметр не задан
func (f OfferFilter) IsEmpty() bool {
	return f.MinPrice == nil && f.MaxPrice == nil && f.Type == nil && f.Currency == nil && f.MinCoverage == nil
}

// Validate проверяет согласованность диапазона цен
func (f OfferFilter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min_price is greater than max_price", ErrInvalidFilter)
	}
	return nil
}

// Query кодирует фильтр в query-строку
func (f OfferFilter) Query() url.Values {
	q := url.Values{}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Type != nil {
		q.Set("type", *f.Type)
	}
	if f.Currency != nil {
		q.Set("currency", *f.Currency)
	}
	if f.MinCoverage != nil {
		q.Set("min_coverage", strconv.FormatInt(*f.MinCoverage, 10))
	}
	return q
}

// ParseOfferFilter разбирает фильтр из query-параметров.
// Пустые значения считаются отсутствующими.
func ParseOfferFilter(q url.Values) (OfferFilter, error) {
	var f OfferFilter

	parseFloat := func(key string) (*float64, error) {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, key)
		}
		return &v, nil
	}

	var err error
	if f.MinPrice, err = parseFloat("min_price"); err != nil {
		return OfferFilter{}, err
	}
	if f.MaxPrice, err = parseFloat("max_price"); err != nil {
		return OfferFilter{}, err
	}
	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		f.Type = &raw
	}
	if raw := strings.TrimSpace(q.Get("currency")); raw != "" {
		raw = strings.ToUpper(raw)
		f.Currency = &raw
	}
	if raw := strings.TrimSpace(q.Get("min_coverage")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return OfferFilter{}, fmt.Errorf("%w: min_coverage must be an integer", ErrInvalidFilter)
		}
		f.MinCoverage = &v
	}

	if err := f.Validate(); err != nil {
		return OfferFilter{}, err
	}
	return f, nil
}
