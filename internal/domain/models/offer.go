package models

import "time"

// DefaultCurrency подставляется, если валюта предложения не указана
const DefaultCurrency = "EUR"

// Offer представляет страховое предложение
type Offer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Type           string    `json:"type"`
	CoverageAmount int64     `json:"coverage_amount"`
	Currency       string    `json:"currency"`
	Duration       *string   `json:"duration,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Features       []string  `json:"features,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OfferInput - тело запроса на создание и обновление предложения.
// Цена и валюта необязательны: форма администратора отправляет только name, type и coverage_amount.
type OfferInput struct {
	Name           string   `json:"name" validate:"required,max=255"`
	Price          float64  `json:"price" validate:"gte=0"`
	Type           string   `json:"type" validate:"required,max=64"`
	CoverageAmount int64    `json:"coverage_amount" validate:"gte=0"`
	Currency       string   `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	Duration       *string  `json:"duration,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Features       []string `json:"features,omitempty" validate:"omitempty,dive,required"`
}

// WithDefaults возвращает копию с заполненными значениями по умолчанию
func (in OfferInput) WithDefaults() OfferInput {
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	return in
}
