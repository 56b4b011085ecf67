package web

import "slices"

// Страны назначения, коды регионов ISO 3166
var countryCodes = []string{"RU", "US", "FR", "IT", "ES", "DE", "GB", "JP", "AU"}

// Экстремальные виды спорта
var sportKeys = []string{
	"climbing", "skydiving", "snowboarding", "surfing",
	"rafting", "diving", "alpine_skiing", "kitesurfing",
}

var currencyOptions = []string{"USD", "EUR"}

var coverageOptions = []int64{10000, 25000, 50000, 100000}

func isKnownSport(key string) bool {
	return slices.Contains(sportKeys, key)
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

func countryOptions(l *Localizer, selected string) []selectOption {
	opts := make([]selectOption, 0, len(countryCodes))
	for _, code := range countryCodes {
		opts = append(opts, selectOption{Value: code, Label: l.Country(code), Selected: code == selected})
	}
	return opts
}

func sportOptions(l *Localizer, selected string) []selectOption {
	opts := make([]selectOption, 0, len(sportKeys))
	for _, key := range sportKeys {
		opts = append(opts, selectOption{Value: key, Label: l.Sport(key), Selected: key == selected})
	}
	return opts
}
