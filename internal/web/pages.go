package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/linemk/travel-insurance/internal/lib/logger/sl"
	"golang.org/x/text/language"
)

type searchPage struct {
	basePage
	State     TripState
	Countries []selectOption
	Sports    []selectOption
	Error     string
}

func (h *Handler) requestLogger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) renderSearch(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, state TripState, errMsg string) {
	l, base := h.localizer(w, r)
	base.Title = l.T("search.page_title")
	h.render(w, log, status, "search", searchPage{
		basePage:  base,
		State:     state,
		Countries: countryOptions(l, state.Country),
		Sports:    sportOptions(l, state.Sport),
		Error:     errMsg,
	})
}

// SearchPage - форма поиска, поля заполняются из query при возврате с результатов
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	const op = "web.SearchPage"
	log := h.requestLogger(r, op)

	// битые даты в query просто не подставляются
	state, _ := ParseTripState(r.URL.Query())
	h.renderSearch(w, r, log, http.StatusOK, state, "")
}

// Search принимает форму и переводит на результаты с параметрами поездки в query
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "web.Search"
	log := h.requestLogger(r, op)

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		h.renderSearch(w, r, log, http.StatusBadRequest, TripState{}, "")
		return
	}

	state, err := ParseTripState(r.PostForm)
	if err != nil {
		l := NewLocalizer(h.tagFor(r))
		msg := l.T("search.error.date")
		if errors.Is(err, errDateRange) {
			msg = l.T("search.error.range")
		}
		log.Info("invalid search form", sl.Err(err))
		h.renderSearch(w, r, log, http.StatusBadRequest, state, msg)
		return
	}

	http.Redirect(w, r, withQuery("/results", state.Query()), http.StatusSeeOther)
}

func (h *Handler) tagFor(r *http.Request) language.Tag {
	tag, _ := ResolveTag(r, h.defaultLang)
	return tag
}

type chip struct {
	Label  string
	URL    string
	Active bool
}

type offerCard struct {
	models.Offer
	PolicyURL string
}

type resultsPage struct {
	basePage
	State         TripState
	Found         string
	CurrencyChips []chip
	CoverageChips []chip
	Offers        []offerCard
	Error         string
	RetryURL      string
	SearchURL     string
}

// ResultsPage загружает предложения и рисует карточки либо панель ошибки
func (h *Handler) ResultsPage(w http.ResponseWriter, r *http.Request) {
	const op = "web.ResultsPage"
	log := h.requestLogger(r, op)

	q := r.URL.Query()
	state, _ := ParseTripState(q)
	filter := resultsFilter(q)

	l, base := h.localizer(w, r)
	base.Title = l.T("results.title")

	page := resultsPage{
		basePage:      base,
		State:         state,
		CurrencyChips: currencyChips(l, r.URL, filter),
		CoverageChips: coverageChips(l, r.URL, filter),
		RetryURL:      r.URL.RequestURI(),
		SearchURL:     withQuery("/", state.Query()),
	}

	var (
		offers []models.Offer
		err    error
	)
	if filter.IsEmpty() {
		offers, err = h.offers.GetOffers(r.Context())
	} else {
		offers, err = h.offers.FilterOffers(r.Context(), filter)
	}
	if err != nil {
		log.Error("failed to load offers", sl.Err(err))
		page.Error = userMessage(err, l.T("results.load_failed"))
		h.render(w, log, http.StatusBadGateway, "results", page)
		return
	}

	page.Found = l.T("results.found", len(offers))
	page.Offers = make([]offerCard, 0, len(offers))
	for _, o := range offers {
		pq := state.Query()
		pq.Set("id", strconv.FormatInt(o.ID, 10))
		page.Offers = append(page.Offers, offerCard{Offer: o, PolicyURL: withQuery("/policy", pq)})
	}

	h.render(w, log, http.StatusOK, "results", page)
}

// resultsFilter берёт из query только выбранные чипы; чужие значения игнорируются
func resultsFilter(q url.Values) models.OfferFilter {
	var f models.OfferFilter
	if c := strings.ToUpper(strings.TrimSpace(q.Get("currency"))); slices.Contains(currencyOptions, c) {
		f.Currency = &c
	}
	if raw := strings.TrimSpace(q.Get("min_coverage")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			f.MinCoverage = &v
		}
	}
	return f
}

// chipURL - текущий адрес с заменённым (или удалённым при пустом value) параметром
func chipURL(u *url.URL, key, value string) string {
	q := u.Query()
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	return withQuery(u.Path, q)
}

func currencyChips(l *Localizer, u *url.URL, f models.OfferFilter) []chip {
	chips := []chip{{Label: l.T("results.any"), URL: chipURL(u, "currency", ""), Active: f.Currency == nil}}
	for _, c := range currencyOptions {
		chips = append(chips, chip{
			Label:  c,
			URL:    chipURL(u, "currency", c),
			Active: f.Currency != nil && *f.Currency == c,
		})
	}
	return chips
}

func coverageChips(l *Localizer, u *url.URL, f models.OfferFilter) []chip {
	chips := []chip{{Label: l.T("results.any"), URL: chipURL(u, "min_coverage", ""), Active: f.MinCoverage == nil}}
	for _, v := range coverageOptions {
		chips = append(chips, chip{
			Label:  l.Amount(v),
			URL:    chipURL(u, "min_coverage", strconv.FormatInt(v, 10)),
			Active: f.MinCoverage != nil && *f.MinCoverage == v,
		})
	}
	return chips
}

type policyPage struct {
	basePage
	State      TripState
	Offer      *models.Offer
	Dates      string
	Country    string
	Sport      string
	Error      string
	ResultsURL string
}

// PolicyPage - детали выбранного предложения с параметрами поездки
func (h *Handler) PolicyPage(w http.ResponseWriter, r *http.Request) {
	const op = "web.PolicyPage"
	log := h.requestLogger(r, op)

	q := r.URL.Query()
	state, _ := ParseTripState(q)

	l, base := h.localizer(w, r)
	base.Title = l.T("policy.title")

	page := policyPage{
		basePage:   base,
		State:      state,
		Country:    l.Country(state.Country),
		Sport:      l.Sport(state.Sport),
		ResultsURL: withQuery("/results", state.Query()),
	}
	if !state.Start.IsZero() || !state.End.IsZero() {
		page.Dates = l.DateRange(state.Start, state.End)
	}

	id, err := strconv.ParseInt(q.Get("id"), 10, 64)
	if err != nil || id <= 0 {
		log.Info("invalid offer id", slog.String("id", q.Get("id")))
		page.Error = l.T("policy.bad_id")
		h.render(w, log, http.StatusBadRequest, "policy", page)
		return
	}

	offer, err := h.offers.GetOfferByID(r.Context(), id)
	if err != nil {
		log.Error("failed to load offer", slog.Int64("id", id), sl.Err(err))
		page.Error = userMessage(err, l.T("policy.load_failed"))
		h.render(w, log, http.StatusBadGateway, "policy", page)
		return
	}
	page.Offer = offer

	h.render(w, log, http.StatusOK, "policy", page)
}

type adminPage struct {
	basePage
	Name     string
	Type     string
	Coverage string
	Success  string
	Error    string
}

// AdminOfferPage - форма добавления предложения
func (h *Handler) AdminOfferPage(w http.ResponseWriter, r *http.Request) {
	const op = "web.AdminOfferPage"
	log := h.requestLogger(r, op)

	l, base := h.localizer(w, r)
	base.Title = l.T("admin.title")
	h.render(w, log, http.StatusOK, "admin", adminPage{basePage: base})
}

// AdminCreateOffer отправляет форму в POST /offers
func (h *Handler) AdminCreateOffer(w http.ResponseWriter, r *http.Request) {
	const op = "web.AdminCreateOffer"
	log := h.requestLogger(r, op)

	l, base := h.localizer(w, r)
	base.Title = l.T("admin.title")

	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form", sl.Err(err))
		h.render(w, log, http.StatusBadRequest, "admin", adminPage{basePage: base, Error: l.T("admin.invalid")})
		return
	}

	page := adminPage{
		basePage: base,
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Type:     strings.TrimSpace(r.PostForm.Get("type")),
		Coverage: strings.TrimSpace(r.PostForm.Get("coverage_amount")),
	}

	coverage, err := strconv.ParseInt(page.Coverage, 10, 64)
	if page.Name == "" || page.Type == "" || err != nil || coverage < 0 {
		page.Error = l.T("admin.invalid")
		h.render(w, log, http.StatusBadRequest, "admin", page)
		return
	}

	offer, err := h.offers.CreateOffer(r.Context(), models.OfferInput{
		Name:           page.Name,
		Type:           page.Type,
		CoverageAmount: coverage,
	})
	if err != nil {
		log.Error("failed to create offer", sl.Err(err))
		page.Error = l.T("admin.failure")
		h.render(w, log, http.StatusBadGateway, "admin", page)
		return
	}

	log.Info("offer created", slog.Int64("id", offer.ID))
	// форма очищается после успешной отправки
	h.render(w, log, http.StatusOK, "admin", adminPage{basePage: base, Success: l.T("admin.success")})
}
