// Package web отдаёт страницы магазина: поиск, результаты, полис и форму администратора.
// Данные берутся из API предложений через клиент, состояние поиска живёт в query-строке.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/travel-insurance/internal/client"
	"github.com/linemk/travel-insurance/internal/domain/models"
	"github.com/linemk/travel-insurance/internal/lib/logger/handlers/urllog"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// pages - страницы, каждая рендерится вместе с layout.html
var pages = []string{"search", "results", "policy", "admin"}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// OfferClient - методы API предложений, нужные страницам
type OfferClient interface {
	GetOffers(ctx context.Context) ([]models.Offer, error)
	FilterOffers(ctx context.Context, f models.OfferFilter) ([]models.Offer, error)
	GetOfferByID(ctx context.Context, id int64) (*models.Offer, error)
	CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error)
}

type Handler struct {
	log         *slog.Logger
	offers      OfferClient
	templates   map[string]*template.Template
	defaultLang language.Tag
}

func NewHandler(log *slog.Logger, offers OfferClient, defaultLang language.Tag) (*Handler, error) {
	tmpls, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:         log,
		offers:      offers,
		templates:   tmpls,
		defaultLang: defaultLang,
	}, nil
}

func loadTemplates() (map[string]*template.Template, error) {
	tmpls := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tmpls[name] = t
	}
	return tmpls, nil
}

// Routes собирает роутер фронтенда
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(h.log))
	router.Use(middleware.Recoverer)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.Get("/", h.SearchPage)
	router.Post("/search", h.Search)
	router.Get("/results", h.ResultsPage)
	router.Get("/policy", h.PolicyPage)
	router.Get("/admin/offers/new", h.AdminOfferPage)
	router.Post("/admin/offers/new", h.AdminCreateOffer)

	return router
}

// basePage - общие для всех страниц данные layout
type basePage struct {
	L     *Localizer
	Title string
	Langs []langLink
}

// localizer выбирает язык запроса и при необходимости запоминает его в cookie
func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*Localizer, basePage) {
	tag, persist := ResolveTag(r, h.defaultLang)
	if persist {
		setLangCookie(w, tag)
	}
	l := NewLocalizer(tag)
	return l, basePage{L: l, Langs: langLinks(r, tag)}
}

// render исполняет шаблон в буфер, чтобы ошибка шаблона не оставила половину страницы
func (h *Handler) render(w http.ResponseWriter, logger *slog.Logger, status int, name string, data any) {
	t, ok := h.templates[name]
	if !ok {
		logger.Error("template not found", slog.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("failed to render template", slog.String("template", name), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}

// userMessage - текст ошибки для пользователя: detail из ответа API либо общий fallback
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
