package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

const (
	// LangParam - query-параметр выбора языка
	LangParam = "lang"
	// LangCookieName хранит выбранный язык
	LangCookieName = "lang"
)

var supportedTags = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supportedTags)

// messages - каталог строк интерфейса
var messages = mustBuildCatalog()

type translation struct {
	key, ru, en string
}

var translations = []translation{
	{"search.page_title", "Поиск страховки", "Insurance search"},
	{"search.title.line1", "Покоряй мир —", "Conquer the world —"},
	{"search.title.line2", "мы позаботимся о безопасности", "we will take care of your safety"},
	{"search.country", "Куда летим", "Destination"},
	{"search.sport", "Вид спорта", "Sport"},
	{"search.start", "Туда", "Departure"},
	{"search.end", "Обратно", "Return"},
	{"search.submit", "Найти страховку", "Find insurance"},
	{"search.error.date", "Неверный формат даты", "Invalid date"},
	{"search.error.range", "Дата возвращения не может быть раньше даты отъезда", "Return date cannot be before the departure date"},

	{"results.title", "Предложения", "Offers"},
	{"results.in_trip", "Уже нахожусь в поездке", "Already travelling"},
	{"results.year_policy", "Годовой полис", "Annual policy"},
	{"results.currency", "Валюта", "Currency"},
	{"results.coverage", "Сумма покрытия", "Coverage amount"},
	{"results.any", "Любая", "Any"},
	{"results.choose", "Выбрать", "Choose"},
	{"results.coverage_line", "Покрытие: %s", "Coverage: %s"},
	{"results.duration", "Длительность: %s", "Duration: %s"},
	{"results.included", "Включено:", "Included:"},
	{"results.load_failed", "Не удалось загрузить предложения", "Failed to load offers"},
	{"results.retry", "Попробовать снова", "Try again"},

	{"policy.title", "Страховой полис", "Insurance policy"},
	{"policy.coverage", "Страховое покрытие до %s", "Coverage up to %s"},
	{"policy.included", "Включено в страховку:", "Included in the policy:"},
	{"policy.buy", "Оформить полис", "Buy policy"},
	{"policy.terms", "Скачать условия страхования", "Download policy terms"},
	{"policy.load_failed", "Не удалось загрузить полис", "Failed to load the policy"},
	{"policy.bad_id", "Не выбрано предложение", "No offer selected"},

	{"admin.title", "Добавить страховое предложение", "Add insurance offer"},
	{"admin.name", "Название", "Name"},
	{"admin.type", "Тип", "Type"},
	{"admin.coverage", "Сумма покрытия", "Coverage amount"},
	{"admin.submit", "Добавить", "Add"},
	{"admin.success", "Страховое предложение добавлено!", "Insurance offer added!"},
	{"admin.failure", "Ошибка при отправке данных.", "Failed to submit data."},
	{"admin.invalid", "Укажите название, тип и неотрицательную сумму покрытия", "Provide a name, a type and a non-negative coverage amount"},

	{"common.back", "Назад", "Back"},

	{"sport.climbing", "Скалолазание", "Rock climbing"},
	{"sport.skydiving", "Парашютный спорт", "Skydiving"},
	{"sport.snowboarding", "Сноубординг", "Snowboarding"},
	{"sport.surfing", "Серфинг", "Surfing"},
	{"sport.rafting", "Рафтинг", "Rafting"},
	{"sport.diving", "Дайвинг", "Diving"},
	{"sport.alpine_skiing", "Горные лыжи", "Alpine skiing"},
	{"sport.kitesurfing", "Кайтсерфинг", "Kitesurfing"},
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	for _, t := range translations {
		mustSet(b.SetString(language.Russian, t.key, t.ru))
		mustSet(b.SetString(language.English, t.key, t.en))
	}

	mustSet(b.Set(language.Russian, "results.found", plural.Selectf(1, "%d",
		plural.One, "Найдено %d предложение",
		plural.Few, "Найдено %d предложения",
		plural.Many, "Найдено %d предложений",
		plural.Other, "Найдено %d предложений",
	)))
	mustSet(b.Set(language.English, "results.found", plural.Selectf(1, "%d",
		plural.One, "Found %d offer",
		plural.Other, "Found %d offers",
	)))
	return b
}

func mustSet(err error) {
	if err != nil {
		panic(err)
	}
}

// Localizer переводит строки и форматирует числа и даты для одного языка
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func NewLocalizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// T возвращает перевод ключа, args подставляются в формат
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lang - код языка для атрибута lang и ссылок
func (l *Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

// Amount форматирует сумму с разделителями разрядов текущего языка
func (l *Localizer) Amount(v any) string {
	return l.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// Money - сумма и код валюты, например «1 290 EUR»
func (l *Localizer) Money(v any, currency string) string {
	return l.Amount(v) + " " + currency
}

// Date форматирует дату как d MMMM yyyy
func (l *Localizer) Date(t time.Time) string {
	return FormatDate(t, l.tag)
}

// DateRange форматирует пару дат поездки
func (l *Localizer) DateRange(start, end time.Time) string {
	return FormatDateRange(start, end, l.tag)
}

// Country возвращает название страны по коду региона на языке интерфейса
func (l *Localizer) Country(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.Regions(l.tag).Name(region); name != "" {
		return name
	}
	return code
}

// Sport возвращает название вида спорта по ключу
func (l *Localizer) Sport(key string) string {
	if key == "" {
		return ""
	}
	if !isKnownSport(key) {
		return key
	}
	return l.T("sport." + key)
}

// ResolveTag определяет язык запроса: ?lang, затем cookie, затем Accept-Language.
// Второе значение сообщает, что выбор из query нужно сохранить в cookie.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, ok := matchSupported(v); ok {
			return tag, true
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := matchSupported(c.Value); ok {
			return tag, false
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supportedTags[idx], false
			}
		}
	}
	return fallback, false
}

func matchSupported(value string) (language.Tag, bool) {
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supportedTags[idx], true
}

// ParseDefaultTag разбирает язык по умолчанию из конфигурации
func ParseDefaultTag(value string) language.Tag {
	if tag, ok := matchSupported(value); ok {
		return tag
	}
	return language.Russian
}

func setLangCookie(w http.ResponseWriter, tag language.Tag) {
	base, _ := tag.Base()
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    base.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

type langLink struct {
	Code   string
	URL    string
	Active bool
}

// langLinks строит ссылки переключения языка для текущей страницы
func langLinks(r *http.Request, active language.Tag) []langLink {
	links := make([]langLink, 0, len(supportedTags))
	for _, tag := range supportedTags {
		q, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			q = url.Values{}
		}
		base, _ := tag.Base()
		q.Set(LangParam, base.String())
		links = append(links, langLink{
			Code:   strings.ToUpper(base.String()),
			URL:    (&url.URL{Path: r.URL.Path, RawQuery: q.Encode()}).String(),
			Active: tag == active,
		})
	}
	return links
}
