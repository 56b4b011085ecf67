package web

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// названия месяцев в родительном падеже, как в «14 октября 2026»
var monthsRu = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthsEn = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatDate форматирует дату в виде d MMMM yyyy. Нулевая дата даёт пустую строку.
func FormatDate(t time.Time, tag language.Tag) string {
	if t.IsZero() {
		return ""
	}
	months := monthsEn
	if base, _ := tag.Base(); base.String() == "ru" {
		months = monthsRu
	}
	return strconv.Itoa(t.Day()) + " " + months[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatDateRange соединяет даты отъезда и возвращения через тире
func FormatDateRange(start, end time.Time, tag language.Tag) string {
	return FormatDate(start, tag) + " — " + FormatDate(end, tag)
}
