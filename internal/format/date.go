package format

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishDate renders a date as "12 de enero de 2026".
func SpanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// Period renders a billing period as "Del 1 de enero de 2026 al 31 de enero de 2026".
func Period(start, end time.Time) string {
	return fmt.Sprintf("Del %s al %s", SpanishDate(start), SpanishDate(end))
}
