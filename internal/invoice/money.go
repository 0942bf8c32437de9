package invoice

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var vnd = message.NewPrinter(language.Vietnamese)

// Money formats an amount in đồng with Vietnamese digit grouping, e.g. 1.250.000đ.
func Money(v float64) string {
	return vnd.Sprint(number.Decimal(v, number.MaxFractionDigits(0))) + "đ"
}

// foldASCII strips diacritics so text renders with the PDF core fonts.
func foldASCII(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
