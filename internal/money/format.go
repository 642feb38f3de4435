package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders cents as a US-locale currency string, e.g. 374000 -> "$3,740.00".
func FormatUSD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + usPrinter.Sprintf("$%.2f", float64(cents)/100)
}

// FormatPercent renders a fractional rate for display, e.g. 0.1 -> "10%".
func FormatPercent(rate float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", rate*100), "0"), ".") + "%"
}
