// Package parser извлекает числа из свободного текста пользователя.
package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberRe находит первую числовую последовательность с запятыми-разделителями
// тысяч и необязательной дробной частью: "12,500.50", "₹60000", "3 months".
var numberRe = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// ParseNumber возвращает первое число в тексте. Второй результат false,
// если в тексте нет ни одной цифры. Знак минус игнорируется.
func ParseNumber(text string) (decimal.Decimal, bool) {
	value, _, ok := firstNumber(text)
	return value, ok
}

// ParseSigned работает как ParseNumber, но учитывает минус прямо перед числом:
// "-3 months" дает -3.
func ParseSigned(text string) (decimal.Decimal, bool) {
	value, start, ok := firstNumber(text)
	if !ok {
		return value, false
	}
	if start > 0 && text[start-1] == '-' {
		return value.Neg(), true
	}
	return value, true
}

func firstNumber(text string) (decimal.Decimal, int, bool) {
	for _, loc := range numberRe.FindAllStringIndex(text, -1) {
		digits := strings.ReplaceAll(text[loc[0]:loc[1]], ",", "")
		// Последовательность из одних запятых числом не считается
		if digits == "" {
			continue
		}
		value, err := decimal.NewFromString(digits)
		if err != nil {
			continue
		}
		return value, loc[0], true
	}
	return decimal.Zero, 0, false
}
