package domain

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// maxSpelledInteger is the largest integer part spelled out in words, the
// largest integer a float64 holds exactly. Larger amounts keep their digits.
const maxSpelledInteger = 1<<53 - 1

// ToWords spells out amount followed by the caller's currency label, e.g.
// "One thousand USD and fifty cents" or "Um BRL e cinquenta centavos".
// An empty or unknown lang falls back to English.
//
// A zero amount always yields "Zero <currency>", in English even for pt-BR.
func ToWords(amount float64, currency string, lang Language) string {
	rounded := roundMoney(amount)
	intPart := rounded.Floor()
	cents := rounded.Sub(intPart).Mul(hundred).Round(0).IntPart()

	if intPart.IsZero() && cents == 0 {
		return "Zero " + currency
	}

	if lang == LanguagePortuguese {
		result := capitalize(cardinal(intPart, portugueseCardinal)) + " " + currency
		if cents > 0 {
			result += " e " + portugueseCardinal(cents) + " centavos"
		}
		return result
	}

	result := capitalize(cardinal(intPart, englishCardinal)) + " " + currency
	if cents > 0 {
		result += " and " + englishCardinal(cents) + " cents"
	}
	return result
}

// cardinal spells n with spell, or returns its digits when n is out of the
// exactly representable range.
func cardinal(n decimal.Decimal, spell func(int64) string) string {
	if n.Abs().GreaterThan(decimal.NewFromInt(maxSpelledInteger)) {
		return n.String()
	}
	return spell(n.IntPart())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var (
	enLessThanTwenty = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
		"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	enTens = []string{"zero", "ten", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

	enScales = []struct {
		value int64
		word  string
	}{
		{1_000_000_000_000_000, "quadrillion"},
		{1_000_000_000_000, "trillion"},
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// englishCardinal renders n the way common English number-to-words tools do:
// groups above a hundred are comma separated and compound tens are
// hyphenated, e.g. 9150 -> "nine thousand, one hundred fifty".
func englishCardinal(n int64) string {
	if n == 0 {
		return "zero"
	}
	var words []string
	if n < 0 {
		words = append(words, "minus")
		n = -n
	}
	words = appendEnglish(words, n)
	return strings.TrimSuffix(strings.Join(words, " "), ",")
}

func appendEnglish(words []string, n int64) []string {
	for n > 0 {
		var word string
		var remainder int64
		switch {
		case n < 20:
			word = enLessThanTwenty[n]
		case n < 100:
			word = enTens[n/10]
			if r := n % 10; r != 0 {
				word += "-" + enLessThanTwenty[r]
			}
		case n < 1_000:
			word = englishCardinal(n/100) + " hundred"
			remainder = n % 100
		default:
			for _, scale := range enScales {
				if n >= scale.value {
					word = englishCardinal(n/scale.value) + " " + scale.word + ","
					remainder = n % scale.value
					break
				}
			}
		}
		words = append(words, word)
		n = remainder
	}
	return words
}

var (
	ptUnits    = []string{"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	ptTeens    = []string{"dez", "onze", "doze", "treze", "catorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	ptTens     = []string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	ptHundreds = []string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

const ptMaxCardinal = 999_999_999

// portugueseCardinal renders n in Brazilian Portuguese up to 999,999,999.
// Values outside that range are returned as digits.
func portugueseCardinal(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 || n > ptMaxCardinal {
		return strconv.FormatInt(n, 10)
	}

	switch {
	case n >= 1_000_000:
		millions := n / 1_000_000
		s := portugueseCardinal(millions) + " milhões"
		if millions == 1 {
			s = "um milhão"
		}
		if rest := n % 1_000_000; rest != 0 {
			return s + " " + portugueseCardinal(rest)
		}
		return s
	case n >= 1_000:
		thousands := n / 1_000
		s := portugueseCardinal(thousands) + " mil"
		if thousands == 1 {
			s = "mil"
		}
		if rest := n % 1_000; rest != 0 {
			return s + " " + portugueseCardinal(rest)
		}
		return s
	case n >= 100:
		if n == 100 {
			return "cem"
		}
		s := ptHundreds[n/100]
		if rest := n % 100; rest != 0 {
			return s + " e " + portugueseCardinal(rest)
		}
		return s
	case n >= 20:
		s := ptTens[n/10]
		if u := n % 10; u != 0 {
			s += " e " + ptUnits[u]
		}
		return s
	case n >= 10:
		return ptTeens[n-10]
	default:
		return ptUnits[n]
	}
}
