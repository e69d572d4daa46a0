package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"aud": "AU$",
	"cad": "CA$",
	"chf": "CHF",
	"sek": "kr",
	"nzd": "NZ$",
	"hkd": "HK$",
	"sgd": "S$",
	"jpy": "¥",
	"cny": "¥",
	"inr": "₹",
	"brl": "R$",
	"krw": "₩",
	"zar": "R",
}

// currencyPrecision lists currencies whose minor unit is not cents.
var currencyPrecision = map[string]int32{
	"jpy": 0,
	"krw": 0,
	"bhd": 3,
	"kwd": 3,
	"omr": 3,
}

// DEFAULT_FLOATING_PRECISION is used for every currency not in currencyPrecision
const DEFAULT_FLOATING_PRECISION = 2

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// GetCurrencyPrecision returns the number of minor-unit digits for code.
func GetCurrencyPrecision(code string) int32 {
	if p, ok := currencyPrecision[strings.ToLower(code)]; ok {
		return p
	}
	return DEFAULT_FLOATING_PRECISION
}

// RoundToCurrencyPrecision rounds half away from zero to the currency's minor unit.
// Only presentation code should call this; the engine works unrounded.
func RoundToCurrencyPrecision(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(GetCurrencyPrecision(code))
}

// NormalizeCurrency upper-cases an ISO code for comparisons.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
