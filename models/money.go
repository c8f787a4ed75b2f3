package models

import (
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	CorridorUSDCINR = "USDC-INR"

	// Fixed scales per corridor policy: USDC amounts carry six decimals,
	// settled INR two.
	USDCDecimals int32 = 6
	INRDecimals  int32 = 2
)

var SupportedCorridors = map[string]bool{
	CorridorUSDCINR: true,
}

var usdcAmountRegex = regexp.MustCompile(`^\d+(\.\d{1,6})?$`)

// ParseUSDC parses a client-supplied USDC amount. Anything that is not a
// plain decimal with at most six fractional digits is rejected so that
// amounts never pass through float parsing.
func ParseUSDC(amount string) (decimal.Decimal, error) {
	if !usdcAmountRegex.MatchString(amount) {
		return decimal.Zero, NewError(ErrorKindValidation, "invalid USDC amount %q", amount)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, WrapError(ErrorKindValidation, err, "invalid USDC amount %q", amount)
	}
	return value, nil
}

func FormatUSDC(value decimal.Decimal) string {
	return value.StringFixed(USDCDecimals)
}

func FormatINR(value decimal.Decimal) string {
	return value.StringFixed(INRDecimals)
}

func RoundINR(value decimal.Decimal) decimal.Decimal {
	return value.Round(INRDecimals)
}
