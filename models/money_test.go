package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseUSDC(t *testing.T) {
	t.Run("Whole Amount", func(t *testing.T) {
		amount, err := ParseUSDC("100")
		assert.NoError(t, err)
		assert.Equal(t, "100.000000", FormatUSDC(amount))
	})

	t.Run("Six Decimals", func(t *testing.T) {
		amount, err := ParseUSDC("0.000001")
		assert.NoError(t, err)
		assert.Equal(t, "0.000001", FormatUSDC(amount))
	})

	t.Run("Too Many Decimals", func(t *testing.T) {
		_, err := ParseUSDC("1.0000001")
		assert.Error(t, err)
		assert.True(t, IsKind(err, ErrorKindValidation))
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ParseUSDC("-1")
		assert.Error(t, err)
	})

	t.Run("Not A Number", func(t *testing.T) {
		_, err := ParseUSDC("abc")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseUSDC("")
		assert.Error(t, err)
	})
}

func TestRoundINR(t *testing.T) {
	assert.Equal(t, "8342.00", FormatINR(RoundINR(decimal.RequireFromString("8342"))))
	assert.Equal(t, "8342.01", FormatINR(RoundINR(decimal.RequireFromString("8342.005"))))
	assert.Equal(t, "8342.00", FormatINR(RoundINR(decimal.RequireFromString("8342.004"))))
}

func TestSupportedCorridors(t *testing.T) {
	assert.True(t, SupportedCorridors[CorridorUSDCINR])
	assert.False(t, SupportedCorridors["USDC-PHP"])
}
