package mathutil

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	//BigOne represents a single unit of an asset with precision 8
	BigOne = uint64(math.Pow10(8))
	//BigOneDecimal represents a single unit of an asset with precision 8 as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))
)

func init() {
	decimal.DivisionPrecision = 8
}

//Add takes two uint64 numbers and sums them x + y and returns the result as decimal.Decimal
func Add(x, y uint64) (z decimal.Decimal) {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	z = X.Add(Y)
	return
}

//Sub takes two uint64 numbers and subtracts them x - y and returns the result as decimal.Decimal
func Sub(x, y uint64) (z decimal.Decimal) {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	z = X.Sub(Y)
	return
}

// SatoshisToFiat converts an amount in satoshis to its fiat value at the
// given price per whole coin, rounded to 2 decimal places.
func SatoshisToFiat(satoshis uint64, price decimal.Decimal) decimal.Decimal {
	sats := decimal.NewFromBigInt(new(big.Int).SetUint64(satoshis), 0)
	return sats.Div(BigOneDecimal).Mul(price).Round(2)
}

// FiatToSatoshis converts a fiat amount to satoshis at the given price per
// whole coin, rounded to the nearest satoshi.
func FiatToSatoshis(fiat, price decimal.Decimal) int64 {
	return fiat.Div(price).Mul(BigOneDecimal).Round(0).IntPart()
}
