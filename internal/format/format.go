// Package format renders dataset values for display. It never changes the
// values themselves; exports use the raw numbers.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"cryptomarkets-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for missing values and unparseable dates.
const Placeholder = "-"

const (
	coarsePlaces = 2
	finestPlaces = 15
	// Values at or below this get finestPlaces.
	finestBelow = 1e-10
)

// Places returns the number of decimals used for a price.
//
//	v > 0.1             2
//	(0.01, 0.1]         4
//	(1e-4, 1e-2]        6
//	(1e-6, 1e-4]        8
//	(1e-8, 1e-6]        10
//	(1e-10, 1e-8]       12
//	<= 1e-10            15
func Places(v float64) int {
	if !(v > finestBelow) {
		return finestPlaces
	}
	if v > 0.1 {
		return coarsePlaces
	}
	// d is the decade of v: 10^-(d+1) < v <= 10^-d. Log10 can be off by one
	// at exact powers of ten, so correct against math.Pow10.
	d := int(math.Floor(-math.Log10(v)))
	for d > 0 && v > math.Pow10(-d) {
		d--
	}
	for v <= math.Pow10(-(d + 1)) {
		d++
	}
	return 2*(d/2) + 4
}

// Price formats v with magnitude dependent precision and thousands separators.
func Price(v float64) string { return fixed(v, Places(v)) }

// Amount formats v with two decimals and thousands separators.
func Amount(v float64) string { return fixed(v, 2) }

// Percent formats v with two decimals followed by a percent sign.
func Percent(v float64) string { return fixed(v, 2) + "%" }

// Date formats d as YYYY-MM-DD.
func Date(d domain.Date) string {
	if !d.Valid {
		return Placeholder
	}
	return d.Time.Format("2006-01-02")
}

// Cell renders one column of r.
func Cell(col domain.Column, r domain.MarketRecord) string {
	switch col.Kind {
	case domain.KindText:
		return r.Symbol
	case domain.KindRank:
		if r.MarketCapRank == nil {
			return Placeholder
		}
		return strconv.Itoa(*r.MarketCapRank)
	case domain.KindDate:
		return Date(r.DateOf(col.Name))
	}
	v := r.Number(col.Name)
	if v == nil {
		return Placeholder
	}
	switch col.Kind {
	case domain.KindPrice:
		return Price(*v)
	case domain.KindPercent:
		return Percent(*v)
	default:
		return Amount(*v)
	}
}

// Row renders cols of r.
func Row(cols []domain.Column, r domain.MarketRecord) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = Cell(c, r)
	}
	return out
}

func fixed(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	s := exact(v).StringFixedBank(int32(places))
	// Decimal has no negative zero; keep the sign of values that round to it.
	if math.Signbit(v) && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return group(s)
}

// exact converts v to the decimal equal to its binary value, so ties are
// ties of the stored float and not of its shortest representation.
func exact(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	m := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	// m * 2^exp == m * 5^-exp * 10^exp
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(m.Mul(m, pow), int32(exp))
}

// group inserts thousands separators into the integer part of a plain
// decimal string such as "-1234567.50".
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	b.WriteString(sign)
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
