package render

import (
	"math"
	"strconv"
	"strings"
)

// Money formats an amount in Brazilian reais notation without the currency
// sign: thousands separated by "." and two decimals after ",".
func Money(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))

	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder

	if neg && cents > 0 {
		b.WriteByte('-')
	}

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(r)
	}

	frac := cents % 100

	b.WriteByte(',')
	b.WriteByte(byte('0' + frac/10))
	b.WriteByte(byte('0' + frac%10))

	return b.String()
}
