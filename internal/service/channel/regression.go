package channel

import (
	"fmt"
	"math"
	"time"

	"Lohas/internal/domain/models"
)

// Compute fits an ordinary least-squares trend line to the closing prices
// (price against index 0..n-1) and derives the four parallel bands at
// sd1 and sd2 multiples of the residual standard deviation.
//
// Sigma is the population standard deviation of the residuals (denominator
// n). That matches the product's published channel values and is kept on
// purpose. Requires at least 2 bars.
func Compute(symbol string, bars []models.Bar, sd1, sd2 float64) (*models.Channel, error) {
	n := len(bars)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d bars, need at least 2", models.ErrInsufficientData, n)
	}

	closes := models.Closes(bars)
	slope, intercept := olsFit(closes)

	dates := make([]time.Time, n)
	trend := make([]float64, n)
	residuals := make([]float64, n)
	for i := range closes {
		dates[i] = bars[i].Date
		trend[i] = slope*float64(i) + intercept
		residuals[i] = closes[i] - trend[i]
	}
	sigma := populationStdDev(residuals)

	upper1 := make([]float64, n)
	upper2 := make([]float64, n)
	lower1 := make([]float64, n)
	lower2 := make([]float64, n)
	for i, tl := range trend {
		upper1[i] = tl + sd1*sigma
		upper2[i] = tl + sd2*sigma
		lower1[i] = tl - sd1*sigma
		lower2[i] = tl - sd2*sigma
	}

	return &models.Channel{
		Symbol:    symbol,
		Dates:     dates,
		Close:     closes,
		Trend:     trend,
		Upper1:    upper1,
		Upper2:    upper2,
		Lower1:    lower1,
		Lower2:    lower2,
		Slope:     slope,
		Intercept: intercept,
		Sigma:     sigma,
		RSquared:  rSquared(closes, trend),
		SD1:       sd1,
		SD2:       sd2,
	}, nil
}

func olsFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	xMean := (n - 1) / 2
	var ySum float64
	for _, v := range y {
		ySum += v
	}
	yMean := ySum / n

	var num, den float64
	for i, yi := range y {
		xi := float64(i)
		num += (xi - xMean) * (yi - yMean)
		den += (xi - xMean) * (xi - xMean)
	}
	if den == 0 {
		return 0, yMean
	}
	return num / den, yMean - (num/den)*xMean
}

// rSquared is the coefficient of determination 1 - SSres/SStot. For an OLS
// fit this equals the squared Pearson correlation of index and price. A
// series with zero price variance is fit exactly, so it reports 1.
func rSquared(y, trend []float64) float64 {
	var ySum float64
	for _, v := range y {
		ySum += v
	}
	yMean := ySum / float64(len(y))

	var ssRes, ssTot float64
	for i, v := range y {
		r := v - trend[i]
		ssRes += r * r
		d := v - yMean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 1
	}
	r2 := 1 - ssRes/ssTot
	if r2 < 0 {
		return 0
	}
	if r2 > 1 {
		return 1
	}
	return r2
}

func populationStdDev(residuals []float64) float64 {
	var sum float64
	for _, r := range residuals {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(residuals)))
}
