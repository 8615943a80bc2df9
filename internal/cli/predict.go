package cli

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prompt defaults match what the backend is usually queried with.
const (
	defaultPredictSymbol   = "LTCUSDT"
	defaultPredictInterval = "1d"
	defaultPredictLimit    = 200
	maxPredictLimit        = 10000
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

var predictIntervals = map[string]bool{
	"1h": true, "1d": true, "1w": true, "1M": true,
}

// predictView queries the close-price distribution estimate for a trading
// pair. Input is validated before anything is sent, mirroring the backend's
// own rules; results print as a mean/std readout plus the histogram table.
func (a *App) predictView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	symbol, err := getSimpleText(a.reader, fmt.Sprintf("Trading pair [%s]", defaultPredictSymbol), a.out)
	if err != nil {
		return
	}
	if symbol == "" {
		symbol = defaultPredictSymbol
	}
	symbol = strings.ToUpper(symbol)
	if !symbolPattern.MatchString(symbol) {
		a.printErr("Invalid trading pair format (expected something like LTCUSDT).")
		return
	}

	interval, err := getSimpleText(a.reader, fmt.Sprintf("Interval (1h/1d/1w/1M) [%s]", defaultPredictInterval), a.out)
	if err != nil {
		return
	}
	if interval == "" {
		interval = defaultPredictInterval
	}
	if !predictIntervals[interval] {
		a.printErr("Invalid interval, expected one of: 1h, 1d, 1w, 1M.")
		return
	}

	limitInput, err := getSimpleText(a.reader, fmt.Sprintf("Candle limit (1-%d) [%d]", maxPredictLimit, defaultPredictLimit), a.out)
	if err != nil {
		return
	}
	limit := defaultPredictLimit
	if limitInput != "" {
		limit, err = strconv.Atoi(limitInput)
		if err != nil || limit < 1 || limit > maxPredictLimit {
			a.printErr(fmt.Sprintf("Limit must be an integer between 1 and %d.", maxPredictLimit))
			return
		}
	}

	prediction, err := a.client.PredictPrice(ctx, symbol, interval, limit)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}

	a.printTitle("Prediction for " + prediction.Symbol)
	a.printTable([]string{"", ""}, [][]string{
		{"mean close price", prediction.Mean.String()},
		{"price std deviation", prediction.Std.String()},
	})

	if len(prediction.Histogram.Labels) > 0 {
		a.printTitle("Close-price distribution")
		rows := make([][]string, 0, len(prediction.Histogram.Labels))
		for i, label := range prediction.Histogram.Labels {
			freq := ""
			if i < len(prediction.Histogram.Values) {
				freq = prediction.Histogram.Values[i].String()
			}
			rows = append(rows, []string{label, freq})
		}
		a.printTable([]string{"RANGE (USDT)", "FREQUENCY"}, rows)
	}
	a.printMuted("Predictions are based on historical data and do not guarantee future results.")
}
