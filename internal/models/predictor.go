package models

import "encoding/json"

// PricePrediction is the close-price distribution estimate for one trading
// pair, computed by the backend from historical candles.
type PricePrediction struct {
	Symbol    string         `json:"symbol"`
	Mean      json.Number    `json:"mean"`
	Std       json.Number    `json:"std"`
	Histogram PriceHistogram `json:"histogram"`
}

// PriceHistogram buckets close prices into labelled ranges with a frequency
// per bucket.
type PriceHistogram struct {
	Labels []string      `json:"labels"`
	Values []json.Number `json:"values"`
}
