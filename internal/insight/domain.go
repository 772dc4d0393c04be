// Package insight asks a generative language model for business advice and
// inventory forecasts grounded in a snapshot of the live data.
package insight

import (
	"errors"
	"time"
)

// ErrUnavailable is returned whenever the model cannot produce a usable
// answer, whatever the underlying cause. Callers degrade gracefully; nothing
// retries.
var ErrUnavailable = errors.New("insight: assistant unavailable")

// ChartType tells the client how to render an insight's data points.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
)

// Valid reports whether c is a renderable chart type.
func (c ChartType) Valid() bool {
	switch c {
	case ChartBar, ChartLine, ChartPie:
		return true
	}
	return false
}

// DataPoint is one labelled value in an insight chart.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Insight is the structured answer to an ad-hoc business question.
type Insight struct {
	Question    string      `json:"question"`
	Summary     string      `json:"summary"`
	Data        []DataPoint `json:"data"`
	ChartType   ChartType   `json:"chartType"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// ProductForecast is the model's outlook for one product.
type ProductForecast struct {
	ProductID                int64   `json:"productId"`
	ProductName              string  `json:"productName"`
	CurrentStock             int     `json:"currentStock"`
	PredictedWeeklySales     float64 `json:"predictedWeeklySales"`
	SuggestedReorderQuantity int     `json:"suggestedReorderQuantity"`
	Reasoning                string  `json:"reasoning"`
}

// Forecast is the stored inventory outlook.
type Forecast struct {
	Items       []ProductForecast `json:"items"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
