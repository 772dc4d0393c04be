package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/easyeat-pos/easyeat/internal/analytics"
)

const forecastWindowDays = 14

// SnapshotSource captures the business state the prompts are grounded in.
type SnapshotSource interface {
	Snapshot(ctx context.Context, maxSales int) (analytics.Snapshot, error)
}

// Service turns snapshots into prompts and model output into structured
// answers. The model is asked for JSON and held to the schema; anything it
// returns that does not parse cleanly counts as unavailable.
type Service struct {
	source   SnapshotSource
	client   GenerativeClient
	store    *ForecastStore
	maxSales int
	now      func() time.Time
}

// NewService builds Service. store may be nil; maxSales caps how much of the
// sales log is embedded in a prompt.
func NewService(source SnapshotSource, client GenerativeClient, store *ForecastStore, maxSales int) *Service {
	return &Service{
		source:   source,
		client:   client,
		store:    store,
		maxSales: maxSales,
		now:      time.Now,
	}
}

// Ask answers an ad-hoc question about the business with a chartable result.
func (s *Service) Ask(ctx context.Context, question string) (Insight, error) {
	snap, err := s.source.Snapshot(ctx, s.maxSales)
	if err != nil {
		return Insight{}, err
	}
	raw, err := s.client.Generate(ctx, s.buildQuestionPrompt(snap, question))
	if err != nil {
		return Insight{}, err
	}

	var payload struct {
		Summary   string      `json:"summary"`
		Data      []DataPoint `json:"data"`
		ChartType ChartType   `json:"chartType"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Insight{}, fmt.Errorf("%w: malformed insight payload: %v", ErrUnavailable, err)
	}
	if payload.Summary == "" || !payload.ChartType.Valid() {
		return Insight{}, fmt.Errorf("%w: insight payload failed validation", ErrUnavailable)
	}
	return Insight{
		Question:    question,
		Summary:     payload.Summary,
		Data:        payload.Data,
		ChartType:   payload.ChartType,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// RefreshForecast generates a fresh inventory outlook and stores it.
func (s *Service) RefreshForecast(ctx context.Context) (Forecast, error) {
	snap, err := s.source.Snapshot(ctx, s.maxSales)
	if err != nil {
		return Forecast{}, err
	}
	raw, err := s.client.Generate(ctx, s.buildForecastPrompt(snap))
	if err != nil {
		return Forecast{}, err
	}

	var items []ProductForecast
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return Forecast{}, fmt.Errorf("%w: malformed forecast payload: %v", ErrUnavailable, err)
	}
	f := Forecast{Items: items, GeneratedAt: s.now().UTC()}
	if err := s.store.Save(ctx, f); err != nil {
		return Forecast{}, err
	}
	return f, nil
}

// LatestForecast returns the stored outlook, if any.
func (s *Service) LatestForecast(ctx context.Context) (Forecast, bool, error) {
	return s.store.Latest(ctx)
}

// promptContext is the data block embedded in every prompt. Image URLs and
// raw costs per line are left out to keep the context lean.
type promptContext struct {
	Date       string                         `json:"date"`
	Summary    analytics.Summary              `json:"summary"`
	Products   []promptProduct                `json:"products"`
	DailySales []analytics.DailyTotal         `json:"dailySales"`
	Top        []analytics.ProductPerformance `json:"topProducts"`
	Expenses   []promptExpense                `json:"expenses"`
}

type promptProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type promptExpense struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (s *Service) buildContext(snap analytics.Snapshot, daily []analytics.DailyTotal) promptContext {
	pc := promptContext{
		Date:       s.now().UTC().Format("2006-01-02"),
		Summary:    snap.Summary,
		DailySales: daily,
		Top:        snap.Top,
	}
	for _, p := range snap.Products {
		pc.Products = append(pc.Products, promptProduct{
			ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price, Stock: p.Stock,
		})
	}
	for _, e := range snap.Expenses {
		pc.Expenses = append(pc.Expenses, promptExpense{
			Description: e.Description,
			Amount:      e.Amount,
			Category:    string(e.Category),
			Date:        e.SpentAt.UTC().Format("2006-01-02"),
		})
	}
	return pc
}

const analystPersona = "You are a data analyst for a small restaurant. " +
	"The JSON business data below is the single source of truth; never invent figures.\n\n"

func (s *Service) buildQuestionPrompt(snap analytics.Snapshot, question string) string {
	data, _ := json.Marshal(s.buildContext(snap, snap.DailySales))
	var b strings.Builder
	b.WriteString(analystPersona)
	b.Write(data)
	b.WriteString("\n\nAnswer the owner's question using only this data.\n")
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString(`Respond with a single JSON object: {"summary": string, ` +
		`"data": [{"label": string, "value": number}], "chartType": "bar"|"line"|"pie"}.`)
	return b.String()
}

func (s *Service) buildForecastPrompt(snap analytics.Snapshot) string {
	daily := snap.DailySales
	if len(daily) > forecastWindowDays {
		daily = daily[len(daily)-forecastWindowDays:]
	}
	data, _ := json.Marshal(s.buildContext(snap, daily))
	var b strings.Builder
	b.WriteString(analystPersona)
	b.Write(data)
	fmt.Fprintf(&b, "\n\nDaily sales cover the last %d trading days. ", len(daily))
	b.WriteString("For every product, predict weekly sales and suggest a reorder quantity.\n\n")
	b.WriteString(`Respond with a single JSON array of objects: [{"productId": number, ` +
		`"productName": string, "currentStock": number, "predictedWeeklySales": number, ` +
		`"suggestedReorderQuantity": number, "reasoning": string}].`)
	return b.String()
}
