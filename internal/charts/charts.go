package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/finbot/internal/calculator"
	"github.com/ivanoskov/finbot/internal/service"
)

// maxGoalPoints ограничивает число точек на графике накоплений
const maxGoalPoints = 60

var maxMonths = decimal.NewFromInt(math.MaxInt64)

// ChartGenerator рисует графики по итогам сценариев
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

func moneyAxis() chart.YAxis {
	return chart.YAxis{
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return service.FormatMoney(decimal.NewFromFloat(f), 0)
			}
			return ""
		},
		Style: chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		},
	}
}

// BudgetChart создает круговую диаграмму 50/30/20
func (g *ChartGenerator) BudgetChart(s calculator.BudgetSummary) ([]byte, error) {
	if !s.Income.IsPositive() {
		return nil, nil // Нечего рисовать
	}

	parts := []struct {
		label string
		value decimal.Decimal
		color chart.Style
	}{
		{"Needs (50%)", s.Needs, chart.Style{FillColor: chart.ColorBlue}},
		{"Wants (30%)", s.Wants, chart.Style{FillColor: chart.ColorOrange}},
		{"Savings (20%)", s.SavingsTarget, chart.Style{FillColor: chart.ColorGreen}},
	}

	values := make([]chart.Value, 0, len(parts))
	for _, p := range parts {
		style := p.color
		style.FontSize = 12
		style.FontColor = chart.ColorBlack
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s", p.label, service.FormatMoney(p.value, 0)),
			Value: p.value.InexactFloat64(),
			Style: style,
		})
	}

	pie := chart.PieChart{
		Title:      "Sample budget (50/30/20)",
		Width:      800,
		Height:     800,
		Values:     values,
		Background: background,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render budget chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// EmergencyChart сравнивает фонд на 3 и 6 месяцев с месячными расходами
func (g *ChartGenerator) EmergencyChart(f calculator.Fund) ([]byte, error) {
	if !f.MonthlyExpenses.IsPositive() {
		return nil, nil
	}

	bar := func(label string, v decimal.Decimal, color chart.Style) chart.Value {
		color.FontSize = 12
		color.FontColor = chart.ColorBlack
		return chart.Value{
			Label: fmt.Sprintf("%s: %s", label, service.FormatMoney(v, 0)),
			Value: v.InexactFloat64(),
			Style: color,
		}
	}

	graph := chart.BarChart{
		Title: "Emergency fund",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      900,
		Height:     600,
		BarWidth:   120,
		Background: background,
		YAxis:      moneyAxis(),
		Bars: []chart.Value{
			bar("Monthly", f.MonthlyExpenses, chart.Style{StrokeColor: chart.ColorRed, FillColor: chart.ColorRed.WithAlpha(100)}),
			bar("3 months", f.ThreeMonth, chart.Style{StrokeColor: chart.ColorBlue, FillColor: chart.ColorBlue.WithAlpha(100)}),
			bar("6 months", f.SixMonth, chart.Style{StrokeColor: chart.ColorBlue, FillColor: chart.ColorBlue}),
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render emergency chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// GoalChart показывает, как растут накопления месяц за месяцем
func (g *ChartGenerator) GoalChart(p calculator.GoalPlan) ([]byte, error) {
	// Срок, не влезающий в int64, не нарисовать
	if p.Months.GreaterThan(maxMonths) {
		return nil, nil
	}
	months := p.Months.IntPart()
	if months < 1 || !p.Monthly.IsPositive() {
		return nil, nil
	}

	step := months/maxGoalPoints + 1
	if months <= maxGoalPoints {
		step = 1
	}

	xValues := []float64{0}
	yValues := []float64{0}
	monthly := p.Monthly.InexactFloat64()
	// i*step <= months, поэтому переполнения нет
	for i, n := int64(1), months/step; i <= n; i++ {
		m := i * step
		xValues = append(xValues, float64(m))
		yValues = append(yValues, monthly*float64(m))
	}
	if xValues[len(xValues)-1] != float64(months) {
		xValues = append(xValues, float64(months))
		yValues = append(yValues, monthly*float64(months))
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Goal: %s", service.FormatMoney(p.Target, 0)),
		Width:      800,
		Height:     400,
		Background: background,
		XAxis: chart.XAxis{
			Name: "Month",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: moneyAxis(),
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Saved",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 3,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render goal chart: %w", err)
	}
	return buffer.Bytes(), nil
}
