// Package trend turns a user's readings into a renderer-agnostic chart
// description: two time series, average lines, and clinical reference lines.
package trend

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulr25/bp-tracker/internal/models"
)

// ErrNoData is returned when the user has no readings to chart.
var ErrNoData = errors.New("no data available")

// Clinical thresholds for the dotted reference lines (mmHg).
const (
	NormalSystolic  = 120
	NormalDiastolic = 80
)

// ReadingSource is the slice of the reading repository the builder needs.
type ReadingSource interface {
	ListForUserChronological(ctx context.Context, userID int) ([]models.Reading, error)
}

// Point is one (timestamp, value) pair with its hover label.
type Point struct {
	Timestamp string `json:"timestamp"`
	Value     int    `json:"value"`
	Label     string `json:"label"`
}

// Series is one line on the chart.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// RefLine is a horizontal reference line with its annotation.
type RefLine struct {
	Y          float64 `json:"y"`
	Dash       string  `json:"dash"`
	Color      string  `json:"color"`
	Annotation string  `json:"annotation"`
}

// Axis carries x-axis tick metadata for the renderer.
type Axis struct {
	Title      string `json:"title"`
	TickFormat string `json:"tick_format,omitempty"`
	TickAngle  int    `json:"tick_angle,omitempty"`
}

// Layout holds chart-level presentation metadata.
type Layout struct {
	Title     string `json:"title"`
	XAxis     Axis   `json:"xaxis"`
	YAxis     Axis   `json:"yaxis"`
	HoverMode string `json:"hovermode"`
}

// ChartSpec is the full declarative chart description. It is serialized as-is
// and handed to the client-side renderer.
type ChartSpec struct {
	Series   []Series  `json:"series"`
	RefLines []RefLine `json:"ref_lines"`
	Layout   Layout    `json:"layout"`
}

// Builder assembles chart specs from a reading source.
type Builder struct {
	Readings ReadingSource
}

func NewBuilder(src ReadingSource) *Builder {
	return &Builder{Readings: src}
}

// BuildTrend fetches the user's readings in chronological order and produces
// the chart spec. Returns ErrNoData when the user has no readings.
func (b *Builder) BuildTrend(ctx context.Context, userID int) (*ChartSpec, error) {
	readings, err := b.Readings.ListForUserChronological(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, ErrNoData
	}

	systolic := make([]Point, 0, len(readings))
	diastolic := make([]Point, 0, len(readings))
	var sumSys, sumDia int
	for _, r := range readings {
		ts := r.TakenAt.Format(models.TimestampLayout)
		systolic = append(systolic, Point{
			Timestamp: ts,
			Value:     r.Systolic,
			Label:     hoverLabel(r, "Systolic", r.Systolic),
		})
		diastolic = append(diastolic, Point{
			Timestamp: ts,
			Value:     r.Diastolic,
			Label:     hoverLabel(r, "Diastolic", r.Diastolic),
		})
		sumSys += r.Systolic
		sumDia += r.Diastolic
	}

	avgSys := float64(sumSys) / float64(len(readings))
	avgDia := float64(sumDia) / float64(len(readings))

	spec := &ChartSpec{
		Series: []Series{
			{Name: "Systolic", Color: "red", Points: systolic},
			{Name: "Diastolic", Color: "blue", Points: diastolic},
		},
		RefLines: []RefLine{
			{Y: avgSys, Dash: "dash", Color: "rgba(255,0,0,0.5)", Annotation: fmt.Sprintf("Avg Systolic: %.1f", avgSys)},
			{Y: avgDia, Dash: "dash", Color: "rgba(0,0,255,0.5)", Annotation: fmt.Sprintf("Avg Diastolic: %.1f", avgDia)},
			{Y: NormalSystolic, Dash: "dot", Color: "green", Annotation: "Normal Systolic"},
			{Y: NormalDiastolic, Dash: "dot", Color: "green", Annotation: "Normal Diastolic"},
		},
		Layout: Layout{
			Title: "Blood Pressure Trends",
			XAxis: Axis{
				Title:      "Date",
				TickFormat: "%a, %d/%m/%Y",
				TickAngle:  45,
			},
			YAxis:     Axis{Title: "Blood Pressure (mmHg)"},
			HoverMode: "x unified",
		},
	}
	return spec, nil
}

// hoverLabel renders "<Weekday>, <DD/MM/YYYY HH:MM>\n<Label>: <value>".
func hoverLabel(r models.Reading, name string, value int) string {
	return fmt.Sprintf("%s\n%s: %d", r.DisplayTimestamp(), name, value)
}
