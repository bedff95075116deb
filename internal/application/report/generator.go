package report

import (
	"context"
	"fmt"

	"github.com/demandcast/backend/internal/domain/report"
	"github.com/demandcast/backend/internal/domain/shared"
)

// Renderer serializes a Table into spreadsheet bytes.
type Renderer interface {
	Render(table *Table) ([]byte, error)
}

// Artifact is a rendered report file.
type Artifact struct {
	Name    string
	Content []byte
}

// Generator produces the artifact for one report kind.
type Generator interface {
	Kind() report.Kind
	Generate(ctx context.Context, req *report.Request) (*Artifact, error)
}

// ForecastGenerator renders the forecast comparison report.
type ForecastGenerator struct {
	resolver *Resolver
	renderer Renderer
}

// NewForecastGenerator creates a ForecastGenerator.
func NewForecastGenerator(resolver *Resolver, renderer Renderer) *ForecastGenerator {
	return &ForecastGenerator{resolver: resolver, renderer: renderer}
}

// Kind implements Generator.
func (g *ForecastGenerator) Kind() report.Kind {
	return report.KindForecast
}

// Generate resolves, reshapes and renders the forecast report.
func (g *ForecastGenerator) Generate(ctx context.Context, req *report.Request) (*Artifact, error) {
	data, err := g.resolver.ResolveForecasts(ctx, req)
	if err != nil {
		return nil, err
	}
	table := Reshape(data.Forecasts, data.SKUs, data.Stores, req)
	content, err := g.renderer.Render(table)
	if err != nil {
		return nil, err
	}
	return &Artifact{Name: artifactName(report.KindForecast, req), Content: content}, nil
}

// StatisticsGenerator renders the forecast-accuracy statistics report.
type StatisticsGenerator struct {
	resolver *Resolver
	renderer Renderer
}

// NewStatisticsGenerator creates a StatisticsGenerator.
func NewStatisticsGenerator(resolver *Resolver, renderer Renderer) *StatisticsGenerator {
	return &StatisticsGenerator{resolver: resolver, renderer: renderer}
}

// Kind implements Generator.
func (g *StatisticsGenerator) Kind() report.Kind {
	return report.KindStatistics
}

// Generate resolves forecasts and sales, computes per-pair statistics and
// renders them.
func (g *StatisticsGenerator) Generate(ctx context.Context, req *report.Request) (*Artifact, error) {
	data, err := g.resolver.ResolveForecasts(ctx, req)
	if err != nil {
		return nil, err
	}
	sales, err := g.resolver.ResolveSales(ctx, req, data.SKUs)
	if err != nil {
		return nil, err
	}
	rows := ComputeStatistics(data.Forecasts, sales)
	content, err := g.renderer.Render(StatisticsTable(rows))
	if err != nil {
		return nil, err
	}
	return &Artifact{Name: artifactName(report.KindStatistics, req), Content: content}, nil
}

// artifactName embeds the report kind and either the explicit date range or
// today's date.
func artifactName(kind report.Kind, req *report.Request) string {
	if req.HasWindow() {
		return fmt.Sprintf("%s_report_%s_%s.xlsx", kind, req.FromDate, req.ToDate)
	}
	return fmt.Sprintf("%s_report_%s.xlsx", kind, shared.Today())
}
