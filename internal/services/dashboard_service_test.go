package services

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/educacao-digital-ce/painel-indicadores/internal/charts"
	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
	"github.com/xuri/excelize/v2"
)

const (
	fixture2019 = `NO_MUNICIPIO_RESIDENCIA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao,IDEB19
A,100,60,80,0.50,0.60,0.80,500,550,4.0
B,200,150,180,0.70,0.75,0.90,600,640,5.0
`
	fixture2023 = `NO_MUNICIPIO_PROVA,Total_Alunos,IDEB23
A,110,4.4
B,190,5.2
`
	fixture2024 = `NO_MUNICIPIO_PROVA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao
A,120,66,108,0.60,0.55,0.90,520,600
B,180,126,171,0.65,0.70,0.95,610,660
C,50,10,40,0.10,0.20,0.80,450,500
`
)

func newTestService(t *testing.T, skip ...string) *DashboardService {
	t.Helper()
	files := map[string]string{
		"indicadores19.csv": fixture2019,
		"indicadores23.csv": fixture2023,
		"indicadores24.csv": fixture2024,
	}
	for _, name := range skip {
		delete(files, name)
	}
	return newServiceWithFiles(t, files)
}

func newServiceWithFiles(t *testing.T, files map[string]string) *DashboardService {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mappings, err := dataset.DefaultMappings()
	if err != nil {
		t.Fatalf("DefaultMappings: %v", err)
	}
	loader := dataset.NewLoader(dir, mappings, dataset.NewCache())
	return NewDashboardService(loader, nil, DashboardOptions{
		BaseYear:   2019,
		TargetYear: 2024,
		IDEBYear:   2023,
		Estado:     "Ceará",
	})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompareScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rate, err := svc.Compare(ctx, models.MetricInclusaoDigital, 0, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	c := rate.Comparison
	if c.BaseYear != 2019 || c.Year != 2024 {
		t.Errorf("anos = %d/%d, want 2019/2024", c.BaseYear, c.Year)
	}
	// C só existe em 2024 e entra na média do ano
	if !approx(c.Mean1.Value, 0.60) || !approx(c.Mean2.Value, 0.45) {
		t.Errorf("médias = %v/%v, want 0.60/0.45", c.Mean1, c.Mean2)
	}
	if rate.Narrative.Trend != narrative.TrendDown {
		t.Errorf("Trend = %q, want down", rate.Narrative.Trend)
	}
	if !strings.Contains(rate.Narrative.Markdown, "15,0 pontos percentuais") {
		t.Errorf("Markdown = %q", rate.Narrative.Markdown)
	}

	score, err := svc.Compare(ctx, models.MetricNotaMediaGeral, 2019, 2024)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if score.Comparison.Points.Defined {
		t.Error("nota não deveria ter delta em pontos percentuais")
	}
}

func TestMunicipalities(t *testing.T) {
	svc := newTestService(t)

	table, err := svc.Municipalities(context.Background(), models.MetricInclusaoDigital, 0, 0)
	if err != nil {
		t.Fatalf("Municipalities: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("len = %d, want 2 (C só existe em 2024)", len(table.Rows))
	}
	if table.Rows[0].Municipio != "A" || !approx(table.Rows[0].Difference.Value, 0.10) {
		t.Errorf("primeira linha = %+v, want A com +0.10", table.Rows[0])
	}
	if table.Rows[1].Students2.Value != 180 {
		t.Errorf("Students2 = %v, want 180", table.Rows[1].Students2)
	}
}

func TestCompareEmptyYear(t *testing.T) {
	header := strings.SplitN(fixture2024, "\n", 2)[0] + "\n"
	svc := newServiceWithFiles(t, map[string]string{
		"indicadores19.csv": fixture2019,
		"indicadores23.csv": fixture2023,
		"indicadores24.csv": header,
	})

	view, err := svc.Compare(context.Background(), models.MetricInclusaoDigital, 2019, 2024)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	c := view.Comparison
	if !c.Mean1.Defined || c.Mean2.Defined || c.Delta.Defined || c.Variation.Defined {
		t.Errorf("comparação = %+v, want média de 2024 e deltas indefinidos", c)
	}
	if view.Narrative.Trend != narrative.TrendUndefined {
		t.Errorf("Trend = %q, want undefined", view.Narrative.Trend)
	}
	if !strings.Contains(view.Narrative.Markdown, "Não há dados suficientes") {
		t.Errorf("Markdown = %q", view.Narrative.Markdown)
	}
}

func TestPercentilesAndCorrelation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	subset, err := svc.Percentiles(ctx, 2024, models.MetricInclusaoDigital, 50, models.SideBelow)
	if err != nil {
		t.Fatalf("Percentiles: %v", err)
	}
	if !approx(subset.Threshold.Value, 0.60) || len(subset.Records) != 2 {
		t.Errorf("subset = %v com %d municípios, want 0.60 com 2", subset.Threshold, len(subset.Records))
	}

	if _, err := svc.Percentiles(ctx, 2024, models.MetricInclusaoDigital, 120, models.SideBelow); !errors.Is(err, models.ErrInvalidPercentile) {
		t.Errorf("err = %v, want ErrInvalidPercentile", err)
	}

	corr, err := svc.Correlation(ctx, 2019, models.MetricInclusaoDigital, models.MetricNotaMediaGeral)
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	if corr.Result.Pairs != 2 || !approx(corr.Result.Pearson.Value, 1) {
		t.Errorf("correlação = %+v, want 2 pares e r = 1", corr.Result)
	}

	if _, err := svc.Correlation(ctx, 2030, models.MetricInclusaoDigital, models.MetricNotaMediaGeral); !errors.Is(err, models.ErrUnknownYear) {
		t.Errorf("err = %v, want ErrUnknownYear", err)
	}
}

func TestDashboard(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.Dashboard(context.Background(), models.MetricComputador)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if view.Metric.Key != models.MetricComputador || len(view.Options) != 3 {
		t.Errorf("métrica = %+v, opções = %d", view.Metric, len(view.Options))
	}
	if len(view.Correlations) != 2 || len(view.Summaries) != 2 {
		t.Errorf("correlações = %d, resumos = %d", len(view.Correlations), len(view.Summaries))
	}
	if view.IDEB.Comparison.Year != 2023 || !approx(view.IDEB.Comparison.Mean2.Value, 4.8) {
		t.Errorf("IDEB = %+v", view.IDEB.Comparison)
	}
	if view.Hypothesis.Title != "Hipótese da IA Generativa" {
		t.Errorf("Hypothesis = %+v", view.Hypothesis)
	}

	report := Report(view)
	for _, want := range []string{"Panorama da Educação Digital no Ceará", "Nota Média do ENEM", "Tabela Resumo", "Inclusão Plena", "| A |"} {
		if !strings.Contains(report, want) {
			t.Errorf("relatório sem %q", want)
		}
	}
}

func TestDashboardMissingFile(t *testing.T) {
	svc := newTestService(t, "indicadores23.csv")

	_, err := svc.Dashboard(context.Background(), models.MetricInclusaoDigital)
	if err == nil {
		t.Fatal("esperava erro com base ausente")
	}
	var missing *models.MissingFileError
	if !errors.As(err, &missing) || !strings.HasSuffix(missing.Path, "indicadores23.csv") {
		t.Errorf("err = %v, want MissingFileError de indicadores23.csv", err)
	}
	if !models.IsDataError(err) {
		t.Error("IsDataError deveria reconhecer o erro")
	}
}

func TestChart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    ChartRequest
		series int
		check  func(t *testing.T, spec charts.Spec)
	}{
		{
			name:   "histograma dos dois anos",
			req:    ChartRequest{Kind: charts.KindHistogram, Metric: models.MetricInclusaoDigital},
			series: 2,
			check: func(t *testing.T, spec charts.Spec) {
				if !spec.FixedX || spec.Bins != charts.DefaultBins {
					t.Errorf("spec = %+v", spec)
				}
			},
		},
		{
			name:   "histograma de um ano",
			req:    ChartRequest{Kind: charts.KindHistogram, Metric: models.MetricNotaMediaGeral, Only: 2024},
			series: 1,
			check: func(t *testing.T, spec charts.Spec) {
				if spec.Series[0].Color != charts.ColorTarget {
					t.Errorf("cor = %q, want %q", spec.Series[0].Color, charts.ColorTarget)
				}
			},
		},
		{
			name:   "boxplot",
			req:    ChartRequest{Kind: charts.KindBoxPlot, Metric: models.MetricNotaMediaGeral},
			series: 2,
		},
		{
			name:   "dispersão",
			req:    ChartRequest{Kind: charts.KindScatter, Metric: models.MetricInclusaoDigital},
			series: 2,
			check: func(t *testing.T, spec charts.Spec) {
				if len(spec.Series[1].Points) != 3 {
					t.Errorf("pontos 2024 = %d, want 3", len(spec.Series[1].Points))
				}
			},
		},
		{
			name:   "resumo de notas",
			req:    ChartRequest{Kind: charts.KindBar, Group: models.GroupScores},
			series: 2,
			check: func(t *testing.T, spec charts.Spec) {
				if len(spec.Categories) != len(models.ScoreMetrics) {
					t.Errorf("categorias = %v", spec.Categories)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := svc.Chart(ctx, tt.req)
			if err != nil {
				t.Fatalf("Chart: %v", err)
			}
			if len(spec.Series) != tt.series {
				t.Errorf("séries = %d, want %d", len(spec.Series), tt.series)
			}
			if tt.check != nil {
				tt.check(t, spec)
			}
		})
	}

	if _, err := svc.Chart(ctx, ChartRequest{Kind: "pizza", Metric: models.MetricIDEB}); !errors.Is(err, models.ErrUnknownChart) {
		t.Errorf("err = %v, want ErrUnknownChart", err)
	}
}

func TestWriteWorkbook(t *testing.T) {
	svc := newTestService(t)
	export := NewExportService(svc)

	var buf bytes.Buffer
	if err := export.WriteWorkbook(context.Background(), &buf, models.MetricInclusaoDigital, 0, 0); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetSummary, err)
	}
	if len(summary) == 0 || summary[0][0] != "Indicador" || summary[0][1] != "2019" {
		t.Errorf("cabeçalho do resumo = %v", summary)
	}

	rows, err := f.GetRows(SheetMunicipalities)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetMunicipalities, err)
	}
	if len(rows) != 3 || rows[0][4] != "Variação (p.p.)" || rows[1][0] != "A" {
		t.Errorf("municípios = %v", rows)
	}

	corr, err := f.GetRows(SheetCorrelation)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetCorrelation, err)
	}
	if len(corr) != 3 {
		t.Errorf("correlações = %v", corr)
	}
}
