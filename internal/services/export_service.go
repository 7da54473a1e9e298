package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Nomes das abas da planilha exportada
const (
	SheetSummary        = "Resumo"
	SheetMunicipalities = "Municipios"
	SheetCorrelation    = "Correlacao"
)

// ExportService gera a planilha e o relatório em markdown do painel
type ExportService struct {
	dashboard *DashboardService
}

// NewExportService cria o serviço de exportação
func NewExportService(dashboard *DashboardService) *ExportService {
	return &ExportService{dashboard: dashboard}
}

// Workbook monta a planilha com o resumo, a tabela por município e as correlações.
// O chamador deve fechar o arquivo.
func (s *ExportService) Workbook(ctx context.Context, metric models.Metric, base, target int) (*excelize.File, error) {
	base, target = s.dashboard.years(base, target)

	ctx, span := otel.Tracer("export").Start(ctx, "Workbook")
	defer span.End()
	span.SetAttributes(
		attribute.String("export.metric", string(metric)),
		attribute.Int("export.base_year", base),
		attribute.Int("export.target_year", target),
	)

	// 1. Dados
	var summaries []*SummaryView
	for _, group := range []models.SummaryGroup{models.GroupRates, models.GroupScores} {
		view, err := s.dashboard.Summary(ctx, base, target, group)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, view)
	}

	table, err := s.dashboard.Municipalities(ctx, metric, base, target)
	if err != nil {
		return nil, err
	}

	var correlations []*CorrelationView
	for _, year := range []int{base, target} {
		corr, err := s.dashboard.Correlation(ctx, year, metric, models.MetricNotaMediaGeral)
		if err != nil {
			return nil, err
		}
		correlations = append(correlations, corr)
	}

	// 2. Planilha
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao criar planilha: %w", err)
	}
	for _, name := range []string{SheetMunicipalities, SheetCorrelation} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("erro ao criar aba %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao criar estilo: %w", err)
	}

	w := &sheetWriter{f: f, header: bold}
	w.summary(summaries, base, target)
	w.municipalities(table)
	w.correlations(correlations)
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao preencher planilha: %w", w.err)
	}

	f.SetActiveSheet(0)
	span.SetAttributes(attribute.Int("export.rows", len(table.Rows)))
	return f, nil
}

// WriteWorkbook escreve a planilha em w
func (s *ExportService) WriteWorkbook(ctx context.Context, out io.Writer, metric models.Metric, base, target int) error {
	f, err := s.Workbook(ctx, metric, base, target)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("erro ao escrever planilha: %w", err)
	}
	return nil
}

// sheetWriter guarda o primeiro erro das escritas em sequência
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, row int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, row int, values ...interface{}) {
	w.row(sheet, row, values...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	w.err = w.f.SetCellStyle(sheet, first, last, w.header)
}

func (w *sheetWriter) widths(sheet string, cols string, width float64) {
	if w.err != nil {
		return
	}
	parts := strings.SplitN(cols, ":", 2)
	w.err = w.f.SetColWidth(sheet, parts[0], parts[len(parts)-1], width)
}

func (w *sheetWriter) summary(views []*SummaryView, base, target int) {
	row := 1
	for _, view := range views {
		w.headerRow(SheetSummary, row, "Indicador", strconv.Itoa(base), strconv.Itoa(target), "Diferença", "Variação (%)")
		row++
		for _, r := range view.Rows {
			w.row(SheetSummary, row, r.Indicator, cellValue(r.Value1), cellValue(r.Value2), cellValue(r.Difference), cellValue(r.Variation))
			row++
		}
		row++
	}
	w.widths(SheetSummary, "A", 32)
	w.widths(SheetSummary, "B:E", 16)
}

func (w *sheetWriter) municipalities(table *MunicipalityTable) {
	variation := "Variação (%)"
	if table.Metric.IsRate() {
		variation = "Variação (p.p.)"
	}
	label := string(table.Metric)
	w.headerRow(SheetMunicipalities, 1,
		"Município",
		fmt.Sprintf("%s_%d", label, table.BaseYear),
		fmt.Sprintf("%s_%d", label, table.Year),
		"Diferença",
		variation,
		fmt.Sprintf("Total_Alunos_%d", table.BaseYear),
		fmt.Sprintf("Total_Alunos_%d", table.Year),
	)
	for i, r := range table.Rows {
		change := r.Variation
		if table.Metric.IsRate() && r.Difference.Defined {
			change = models.DefinedStat(r.Difference.Value * 100)
		}
		w.row(SheetMunicipalities, i+2, r.Municipio, cellValue(r.Value1), cellValue(r.Value2), cellValue(r.Difference), cellValue(change), cellValue(r.Students1), cellValue(r.Students2))
	}
	w.widths(SheetMunicipalities, "A", 28)
	w.widths(SheetMunicipalities, "B:G", 20)
}

func (w *sheetWriter) correlations(views []*CorrelationView) {
	w.headerRow(SheetCorrelation, 1, "Ano", "X", "Y", "Pares", "Pearson")
	for i, v := range views {
		r := v.Result
		w.row(SheetCorrelation, i+2, r.Year, string(r.X), string(r.Y), r.Pairs, cellValue(r.Pearson))
	}
	w.widths(SheetCorrelation, "A:E", 22)
}

// cellValue escreve "N/A" no lugar de estatísticas indefinidas
func cellValue(s models.Statistic) interface{} {
	if !s.Defined {
		return utils.NaoDisponivel
	}
	return s.Value
}
