// Package analysis compara indicadores entre dois anos: médias, deltas,
// junção por município, recortes por percentil e correlação de Pearson.
//
// Todos os resultados usam models.Statistic: nenhum valor NaN ou Inf sai
// daqui como número, ele vira uma estatística indefinida.
package analysis

import (
	"math"
	"sort"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
)

// LabelTotalAlunosSoma é o rótulo do total de alunos na tabela resumo
const LabelTotalAlunosSoma = "Total de Alunos (Soma Estado)"

// CompareMeans compara a média da métrica entre o ano base e o ano alvo
func CompareMeans(base, target *models.YearlyDataset, metric models.Metric) models.MeanComparison {
	m1 := Mean(base.Values(metric))
	m2 := Mean(target.Values(metric))
	delta := Difference(m1, m2)

	cmp := models.MeanComparison{
		Metric:    metric,
		Label:     metric.Label(),
		BaseYear:  base.Year,
		Year:      target.Year,
		Mean1:     m1,
		Mean2:     m2,
		Delta:     delta,
		Variation: Variation(m1, m2),
	}
	if metric.IsRate() && delta.Defined {
		cmp.Points = models.DefinedStat(delta.Value * 100)
	}
	return cmp
}

// Join faz a junção interna dos dois anos por município.
// Municípios presentes em apenas um ano não aparecem. A ordem segue o ano base.
func Join(base, target *models.YearlyDataset, metric models.Metric) []models.ComparisonRow {
	index := make(map[string]models.MunicipalityIndicatorRecord, len(target.Records))
	for _, r := range target.Records {
		index[r.Municipio] = r
	}

	rows := make([]models.ComparisonRow, 0, len(base.Records))
	for _, r1 := range base.Records {
		r2, ok := index[r1.Municipio]
		if !ok {
			continue
		}
		v1 := models.DefinedStat(r1.Value(metric))
		v2 := models.DefinedStat(r2.Value(metric))
		rows = append(rows, models.ComparisonRow{
			Municipio:  r1.Municipio,
			Value1:     v1,
			Value2:     v2,
			Difference: Difference(v1, v2),
			Variation:  Variation(v1, v2),
			Students1:  models.DefinedStat(r1.TotalAlunos),
			Students2:  models.DefinedStat(r2.TotalAlunos),
		})
	}
	return rows
}

// SortByDifference ordena por diferença decrescente; indefinidas vão para o fim
// e empates seguem a ordem alfabética
func SortByDifference(rows []models.ComparisonRow) {
	cmp := utils.ComparadorMunicipios()
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Difference, rows[j].Difference
		if a.Defined != b.Defined {
			return a.Defined
		}
		if a.Defined && a.Value != b.Value {
			return a.Value > b.Value
		}
		return cmp(rows[i].Municipio, rows[j].Municipio) < 0
	})
}

// Threshold recorta os municípios do ano com valor <= P(p) (abaixo) ou >= P(p) (acima).
// Base vazia resulta em limiar indefinido e recorte vazio.
func Threshold(ds *models.YearlyDataset, metric models.Metric, p float64, side models.ThresholdSide) (models.ThresholdSubset, error) {
	subset := models.ThresholdSubset{
		Year:       ds.Year,
		Metric:     metric,
		Percentile: p,
		Side:       side,
		Records:    []models.MunicipalityIndicatorRecord{},
	}

	if side != models.SideBelow && side != models.SideAbove {
		return subset, models.ErrInvalidSide
	}

	threshold, err := Percentile(ds.Values(metric), p)
	if err != nil {
		return subset, err
	}
	subset.Threshold = threshold
	if !threshold.Defined {
		return subset, nil
	}

	for _, r := range ds.Records {
		v := r.Value(metric)
		if math.IsNaN(v) {
			continue
		}
		if (side == models.SideBelow && v <= threshold.Value) || (side == models.SideAbove && v >= threshold.Value) {
			subset.Records = append(subset.Records, r)
		}
	}
	return subset, nil
}

// CorrelateMetrics calcula Pearson entre duas métricas de um mesmo ano
func CorrelateMetrics(ds *models.YearlyDataset, x, y models.Metric) models.CorrelationResult {
	xs, ys := Columns(ds, x, y)
	r, n := Correlation(xs, ys)
	return models.CorrelationResult{
		Year:    ds.Year,
		X:       x,
		Y:       y,
		Pairs:   n,
		Pearson: r,
	}
}

// Columns retorna as duas métricas alinhadas por registro (com NaN nos ausentes)
func Columns(ds *models.YearlyDataset, x, y models.Metric) ([]float64, []float64) {
	xs := make([]float64, len(ds.Records))
	ys := make([]float64, len(ds.Records))
	for i, r := range ds.Records {
		xs[i] = r.Value(x)
		ys[i] = r.Value(y)
	}
	return xs, ys
}

// PairedColumns é como Columns, mas apenas com os registros em que as duas métricas existem
func PairedColumns(ds *models.YearlyDataset, x, y models.Metric) ([]float64, []float64) {
	return pairs(Columns(ds, x, y))
}

// Summary monta a tabela resumo sobre os municípios presentes nos dois anos:
// média de cada métrica (soma para o total de alunos), ordenada por variação decrescente
func Summary(base, target *models.YearlyDataset, metrics []models.Metric) []models.SummaryRow {
	out := make([]models.SummaryRow, 0, len(metrics))
	for _, metric := range metrics {
		rows := Join(base, target, metric)
		v1 := make([]float64, len(rows))
		v2 := make([]float64, len(rows))
		for i, row := range rows {
			v1[i] = row.Value1.Or(math.NaN())
			v2[i] = row.Value2.Or(math.NaN())
		}

		label := shortLabel(metric)
		var a, b models.Statistic
		if metric == models.MetricTotalAlunos {
			a, b = Sum(v1), Sum(v2)
			label = LabelTotalAlunosSoma
		} else {
			a, b = Mean(v1), Mean(v2)
		}

		out = append(out, models.SummaryRow{
			Metric:     metric,
			Indicator:  label,
			Value1:     a,
			Value2:     b,
			Difference: Difference(a, b),
			Variation:  Variation(a, b),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Variation, out[j].Variation
		if a.Defined != b.Defined {
			return a.Defined
		}
		return a.Value > b.Value
	})
	return out
}

func shortLabel(m models.Metric) string {
	if info, ok := m.Info(); ok {
		return info.Short
	}
	return string(m)
}
