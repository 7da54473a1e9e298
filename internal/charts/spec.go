// Package charts monta especificações declarativas dos gráficos do painel
// (histograma, boxplot, dispersão e barras agrupadas) e as desenha com gonum/plot.
package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
)

// Kind é o tipo de gráfico
type Kind string

const (
	KindHistogram Kind = "histograma"
	KindBoxPlot   Kind = "boxplot"
	KindScatter   Kind = "dispersao"
	KindBar       Kind = "resumo"
)

// ParseKind valida o tipo de gráfico pedido na rota
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindHistogram, KindBoxPlot, KindScatter, KindBar:
		return k, nil
	}
	return "", models.ErrUnknownChart
}

// Paleta dos anos: o mais antigo em roxo, o mais recente em laranja
const (
	ColorBase   = "#8e44ad"
	ColorTarget = "#ff9f43"
)

// DefaultBins é o número de classes dos histogramas
const DefaultBins = 20

// Point é um par (x, y) de um município
type Point struct {
	X float64
	Y float64
}

// Series é um conjunto de dados de um ano
type Series struct {
	Name   string
	Color  string
	Values []float64
	Points []Point
}

// Spec descreve um gráfico sem desenhá-lo
type Spec struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Bins só vale para histogramas
	Bins int
	// FixedX fixa o eixo X em [XMin, XMax]
	FixedX bool
	XMin   float64
	XMax   float64

	// Categories são os rótulos do eixo X das barras
	Categories []string
	Series     []Series
}

// YearSeries extrai a métrica de um ano, sem os valores ausentes
func YearSeries(ds *models.YearlyDataset, metric models.Metric, color string) Series {
	return Series{
		Name:   strconv.Itoa(ds.Year),
		Color:  color,
		Values: ds.Values(metric),
	}
}

// PairSeries extrai os pares (x, y) de um ano em que as duas métricas existem
func PairSeries(ds *models.YearlyDataset, x, y models.Metric, color string) Series {
	s := Series{Name: strconv.Itoa(ds.Year), Color: color}
	for _, r := range ds.Records {
		vx, vy := r.Value(x), r.Value(y)
		if math.IsNaN(vx) || math.IsNaN(vy) {
			continue
		}
		s.Points = append(s.Points, Point{X: vx, Y: vy})
	}
	return s
}

// Histogram monta a distribuição da métrica, um histograma sobreposto por ano.
// Taxas usam o eixo X fixo em [0,1].
func Histogram(metric models.Metric, bins int, series ...Series) Spec {
	if bins <= 0 {
		bins = DefaultBins
	}
	spec := Spec{
		Kind:   KindHistogram,
		Title:  "Distribuição: " + plainLabel(metric),
		XLabel: plainLabel(metric),
		YLabel: "Qtd. Municípios",
		Bins:   bins,
		Series: series,
	}
	if metric.IsRate() {
		spec.FixedX = true
		spec.XMin, spec.XMax = 0, 1
	}
	return spec
}

// BoxPlot monta uma caixa por ano
func BoxPlot(metric models.Metric, series ...Series) Spec {
	return Spec{
		Kind:   KindBoxPlot,
		Title:  "Dispersão entre municípios: " + plainLabel(metric),
		XLabel: "Ano",
		YLabel: plainLabel(metric),
		Series: series,
	}
}

// Scatter monta a dispersão taxa × nota, uma série por ano
func Scatter(x, y models.Metric, series ...Series) Spec {
	spec := Spec{
		Kind:   KindScatter,
		Title:  plainLabel(x) + " × " + plainLabel(y),
		XLabel: plainLabel(x),
		YLabel: plainLabel(y),
		Series: series,
	}
	if x.IsRate() {
		spec.FixedX = true
		spec.XMin, spec.XMax = 0, 1
	}
	return spec
}

// GroupedBar monta as barras agrupadas da tabela resumo (ano base × ano alvo).
// O total de alunos fica de fora (escala diferente) e valores indefinidos viram barras vazias.
func GroupedBar(baseYear, targetYear int, rows []models.SummaryRow) Spec {
	spec := Spec{
		Kind:   KindBar,
		Title:  fmt.Sprintf("Comparativo de Indicadores: %d vs %d", baseYear, targetYear),
		YLabel: "Taxa Média / Nota",
		Series: []Series{
			{Name: strconv.Itoa(baseYear), Color: ColorBase},
			{Name: strconv.Itoa(targetYear), Color: ColorTarget},
		},
	}
	for _, row := range rows {
		if row.Metric == models.MetricTotalAlunos {
			continue
		}
		spec.Categories = append(spec.Categories, row.Indicator)
		spec.Series[0].Values = append(spec.Series[0].Values, row.Value1.Or(0))
		spec.Series[1].Values = append(spec.Series[1].Values, row.Value2.Or(0))
	}
	return spec
}

// Empty indica se nenhuma série tem dados
func (s Spec) Empty() bool {
	for _, series := range s.Series {
		if len(series.Values) > 0 || len(series.Points) > 0 {
			return false
		}
	}
	return true
}

// plainLabel é o rótulo curto, sem emoji, que as fontes do gráfico conseguem desenhar
func plainLabel(m models.Metric) string {
	if info, ok := m.Info(); ok {
		return info.Short
	}
	return string(m)
}
