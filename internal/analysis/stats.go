package analysis

import (
	"math"
	"sort"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Mean calcula a média aritmética ignorando valores ausentes.
// Sem valores a média é indefinida.
func Mean(values []float64) models.Statistic {
	clean := dropMissing(values)
	if len(clean) == 0 {
		return models.Undefined()
	}
	return models.DefinedStat(stat.Mean(clean, nil))
}

// Sum soma os valores presentes; indefinida sem valores
func Sum(values []float64) models.Statistic {
	clean := dropMissing(values)
	if len(clean) == 0 {
		return models.Undefined()
	}
	total := 0.0
	for _, v := range clean {
		total += v
	}
	return models.DefinedStat(total)
}

// Difference retorna b - a, indefinida se qualquer lado for
func Difference(a, b models.Statistic) models.Statistic {
	if !a.Defined || !b.Defined {
		return models.Undefined()
	}
	return models.DefinedStat(b.Value - a.Value)
}

// Variation calcula (b - a) / a * 100; indefinida quando a é zero
func Variation(a, b models.Statistic) models.Statistic {
	if !a.Defined || !b.Defined || a.Value == 0 {
		return models.Undefined()
	}
	return models.DefinedStat((b.Value - a.Value) / a.Value * 100)
}

// Percentile retorna o valor no percentil p (0 a 100) com interpolação linear
// entre as observações vizinhas, na posição (n-1)*p/100 da amostra ordenada.
// Sem valores o limiar é indefinido.
func Percentile(values []float64, p float64) (models.Statistic, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return models.Undefined(), models.ErrInvalidPercentile
	}
	sorted := dropMissing(values)
	if len(sorted) == 0 {
		return models.Undefined(), nil
	}
	sort.Float64s(sorted)
	return models.DefinedStat(linearQuantile(sorted, p/100)), nil
}

// linearQuantile interpola o quantil q de uma amostra ordenada e não vazia
func linearQuantile(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Correlation calcula o coeficiente de Pearson sobre os pares em que os dois valores existem.
// Com menos de dois pares, ou variância nula, o coeficiente é indefinido.
func Correlation(xs, ys []float64) (models.Statistic, int) {
	px, py := pairs(xs, ys)
	if len(px) < 2 {
		return models.Undefined(), len(px)
	}
	r := models.DefinedStat(stat.Correlation(px, py, nil))
	if r.Defined {
		r.Value = math.Max(-1, math.Min(1, r.Value))
	}
	return r, len(px)
}

// pairs mantém apenas as posições em que x e y estão presentes
func pairs(xs, ys []float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	px := make([]float64, 0, n)
	py := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	return px, py
}

func dropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
