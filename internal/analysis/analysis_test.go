package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
)

const eps = 1e-9

func record(nome string, taxa, nota float64) models.MunicipalityIndicatorRecord {
	r := models.NewRecord(nome)
	r.TaxaInclusaoDigital = taxa
	r.NotaMediaGeral = nota
	r.TotalAlunos = 100
	return r
}

func dataset(year int, records ...models.MunicipalityIndicatorRecord) *models.YearlyDataset {
	return &models.YearlyDataset{Year: year, Records: records}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// Cenário de referência: A e B nos dois anos
func TestCompareMeansScenario(t *testing.T) {
	y2019 := dataset(2019, record("A", 0.50, 500), record("B", 0.70, 600))
	y2023 := dataset(2023, record("A", 0.60, 520), record("B", 0.65, 610))

	t.Run("taxa", func(t *testing.T) {
		cmp := CompareMeans(y2019, y2023, models.MetricInclusaoDigital)
		if !near(cmp.Mean1.Value, 0.60) || !near(cmp.Mean2.Value, 0.625) {
			t.Errorf("médias = %v -> %v, want 0.60 -> 0.625", cmp.Mean1, cmp.Mean2)
		}
		if !near(cmp.Delta.Value, 0.025) {
			t.Errorf("Delta = %v, want 0.025", cmp.Delta)
		}
		if math.Abs(cmp.Variation.Value-4.17) > 0.005 {
			t.Errorf("Variation = %v, want ~4.17", cmp.Variation)
		}
		if !near(cmp.Points.Value, 2.5) {
			t.Errorf("Points = %v, want 2.5 p.p.", cmp.Points)
		}
		if cmp.BaseYear != 2019 || cmp.Year != 2023 {
			t.Errorf("anos = %d/%d", cmp.BaseYear, cmp.Year)
		}
	})

	t.Run("nota", func(t *testing.T) {
		cmp := CompareMeans(y2019, y2023, models.MetricNotaMediaGeral)
		if !near(cmp.Mean1.Value, 550) || !near(cmp.Mean2.Value, 565) {
			t.Errorf("médias = %v -> %v, want 550 -> 565", cmp.Mean1, cmp.Mean2)
		}
		if !near(cmp.Delta.Value, 15) {
			t.Errorf("Delta = %v, want 15", cmp.Delta)
		}
		if math.Abs(cmp.Variation.Value-2.73) > 0.005 {
			t.Errorf("Variation = %v, want ~2.73", cmp.Variation)
		}
		if cmp.Points.Defined {
			t.Errorf("Points deveria ser indefinido para notas, got %v", cmp.Points)
		}
	})
}

func TestMeanIgnoresMissing(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    float64
		defined bool
	}{
		{"sem ausentes", []float64{1, 2, 3}, 2, true},
		{"com NaN", []float64{1, math.NaN(), 3}, 2, true},
		{"vazio", nil, 0, false},
		{"apenas NaN", []float64{math.NaN()}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.values)
			if got.Defined != tt.defined {
				t.Fatalf("Defined = %v, want %v", got.Defined, tt.defined)
			}
			if tt.defined && !near(got.Value, tt.want) {
				t.Errorf("Mean = %v, want %v", got.Value, tt.want)
			}
		})
	}
}

func TestVariation(t *testing.T) {
	tests := []struct {
		name    string
		a, b    models.Statistic
		want    float64
		defined bool
	}{
		{"crescimento", models.DefinedStat(550), models.DefinedStat(565), 15.0 / 550 * 100, true},
		{"queda", models.DefinedStat(0.5), models.DefinedStat(0.4), -20, true},
		{"base zero", models.DefinedStat(0), models.DefinedStat(1), 0, false},
		{"base indefinida", models.Undefined(), models.DefinedStat(1), 0, false},
		{"alvo indefinido", models.DefinedStat(1), models.Undefined(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variation(tt.a, tt.b)
			if got.Defined != tt.defined {
				t.Fatalf("Defined = %v, want %v", got.Defined, tt.defined)
			}
			if tt.defined && !near(got.Value, tt.want) {
				t.Errorf("Variation = %v, want %v", got.Value, tt.want)
			}
		})
	}
}

func TestCompareMeansEmptyDataset(t *testing.T) {
	cmp := CompareMeans(dataset(2019), dataset(2024, record("A", 0.5, 500)), models.MetricInclusaoDigital)

	if cmp.Mean1.Defined || cmp.Delta.Defined || cmp.Variation.Defined || cmp.Points.Defined {
		t.Errorf("base vazia deveria gerar estatísticas indefinidas: %+v", cmp)
	}
	if !cmp.Mean2.Defined {
		t.Error("Mean2 deveria ser definida")
	}
}

func TestJoinIsInner(t *testing.T) {
	base := dataset(2019, record("A", 0.5, 500), record("B", 0.7, 600), record("SoEm2019", 0.1, 400))
	target := dataset(2024, record("B", 0.65, 610), record("A", 0.6, 520), record("SoEm2024", 0.9, 700))

	rows := Join(base, target, models.MetricInclusaoDigital)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Municipio == "SoEm2019" || row.Municipio == "SoEm2024" {
			t.Errorf("município de um só ano na junção: %s", row.Municipio)
		}
	}
	if rows[0].Municipio != "A" || !near(rows[0].Difference.Value, 0.1) {
		t.Errorf("rows[0] = %+v", rows[0])
	}

	// a contagem de linhas é simétrica na junção interna
	if back := Join(target, base, models.MetricInclusaoDigital); len(back) != len(rows) {
		t.Errorf("junção invertida com %d linhas, want %d", len(back), len(rows))
	}
}

func TestJoinExactNames(t *testing.T) {
	base := dataset(2019, record("Itapajé", 0.5, 500))
	target := dataset(2024, record("Itapaje", 0.6, 520))

	if rows := Join(base, target, models.MetricInclusaoDigital); len(rows) != 0 {
		t.Errorf("grafias diferentes não deveriam casar: %+v", rows)
	}
}

func TestSortByDifference(t *testing.T) {
	base := dataset(2019,
		record("Crato", 0.5, 500),
		record("Sobral", 0.5, 500),
		record("Aracati", 0.5, 500),
		record("Iguatu", math.NaN(), 500),
	)
	target := dataset(2024,
		record("Crato", 0.6, 500),
		record("Sobral", 0.9, 500),
		record("Aracati", 0.6, 500),
		record("Iguatu", 0.7, 500),
	)

	rows := Join(base, target, models.MetricInclusaoDigital)
	SortByDifference(rows)

	want := []string{"Sobral", "Aracati", "Crato", "Iguatu"}
	for i, name := range want {
		if rows[i].Municipio != name {
			t.Fatalf("ordem = %v, want %v", names(rows), want)
		}
	}
	if rows[3].Difference.Defined {
		t.Error("Iguatu deveria ter diferença indefinida")
	}
}

func names(rows []models.ComparisonRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Municipio
	}
	return out
}

func TestPercentile(t *testing.T) {
	values := []float64{4, 1, 3, 2, math.NaN()}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 1.75},
		{50, 2.5},
		{75, 3.25},
		{100, 4},
	}
	for _, tt := range tests {
		got, err := Percentile(values, tt.p)
		if err != nil {
			t.Fatalf("Percentile(%v): %v", tt.p, err)
		}
		if !got.Defined || got.Value != tt.want {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if got, err := Percentile(nil, 25); err != nil || got.Defined {
		t.Errorf("Percentile(vazio) = %v, %v; want indefinido sem erro", got, err)
	}
	for _, p := range []float64{-1, 101, math.NaN()} {
		if _, err := Percentile(values, p); !errors.Is(err, models.ErrInvalidPercentile) {
			t.Errorf("Percentile(%v) err = %v, want ErrInvalidPercentile", p, err)
		}
	}
}

func TestThresholdIsIdempotent(t *testing.T) {
	ds := dataset(2019,
		record("A", 0.1, 400),
		record("B", 0.2, 450),
		record("C", 0.3, 500),
		record("D", 0.4, 550),
		record("E", math.NaN(), 600),
	)

	first, err := Threshold(ds, models.MetricInclusaoDigital, 25, models.SideBelow)
	if err != nil {
		t.Fatalf("Threshold: %v", err)
	}
	if len(first.Records) != 1 || first.Records[0].Municipio != "A" {
		t.Errorf("abaixo de P25 = %+v, want [A]", first.Records)
	}

	second, _ := Threshold(ds, models.MetricInclusaoDigital, 25, models.SideBelow)
	if len(second.Records) != len(first.Records) || second.Threshold != first.Threshold {
		t.Errorf("recorte não idempotente: %+v vs %+v", first, second)
	}

	above, err := Threshold(ds, models.MetricInclusaoDigital, 75, models.SideAbove)
	if err != nil {
		t.Fatalf("Threshold acima: %v", err)
	}
	// limiar interpolado em 0.325 deixa só D acima
	if len(above.Records) != 1 || above.Records[0].Municipio != "D" {
		t.Errorf("acima de P75 = %+v, want [D]", above.Records)
	}

	empty, err := Threshold(dataset(2019), models.MetricInclusaoDigital, 25, models.SideBelow)
	if err != nil || empty.Threshold.Defined || len(empty.Records) != 0 {
		t.Errorf("base vazia = %+v, %v", empty, err)
	}

	if _, err := Threshold(ds, models.MetricInclusaoDigital, 25, "meio"); !errors.Is(err, models.ErrInvalidSide) {
		t.Errorf("lado inválido err = %v", err)
	}
}

func TestCorrelation(t *testing.T) {
	t.Run("perfeita positiva", func(t *testing.T) {
		r, n := Correlation([]float64{1, 2, 3}, []float64{10, 20, 30})
		if n != 3 || !r.Defined || !near(r.Value, 1) {
			t.Errorf("r = %v (n=%d), want 1", r, n)
		}
	})

	t.Run("perfeita negativa", func(t *testing.T) {
		r, _ := Correlation([]float64{1, 2, 3}, []float64{3, 2, 1})
		if !r.Defined || !near(r.Value, -1) {
			t.Errorf("r = %v, want -1", r)
		}
	})

	t.Run("ignora pares incompletos", func(t *testing.T) {
		r, n := Correlation([]float64{1, math.NaN(), 2, 3}, []float64{2, 5, math.NaN(), 4})
		if n != 2 || !r.Defined || !near(r.Value, 1) {
			t.Errorf("r = %v (n=%d), want 1 com 2 pares", r, n)
		}
	})

	t.Run("menos de dois pares", func(t *testing.T) {
		r, n := Correlation([]float64{1, math.NaN()}, []float64{2, 3})
		if r.Defined || n != 1 {
			t.Errorf("r = %v (n=%d), want indefinido", r, n)
		}
	})

	t.Run("variância nula", func(t *testing.T) {
		r, _ := Correlation([]float64{1, 1, 1}, []float64{1, 2, 3})
		if r.Defined {
			t.Errorf("r = %v, want indefinido", r)
		}
	})

	t.Run("dentro de [-1, 1]", func(t *testing.T) {
		xs := []float64{0.31, 0.52, 0.47, 0.88, 0.12, 0.64}
		ys := []float64{480, 530, 505, 610, 455, 540}
		r, _ := Correlation(xs, ys)
		if !r.Defined || r.Value < -1 || r.Value > 1 {
			t.Errorf("r = %v fora de [-1, 1]", r)
		}
	})
}

func TestCorrelateMetrics(t *testing.T) {
	ds := dataset(2019, record("A", 0.5, 500), record("B", 0.7, 600), record("C", math.NaN(), 550))

	res := CorrelateMetrics(ds, models.MetricInclusaoDigital, models.MetricNotaMediaGeral)
	if res.Pairs != 2 || !res.Pearson.Defined || !near(res.Pearson.Value, 1) {
		t.Errorf("CorrelateMetrics = %+v", res)
	}
	if res.Year != 2019 || res.X != models.MetricInclusaoDigital {
		t.Errorf("metadados = %+v", res)
	}
}

func TestSummary(t *testing.T) {
	base := dataset(2019, record("A", 0.5, 500), record("B", 0.7, 600), record("C", 0.9, 900))
	target := dataset(2024, record("A", 0.6, 520), record("B", 0.65, 610))

	rows := Summary(base, target, []models.Metric{
		models.MetricNotaMediaGeral,
		models.MetricInclusaoDigital,
		models.MetricTotalAlunos,
	})
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}

	byMetric := make(map[models.Metric]models.SummaryRow)
	for _, r := range rows {
		byMetric[r.Metric] = r
	}

	// C fica fora: resumo sobre a junção
	if got := byMetric[models.MetricNotaMediaGeral].Value1.Value; !near(got, 550) {
		t.Errorf("nota base = %v, want 550", got)
	}
	alunos := byMetric[models.MetricTotalAlunos]
	if alunos.Indicator != LabelTotalAlunosSoma || !near(alunos.Value1.Value, 200) {
		t.Errorf("total de alunos = %+v, want soma 200", alunos)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Variation.Value < rows[i].Variation.Value {
			t.Errorf("resumo fora de ordem: %v antes de %v", rows[i-1].Variation, rows[i].Variation)
		}
	}
}
