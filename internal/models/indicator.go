package models

import (
	"encoding/json"
	"math"
)

// MunicipalityIndicatorRecord é uma linha da tabela de indicadores: um município em um ano.
// Valores ausentes no CSV ficam como NaN.
type MunicipalityIndicatorRecord struct {
	Municipio string `json:"municipio"`

	TotalAlunos          float64 `json:"total_alunos"`
	TotalComputador      float64 `json:"total_computador"`
	TotalInternet        float64 `json:"total_internet"`
	TotalInclusaoDigital float64 `json:"total_inclusao_digital"`

	TaxaComputador      float64 `json:"taxa_computador"`
	TaxaInternet        float64 `json:"taxa_internet"`
	TaxaInclusaoDigital float64 `json:"taxa_inclusao_digital"`

	NotaMediaGeral float64 `json:"nota_media_geral"`
	NotaRedacao    float64 `json:"nota_redacao"`
	NotaCH         float64 `json:"nota_ch"`
	NotaMat        float64 `json:"nota_mat"`
	NotaCN         float64 `json:"nota_cn"`
	NotaLC         float64 `json:"nota_lc"`

	IDEB float64 `json:"ideb"`
}

// NewRecord cria um registro com todos os valores numéricos ausentes
func NewRecord(municipio string) MunicipalityIndicatorRecord {
	nan := math.NaN()
	return MunicipalityIndicatorRecord{
		Municipio:            municipio,
		TotalAlunos:          nan,
		TotalComputador:      nan,
		TotalInternet:        nan,
		TotalInclusaoDigital: nan,
		TaxaComputador:       nan,
		TaxaInternet:         nan,
		TaxaInclusaoDigital:  nan,
		NotaMediaGeral:       nan,
		NotaRedacao:          nan,
		NotaCH:               nan,
		NotaMat:              nan,
		NotaCN:               nan,
		NotaLC:               nan,
		IDEB:                 nan,
	}
}

// Value retorna o valor da métrica no registro (NaN se ausente ou desconhecida)
func (r MunicipalityIndicatorRecord) Value(m Metric) float64 {
	switch m {
	case MetricInclusaoDigital:
		return r.TaxaInclusaoDigital
	case MetricComputador:
		return r.TaxaComputador
	case MetricInternet:
		return r.TaxaInternet
	case MetricNotaMediaGeral:
		return r.NotaMediaGeral
	case MetricNotaRedacao:
		return r.NotaRedacao
	case MetricNotaCH:
		return r.NotaCH
	case MetricNotaLC:
		return r.NotaLC
	case MetricNotaCN:
		return r.NotaCN
	case MetricNotaMat:
		return r.NotaMat
	case MetricIDEB:
		return r.IDEB
	case MetricTotalAlunos:
		return r.TotalAlunos
	}
	return math.NaN()
}

// MarshalJSON serializa valores ausentes como null
func (r MunicipalityIndicatorRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Municipio            string    `json:"municipio"`
		TotalAlunos          Statistic `json:"total_alunos"`
		TotalComputador      Statistic `json:"total_computador"`
		TotalInternet        Statistic `json:"total_internet"`
		TotalInclusaoDigital Statistic `json:"total_inclusao_digital"`
		TaxaComputador       Statistic `json:"taxa_computador"`
		TaxaInternet         Statistic `json:"taxa_internet"`
		TaxaInclusaoDigital  Statistic `json:"taxa_inclusao_digital"`
		NotaMediaGeral       Statistic `json:"nota_media_geral"`
		NotaRedacao          Statistic `json:"nota_redacao"`
		NotaCH               Statistic `json:"nota_ch"`
		NotaMat              Statistic `json:"nota_mat"`
		NotaCN               Statistic `json:"nota_cn"`
		NotaLC               Statistic `json:"nota_lc"`
		IDEB                 Statistic `json:"ideb"`
	}{
		Municipio:            r.Municipio,
		TotalAlunos:          DefinedStat(r.TotalAlunos),
		TotalComputador:      DefinedStat(r.TotalComputador),
		TotalInternet:        DefinedStat(r.TotalInternet),
		TotalInclusaoDigital: DefinedStat(r.TotalInclusaoDigital),
		TaxaComputador:       DefinedStat(r.TaxaComputador),
		TaxaInternet:         DefinedStat(r.TaxaInternet),
		TaxaInclusaoDigital:  DefinedStat(r.TaxaInclusaoDigital),
		NotaMediaGeral:       DefinedStat(r.NotaMediaGeral),
		NotaRedacao:          DefinedStat(r.NotaRedacao),
		NotaCH:               DefinedStat(r.NotaCH),
		NotaMat:              DefinedStat(r.NotaMat),
		NotaCN:               DefinedStat(r.NotaCN),
		NotaLC:               DefinedStat(r.NotaLC),
		IDEB:                 DefinedStat(r.IDEB),
	})
}

// YearlyDataset é o conjunto de registros de um ano. Imutável após a carga.
type YearlyDataset struct {
	Year    int                           `json:"year"`
	Source  string                        `json:"source"`
	Records []MunicipalityIndicatorRecord `json:"records"`
}

// Values retorna os valores não ausentes da métrica, na ordem dos registros
func (d *YearlyDataset) Values(m Metric) []float64 {
	out := make([]float64, 0, len(d.Records))
	for _, r := range d.Records {
		v := r.Value(m)
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Len retorna o número de municípios do ano
func (d *YearlyDataset) Len() int {
	return len(d.Records)
}

// ComparisonRow é uma linha da junção de dois anos para um município.
// Variation é a variação percentual relativa ao ano base.
type ComparisonRow struct {
	Municipio  string    `json:"municipio"`
	Value1     Statistic `json:"valor_base"`
	Value2     Statistic `json:"valor_alvo"`
	Difference Statistic `json:"diferenca"`
	Variation  Statistic `json:"variacao_pct"`
	Students1  Statistic `json:"alunos_base"`
	Students2  Statistic `json:"alunos_alvo"`
}

// MeanComparison compara a média de uma métrica entre dois anos.
// Points é o delta em pontos percentuais e só é definido para taxas.
type MeanComparison struct {
	Metric    Metric    `json:"metrica"`
	Label     string    `json:"rotulo"`
	BaseYear  int       `json:"ano_base"`
	Year      int       `json:"ano_alvo"`
	Mean1     Statistic `json:"media_base"`
	Mean2     Statistic `json:"media_alvo"`
	Delta     Statistic `json:"delta"`
	Variation Statistic `json:"variacao_pct"`
	Points    Statistic `json:"delta_pp"`
}

// SummaryRow é uma linha da tabela resumo executiva
type SummaryRow struct {
	Metric     Metric    `json:"metrica"`
	Indicator  string    `json:"indicador"`
	Value1     Statistic `json:"valor_base"`
	Value2     Statistic `json:"valor_alvo"`
	Difference Statistic `json:"diferenca"`
	Variation  Statistic `json:"variacao_pct"`
}

// ThresholdSubset é o recorte de um ano por limiar de percentil
type ThresholdSubset struct {
	Year       int                           `json:"ano"`
	Metric     Metric                        `json:"metrica"`
	Percentile float64                       `json:"percentil"`
	Side       ThresholdSide                 `json:"lado"`
	Threshold  Statistic                     `json:"limiar"`
	Records    []MunicipalityIndicatorRecord `json:"municipios"`
}

// ThresholdSide indica se o recorte pega valores abaixo ou acima do limiar
type ThresholdSide string

const (
	SideBelow ThresholdSide = "abaixo"
	SideAbove ThresholdSide = "acima"
)

// ParseSide valida o lado do recorte
func ParseSide(s string) (ThresholdSide, error) {
	switch ThresholdSide(s) {
	case SideBelow, "":
		return SideBelow, nil
	case SideAbove:
		return SideAbove, nil
	}
	return "", ErrInvalidSide
}

// CorrelationResult é o coeficiente de Pearson entre duas métricas em um ano
type CorrelationResult struct {
	Year    int       `json:"ano"`
	X       Metric    `json:"x"`
	Y       Metric    `json:"y"`
	Pairs   int       `json:"pares"`
	Pearson Statistic `json:"pearson"`
}
