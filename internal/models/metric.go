package models

import "strings"

// Metric identifica uma coluna canônica das tabelas de indicadores
type Metric string

const (
	MetricInclusaoDigital Metric = "Taxa_Inclusao_Digital"
	MetricComputador      Metric = "Taxa_Computador"
	MetricInternet        Metric = "Taxa_Internet"

	MetricNotaMediaGeral Metric = "Nota_Media_Geral"
	MetricNotaRedacao    Metric = "Nota_Redacao"
	MetricNotaCH         Metric = "Nota_CH"
	MetricNotaLC         Metric = "Nota_LC"
	MetricNotaCN         Metric = "Nota_CN"
	MetricNotaMat        Metric = "Nota_Mat"
	MetricIDEB           Metric = "IDEB"

	MetricTotalAlunos Metric = "Total_Alunos"
)

// MetricKind determina como a métrica é agregada e desenhada
type MetricKind string

const (
	KindRate  MetricKind = "taxa"
	KindScore MetricKind = "nota"
	KindCount MetricKind = "contagem"
)

// MetricInfo descreve uma métrica para a camada de apresentação
type MetricInfo struct {
	Key   Metric     `json:"key"`
	Label string     `json:"label"`
	Short string     `json:"short"`
	Kind  MetricKind `json:"kind"`
}

var catalog = []MetricInfo{
	{Key: MetricInclusaoDigital, Label: "🌐 Taxa de Suporte Digital ao Estudo (PC + Net)", Short: "Taxa Inclusão Digital", Kind: KindRate},
	{Key: MetricComputador, Label: "💻 Posse de Computador", Short: "Taxa Computador", Kind: KindRate},
	{Key: MetricInternet, Label: "📡 Acesso à Internet", Short: "Taxa Internet", Kind: KindRate},
	{Key: MetricNotaMediaGeral, Label: "📝 Nota Média do ENEM", Short: "Nota Média", Kind: KindScore},
	{Key: MetricNotaRedacao, Label: "Nota de Redação", Short: "Nota Redação", Kind: KindScore},
	{Key: MetricNotaCH, Label: "Nota de Ciências Humanas", Short: "Nota CH", Kind: KindScore},
	{Key: MetricNotaLC, Label: "Nota de Linguagens e Códigos", Short: "Nota LC", Kind: KindScore},
	{Key: MetricNotaCN, Label: "Nota de Ciências da Natureza", Short: "Nota CN", Kind: KindScore},
	{Key: MetricNotaMat, Label: "Nota de Matemática", Short: "Nota Mat", Kind: KindScore},
	{Key: MetricIDEB, Label: "🏫 IDEB", Short: "IDEB", Kind: KindScore},
	{Key: MetricTotalAlunos, Label: "Total de Alunos", Short: "Total de Alunos", Kind: KindCount},
}

// SelectableMetrics são as três opções do seletor lateral, na ordem de exibição
var SelectableMetrics = []Metric{MetricInclusaoDigital, MetricComputador, MetricInternet}

// RateMetrics e ScoreMetrics agrupam as métricas da tabela resumo
var (
	RateMetrics  = []Metric{MetricInclusaoDigital, MetricComputador, MetricInternet, MetricTotalAlunos}
	ScoreMetrics = []Metric{MetricNotaMediaGeral, MetricNotaRedacao, MetricNotaCH, MetricNotaLC, MetricNotaCN, MetricNotaMat}
)

// DefaultMetric é a métrica exibida quando nenhuma é escolhida
const DefaultMetric = MetricInclusaoDigital

// Info retorna a descrição da métrica e se ela existe no catálogo
func (m Metric) Info() (MetricInfo, bool) {
	for _, info := range catalog {
		if info.Key == m {
			return info, true
		}
	}
	return MetricInfo{}, false
}

// Label retorna o rótulo de exibição, ou a própria chave se desconhecida
func (m Metric) Label() string {
	if info, ok := m.Info(); ok {
		return info.Label
	}
	return string(m)
}

// Kind retorna o tipo da métrica (taxa, nota ou contagem)
func (m Metric) Kind() MetricKind {
	if info, ok := m.Info(); ok {
		return info.Kind
	}
	return KindScore
}

// IsRate indica se a métrica é uma proporção em [0,1]
func (m Metric) IsRate() bool {
	return m.Kind() == KindRate
}

// IsSelectable indica se a métrica faz parte do seletor lateral
func (m Metric) IsSelectable() bool {
	for _, s := range SelectableMetrics {
		if s == m {
			return true
		}
	}
	return false
}

// Catalog retorna uma cópia do catálogo completo de métricas
func Catalog() []MetricInfo {
	out := make([]MetricInfo, len(catalog))
	copy(out, catalog)
	return out
}

// SelectorOptions retorna as opções do seletor com seus rótulos
func SelectorOptions() []MetricInfo {
	out := make([]MetricInfo, 0, len(SelectableMetrics))
	for _, m := range SelectableMetrics {
		info, _ := m.Info()
		out = append(out, info)
	}
	return out
}

// ParseMetric converte a chave recebida na requisição em uma métrica do catálogo.
// String vazia resulta na métrica padrão.
func ParseMetric(key string) (Metric, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultMetric, nil
	}
	m := Metric(key)
	if _, ok := m.Info(); !ok {
		return "", ErrUnknownMetric
	}
	return m, nil
}

// ParseSelectableMetric é como ParseMetric, mas aceita apenas as opções do seletor
func ParseSelectableMetric(key string) (Metric, error) {
	m, err := ParseMetric(key)
	if err != nil {
		return "", err
	}
	if !m.IsSelectable() {
		return "", ErrUnknownMetric
	}
	return m, nil
}
