package services

import (
	"time"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
)

// ComparisonView é a comparação de médias com o texto que a interpreta
type ComparisonView struct {
	Comparison models.MeanComparison `json:"comparativo"`
	Narrative  narrative.Block       `json:"narrativa"`
}

// MunicipalityTable é a junção por município de dois anos, ordenada por diferença
type MunicipalityTable struct {
	Metric   models.Metric          `json:"metrica"`
	BaseYear int                    `json:"ano_base"`
	Year     int                    `json:"ano_alvo"`
	Rows     []models.ComparisonRow `json:"municipios"`
}

// CorrelationView é a correlação de um ano com o texto que a interpreta
type CorrelationView struct {
	Result    models.CorrelationResult `json:"correlacao"`
	Narrative narrative.Block          `json:"narrativa"`
}

// SummaryView é a tabela resumo de um grupo de métricas
type SummaryView struct {
	Group    models.SummaryGroup `json:"grupo"`
	BaseYear int                 `json:"ano_base"`
	Year     int                 `json:"ano_alvo"`
	Rows     []models.SummaryRow `json:"linhas"`
}

// DashboardView reúne todas as seções da página do painel
type DashboardView struct {
	Estado      string              `json:"estado"`
	Metric      models.MetricInfo   `json:"metrica"`
	Options     []models.MetricInfo `json:"opcoes"`
	BaseYear    int                 `json:"ano_base"`
	TargetYear  int                 `json:"ano_alvo"`
	IDEBYear    int                 `json:"ano_ideb"`
	GeneratedAt time.Time           `json:"gerado_em"`

	Digital        ComparisonView    `json:"suporte_digital"`
	Municipalities MunicipalityTable `json:"municipios"`
	ENEM           ComparisonView    `json:"enem"`
	IDEB           ComparisonView    `json:"ideb"`
	Correlations   []CorrelationView `json:"correlacoes"`
	Summaries      []SummaryView     `json:"resumos"`
	Hypothesis     narrative.Block   `json:"hipotese_ia"`
}
