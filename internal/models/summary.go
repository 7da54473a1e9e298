package models

// SummaryGroup seleciona o bloco de métricas da tabela resumo
type SummaryGroup string

const (
	GroupRates  SummaryGroup = "taxas"
	GroupScores SummaryGroup = "notas"
)

// ParseSummaryGroup valida o grupo recebido na requisição; vazio resulta em taxas
func ParseSummaryGroup(s string) (SummaryGroup, error) {
	switch SummaryGroup(s) {
	case GroupRates, "":
		return GroupRates, nil
	case GroupScores:
		return GroupScores, nil
	}
	return "", ErrUnknownGroup
}

// Metrics retorna as métricas do grupo
func (g SummaryGroup) Metrics() []Metric {
	if g == GroupScores {
		return ScoreMetrics
	}
	return RateMetrics
}
