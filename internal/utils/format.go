package utils

import (
	"fmt"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NaoDisponivel é exibido no lugar de estatísticas indefinidas
const NaoDisponivel = "N/A"

// FormatarDecimal formata um número com vírgula decimal (pt-BR)
func FormatarDecimal(v float64, casas int) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf(fmt.Sprintf("%%.%df", casas), v)
}

// FormatarEstatistica formata uma estatística ou retorna "N/A"
func FormatarEstatistica(s models.Statistic, casas int) string {
	if !s.Defined {
		return NaoDisponivel
	}
	return FormatarDecimal(s.Value, casas)
}

// FormatarVariacao formata uma variação com sinal e sufixo ("+4,17%", "-1,2 p.p.")
func FormatarVariacao(s models.Statistic, casas int, sufixo string) string {
	if !s.Defined {
		return NaoDisponivel
	}
	sinal := ""
	if s.Value > 0 {
		sinal = "+"
	}
	return sinal + FormatarDecimal(s.Value, casas) + sufixo
}
