package services

import (
	"fmt"
	"strings"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
)

// FormulaMarkdown explica como a taxa de suporte digital é calculada
const FormulaMarkdown = `O indicador mede a **proporção de estudantes que possuem acesso a um computador** ***E*** **acesso à internet** em casa, essencial para uma participação digital completa no contexto educativo. É calculado dividindo pelo **Total de Alunos**:

**Taxa de Suporte Digital ao Estudo = (Alunos com Computador ∩ Alunos com Internet) / Total de Alunos**

- **Alunos com Computador ∩ Alunos com Internet:** o número de alunos que responderam **sim** para **AMBOS** os requisitos. Representa a **Inclusão Plena**.
- **Total de Alunos:** o número total de estudantes por município (ou total, caso agreguemos para o estado).
`

// Report gera o relatório do painel em markdown
func Report(view *DashboardView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Panorama da Educação Digital no %s: %d vs %d\n\n", view.Estado, view.BaseYear, view.TargetYear)

	b.WriteString("## Métrica de Interesse: Taxa de Suporte Digital ao Estudo\n\n")
	b.WriteString(FormulaMarkdown)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Comparativo: %s\n\n", view.Metric.Label)
	writeComparison(&b, view.Digital)

	fmt.Fprintf(&b, "### Municípios por variação\n\n")
	writeMunicipalities(&b, view.Municipalities)

	b.WriteString("## Nota Média do ENEM\n\n")
	writeComparison(&b, view.ENEM)

	b.WriteString("## Correlação com a nota do ENEM\n\n")
	for _, corr := range view.Correlations {
		fmt.Fprintf(&b, "- %d: r = %s (%d pares)\n", corr.Result.Year, utils.FormatarEstatistica(corr.Result.Pearson, 2), corr.Result.Pairs)
	}
	b.WriteString("\n")
	for _, corr := range view.Correlations {
		b.WriteString(corr.Narrative.Markdown)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## IDEB: %d vs %d\n\n", view.IDEB.Comparison.BaseYear, view.IDEB.Comparison.Year)
	writeComparison(&b, view.IDEB)

	writeBlock(&b, "##", view.Hypothesis)

	b.WriteString("## Tabela Resumo\n\n")
	for _, summary := range view.Summaries {
		writeSummary(&b, summary)
	}

	return b.String()
}

func writeComparison(b *strings.Builder, v ComparisonView) {
	c := v.Comparison
	change := utils.FormatarVariacao(c.Variation, 1, "%")
	if c.Metric.IsRate() {
		change = utils.FormatarVariacao(c.Points, 1, " p.p.")
	}

	fmt.Fprintf(b, "| Ano | Média Estadual |\n|---|---|\n")
	fmt.Fprintf(b, "| %d | %s |\n", c.BaseYear, utils.FormatarEstatistica(c.Mean1, 2))
	fmt.Fprintf(b, "| %d | %s (%s) |\n\n", c.Year, utils.FormatarEstatistica(c.Mean2, 2), change)

	writeBlock(b, "###", v.Narrative)
}

func writeBlock(b *strings.Builder, level string, block narrative.Block) {
	fmt.Fprintf(b, "%s %s %s\n\n%s\n\n", level, block.Icon, block.Title, block.Markdown)
}

func writeMunicipalities(b *strings.Builder, t MunicipalityTable) {
	unit := "Variação (%)"
	if t.Metric.IsRate() {
		unit = "Variação (p.p.)"
	}
	fmt.Fprintf(b, "| Município | %d | %d | %s | Alunos %d | Alunos %d |\n|---|---|---|---|---|---|\n",
		t.BaseYear, t.Year, unit, t.BaseYear, t.Year)
	for _, r := range t.Rows {
		change := r.Variation
		if t.Metric.IsRate() && r.Difference.Defined {
			change = models.DefinedStat(r.Difference.Value * 100)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			r.Municipio,
			utils.FormatarEstatistica(r.Value1, 4),
			utils.FormatarEstatistica(r.Value2, 4),
			utils.FormatarVariacao(change, 2, ""),
			utils.FormatarEstatistica(r.Students1, 0),
			utils.FormatarEstatistica(r.Students2, 0),
		)
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, v SummaryView) {
	fmt.Fprintf(b, "| Indicador | %d | %d | Diferença | Variação (%%) |\n|---|---|---|---|---|\n", v.BaseYear, v.Year)
	for _, r := range v.Rows {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			r.Indicator,
			utils.FormatarEstatistica(r.Value1, 2),
			utils.FormatarEstatistica(r.Value2, 2),
			utils.FormatarVariacao(r.Difference, 2, ""),
			utils.FormatarVariacao(r.Variation, 2, "%"),
		)
	}
	b.WriteString("\n")
}
