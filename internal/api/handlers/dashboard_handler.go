package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/services"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	dashboardTemplate = "dashboard.html"
	errorTemplate     = "erro.html"
)

var templateFuncs = template.FuncMap{
	"estat":    utils.FormatarEstatistica,
	"variacao": utils.FormatarVariacao,
	// pontos converte a diferença de uma taxa em pontos percentuais
	"pontos": func(s models.Statistic) models.Statistic {
		if !s.Defined {
			return s
		}
		return models.DefinedStat(s.Value * 100)
	},
	// o HTML das narrativas vem dos modelos embutidos, não do usuário
	"seguro": func(s string) template.HTML {
		return template.HTML(s)
	},
	"markdown": func(s string) template.HTML {
		return template.HTML(utils.MarkdownToHTML(s))
	},
}

// LoadTemplates carrega as páginas HTML embutidas no binário
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// DashboardHandler renderiza a página do painel
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler cria o handler da página do painel
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type dashboardPage struct {
	View    *services.DashboardView
	Formula string
}

type errorPage struct {
	Titulo   string
	Mensagem string
	Detalhe  string
}

// Page godoc
// @Summary Página do painel
// @Description Painel completo em HTML para a métrica do seletor. Se alguma base estiver ausente, nenhuma seção é exibida.
// @Tags painel
// @Produce html
// @Param metrica query string false "Métrica do seletor" Enums(Taxa_Inclusao_Digital, Taxa_Computador, Taxa_Internet) default(Taxa_Inclusao_Digital)
// @Success 200 {string} string "HTML"
// @Failure 400 {string} string "HTML"
// @Failure 500 {string} string "HTML"
// @Router / [get]
func (h *DashboardHandler) Page(c *gin.Context) {
	metric, err := models.ParseSelectableMetric(c.Query("metrica"))
	if err != nil {
		c.HTML(http.StatusBadRequest, errorTemplate, errorPage{
			Titulo:   "Métrica inválida",
			Mensagem: "Escolha uma das opções do seletor.",
			Detalhe:  err.Error(),
		})
		return
	}

	view, err := h.dashboard.Dashboard(c.Request.Context(), metric)
	if err != nil {
		_ = c.Error(err)
		page := errorPage{
			Titulo:   "Erro ao montar o painel",
			Mensagem: "Não foi possível calcular os indicadores.",
			Detalhe:  err.Error(),
		}
		if models.IsDataError(err) {
			page.Titulo = "Base de dados indisponível"
			page.Mensagem = "Um dos arquivos de indicadores não pôde ser carregado. Verifique os arquivos em DATA_DIR."
		}
		c.HTML(statusFor(err), errorTemplate, page)
		return
	}

	c.HTML(http.StatusOK, dashboardTemplate, dashboardPage{
		View:    view,
		Formula: services.FormulaMarkdown,
	})
}
