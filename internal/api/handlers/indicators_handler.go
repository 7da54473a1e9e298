package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/educacao-digital-ce/painel-indicadores/internal/charts"
	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/services"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// IndicatorsHandler expõe as comparações do painel como JSON, imagens e planilha
type IndicatorsHandler struct {
	dashboard *services.DashboardService
	export    *services.ExportService
	cache     *dataset.Cache
}

// NewIndicatorsHandler cria o handler da API de indicadores
func NewIndicatorsHandler(dashboard *services.DashboardService, export *services.ExportService, cache *dataset.Cache) *IndicatorsHandler {
	return &IndicatorsHandler{
		dashboard: dashboard,
		export:    export,
		cache:     cache,
	}
}

// PeriodQuery são os parâmetros comuns das comparações entre dois anos
type PeriodQuery struct {
	Metrica string `form:"metrica"`
	AnoBase int    `form:"ano_base" binding:"omitempty,gt=0"`
	AnoAlvo int    `form:"ano_alvo" binding:"omitempty,gt=0"`
}

// PercentileQuery são os parâmetros do recorte por percentil
type PercentileQuery struct {
	Ano     int      `form:"ano" binding:"omitempty,gt=0"`
	Metrica string   `form:"metrica"`
	P       *float64 `form:"p" binding:"required"`
	Lado    string   `form:"lado"`
}

// CorrelationQuery são os parâmetros da correlação
type CorrelationQuery struct {
	Ano int    `form:"ano" binding:"omitempty,gt=0"`
	X   string `form:"x"`
	Y   string `form:"y"`
}

// ChartQuery são os parâmetros dos gráficos
type ChartQuery struct {
	PeriodQuery
	Y       string `form:"y"`
	Ano     int    `form:"ano" binding:"omitempty,gt=0"`
	Grupo   string `form:"grupo"`
	Formato string `form:"formato"`
}

// MetricsResponse é o catálogo de métricas
type MetricsResponse struct {
	Metricas []models.MetricInfo `json:"metricas"`
	Seletor  []models.MetricInfo `json:"seletor"`
	AnoBase  int                 `json:"ano_base"`
	AnoAlvo  int                 `json:"ano_alvo"`
	AnoIDEB  int                 `json:"ano_ideb"`
}

// Metrics godoc
// @Summary Catálogo de métricas
// @Description Lista todas as métricas conhecidas e as três opções do seletor do painel
// @Tags indicadores
// @Produce json
// @Success 200 {object} MetricsResponse
// @Router /api/v1/metricas [get]
func (h *IndicatorsHandler) Metrics(c *gin.Context) {
	opts := h.dashboard.Options()
	c.JSON(http.StatusOK, MetricsResponse{
		Metricas: models.Catalog(),
		Seletor:  models.SelectorOptions(),
		AnoBase:  opts.BaseYear,
		AnoAlvo:  opts.TargetYear,
		AnoIDEB:  opts.IDEBYear,
	})
}

// Compare godoc
// @Summary Compara a média estadual de uma métrica entre dois anos
// @Description Retorna médias, delta, variação percentual (e pontos percentuais para taxas) com o texto interpretativo
// @Tags indicadores
// @Produce json
// @Param metrica query string false "Métrica (default: Taxa_Inclusao_Digital)"
// @Param ano_base query int false "Ano base (default: BASE_YEAR)"
// @Param ano_alvo query int false "Ano alvo (default: TARGET_YEAR)"
// @Success 200 {object} services.ComparisonView
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/comparativo [get]
func (h *IndicatorsHandler) Compare(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	metric, err := models.ParseMetric(q.Metrica)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.dashboard.Compare(c.Request.Context(), metric, q.AnoBase, q.AnoAlvo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Municipalities godoc
// @Summary Tabela por município
// @Description Junção dos municípios presentes nos dois anos, ordenada pela diferença decrescente
// @Tags indicadores
// @Produce json
// @Param metrica query string false "Métrica (default: Taxa_Inclusao_Digital)"
// @Param ano_base query int false "Ano base"
// @Param ano_alvo query int false "Ano alvo"
// @Success 200 {object} services.MunicipalityTable
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/comparativo/municipios [get]
func (h *IndicatorsHandler) Municipalities(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	metric, err := models.ParseMetric(q.Metrica)
	if err != nil {
		respondError(c, err)
		return
	}

	table, err := h.dashboard.Municipalities(c.Request.Context(), metric, q.AnoBase, q.AnoAlvo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// Percentiles godoc
// @Summary Recorte por percentil
// @Description Municípios de um ano com valor abaixo (ou acima) do percentil p da métrica
// @Tags indicadores
// @Produce json
// @Param ano query int false "Ano (default: TARGET_YEAR)"
// @Param metrica query string false "Métrica"
// @Param p query number true "Percentil entre 0 e 100"
// @Param lado query string false "Lado do recorte" Enums(abaixo, acima) default(abaixo)
// @Success 200 {object} models.ThresholdSubset
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/percentis [get]
func (h *IndicatorsHandler) Percentiles(c *gin.Context) {
	var q PercentileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	metric, err := models.ParseMetric(q.Metrica)
	if err != nil {
		respondError(c, err)
		return
	}
	side, err := models.ParseSide(q.Lado)
	if err != nil {
		respondError(c, err)
		return
	}

	subset, err := h.dashboard.Percentiles(c.Request.Context(), q.Ano, metric, *q.P, side)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subset)
}

// Correlation godoc
// @Summary Correlação de Pearson entre duas métricas
// @Tags indicadores
// @Produce json
// @Param ano query int false "Ano (default: TARGET_YEAR)"
// @Param x query string false "Métrica X (default: Taxa_Inclusao_Digital)"
// @Param y query string false "Métrica Y (default: Nota_Media_Geral)"
// @Success 200 {object} services.CorrelationView
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/correlacao [get]
func (h *IndicatorsHandler) Correlation(c *gin.Context) {
	var q CorrelationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	x, err := models.ParseMetric(q.X)
	if err != nil {
		respondError(c, err)
		return
	}
	y := models.MetricNotaMediaGeral
	if q.Y != "" {
		if y, err = models.ParseMetric(q.Y); err != nil {
			respondError(c, err)
			return
		}
	}

	view, err := h.dashboard.Correlation(c.Request.Context(), q.Ano, x, y)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Summary godoc
// @Summary Tabela resumo executiva
// @Description Médias dos dois anos por indicador; no grupo de taxas o Total de Alunos é somado
// @Tags indicadores
// @Produce json
// @Param ano_base query int false "Ano base"
// @Param ano_alvo query int false "Ano alvo"
// @Param grupo query string false "Grupo de métricas" Enums(taxas, notas) default(taxas)
// @Success 200 {object} services.SummaryView
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/resumo [get]
func (h *IndicatorsHandler) Summary(c *gin.Context) {
	var q ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	group, err := models.ParseSummaryGroup(q.Grupo)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.dashboard.Summary(c.Request.Context(), q.AnoBase, q.AnoAlvo, group)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Chart godoc
// @Summary Gráfico do painel
// @Description Histograma, boxplot ou dispersão da métrica nos dois anos, ou barras da tabela resumo
// @Tags graficos
// @Produce png
// @Produce image/svg+xml
// @Param tipo path string true "Tipo do gráfico" Enums(histograma, boxplot, dispersao, resumo)
// @Param metrica query string false "Métrica"
// @Param y query string false "Eixo Y da dispersão (default: Nota_Media_Geral)"
// @Param ano_base query int false "Ano base"
// @Param ano_alvo query int false "Ano alvo"
// @Param ano query int false "Restringe histograma e boxplot a um ano"
// @Param grupo query string false "Grupo do resumo" Enums(taxas, notas) default(taxas)
// @Param formato query string false "Formato da imagem" Enums(png, svg) default(png)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/graficos/{tipo} [get]
func (h *IndicatorsHandler) Chart(c *gin.Context) {
	var q ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}

	req, err := chartRequest(c.Param("tipo"), q)
	if err != nil {
		respondError(c, err)
		return
	}
	format := strings.ToLower(c.DefaultQuery("formato", charts.FormatPNG))

	spec, err := h.dashboard.Chart(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// renderiza antes de escrever para poder responder erro com JSON
	var buf bytes.Buffer
	if err := charts.Render(spec, &buf, format); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, charts.ContentType(format), buf.Bytes())
}

func chartRequest(tipo string, q ChartQuery) (services.ChartRequest, error) {
	kind, err := charts.ParseKind(tipo)
	if err != nil {
		return services.ChartRequest{}, err
	}
	req := services.ChartRequest{
		Kind:     kind,
		BaseYear: q.AnoBase,
		Year:     q.AnoAlvo,
		Only:     q.Ano,
	}
	if req.Metric, err = models.ParseMetric(q.Metrica); err != nil {
		return req, err
	}
	if q.Y != "" {
		if req.Y, err = models.ParseMetric(q.Y); err != nil {
			return req, err
		}
	}
	if req.Group, err = models.ParseSummaryGroup(q.Grupo); err != nil {
		return req, err
	}
	return req, nil
}

// Export godoc
// @Summary Exporta o painel em XLSX
// @Description Planilha com as abas Resumo, Municipios e Correlacao
// @Tags exportacao
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param metrica query string false "Métrica"
// @Param ano_base query int false "Ano base"
// @Param ano_alvo query int false "Ano alvo"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/exportar.xlsx [get]
func (h *IndicatorsHandler) Export(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badQuery(c, err)
		return
	}
	metric, err := models.ParseMetric(q.Metrica)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.export.WriteWorkbook(c.Request.Context(), &buf, metric, q.AnoBase, q.AnoAlvo); err != nil {
		respondError(c, err)
		return
	}

	opts := h.dashboard.Options()
	base, target := q.AnoBase, q.AnoAlvo
	if base == 0 {
		base = opts.BaseYear
	}
	if target == 0 {
		target = opts.TargetYear
	}
	name := utils.GenerateSlug("painel", string(metric), fmt.Sprint(base), fmt.Sprint(target)) + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ResetCache godoc
// @Summary Descarta as bases em memória
// @Description A próxima requisição relê os CSVs do disco
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/v1/cache/reset [post]
func (h *IndicatorsHandler) ResetCache(c *gin.Context) {
	before := h.cache.Stats()
	h.cache.Reset()
	c.JSON(http.StatusOK, gin.H{
		"message":     "Cache de bases descartado",
		"descartadas": before,
	})
}
