package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/gin-gonic/gin"
)

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	loader *dataset.Loader
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(loader *dataset.Loader) *HealthHandler {
	return &HealthHandler{
		loader: loader,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem dos arquivos de dados)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se os CSVs de todos os anos configurados existem
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if failed := h.checkFiles(response.Checks); failed > 0 {
		response.Status = "not_ready"
		response.Error = fmt.Sprintf("%d base(s) de indicadores ausente(s)", failed)
	}

	statusCode := http.StatusOK
	if response.Status == "not_ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Arquivos de dados e quantidade de bases em memória (para monitoramento externo)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if failed := h.checkFiles(response.Checks); failed > 0 {
		response.Status = "unhealthy"
		response.Error = fmt.Sprintf("%d base(s) de indicadores ausente(s)", failed)
	}
	response.Checks["cache"] = fmt.Sprintf("%d base(s) em memória", h.loader.Cache().Stats())

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// checkFiles preenche checks com o estado do arquivo de cada ano e retorna quantos falharam
func (h *HealthHandler) checkFiles(checks map[string]string) int {
	failed := 0
	for year, err := range h.loader.Check() {
		key := fmt.Sprintf("dataset_%d", year)
		if err != nil {
			checks[key] = "failed: " + err.Error()
			failed++
			continue
		}
		checks[key] = "ok"
	}
	return failed
}
