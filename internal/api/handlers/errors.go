package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/educacao-digital-ce/painel-indicadores/internal/charts"
	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/gin-gonic/gin"
)

// erros de requisição: parâmetro inválido vindo do cliente
var badRequestErrors = []error{
	models.ErrUnknownMetric,
	models.ErrUnknownYear,
	models.ErrInvalidPercentile,
	models.ErrInvalidSide,
	models.ErrUnknownGroup,
	models.ErrUnknownChart,
	charts.ErrUnsupportedFormat,
}

// statusFor mapeia o erro do serviço para o status HTTP
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError escreve {"error": ...} com o status do erro
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Erro em %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	_ = c.Error(err)

	body := gin.H{"error": err.Error()}
	if models.IsDataError(err) {
		body["details"] = "Verifique os arquivos de indicadores em DATA_DIR"
	}
	c.JSON(status, body)
}

// badQuery responde 400 para falhas de bind dos parâmetros
func badQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Parâmetros inválidos",
		"details": err.Error(),
	})
}
