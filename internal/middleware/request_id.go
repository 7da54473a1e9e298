package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o header lido e devolvido com o id da requisição
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey é a chave do id no contexto do gin
	RequestIDKey = "request_id"
)

// RequestID reaproveita o X-Request-ID recebido ou gera um novo uuid
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retorna o id da requisição atual, ou "" fora do middleware
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
