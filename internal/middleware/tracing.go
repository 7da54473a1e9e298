package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SlowRequest é a duração a partir da qual a requisição é logada mesmo sem erro.
// Gráficos e planilhas são renderizados na hora e costumam ser as rotas mais lentas.
var SlowRequest = 2 * time.Second

// RequestTiming abre um span por requisição nomeado pela rota e loga falhas e requisições lentas
func RequestTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = "sem_rota"
		}

		ctx, span := otel.Tracer("http").Start(c.Request.Context(), c.Request.Method+" "+route)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", c.Request.URL.RequestURI()),
			attribute.String("http.client_ip", c.ClientIP()),
			attribute.String("http.request_id", GetRequestID(c)),
		)
		for _, param := range []string{"metrica", "ano_base", "ano_alvo", "ano"} {
			if v := c.Query(param); v != "" {
				span.SetAttributes(attribute.String("painel."+param, v))
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", elapsed.Milliseconds()),
			attribute.Int("http.response_size", c.Writer.Size()),
		)

		switch {
		case status >= 500:
			span.SetStatus(codes.Error, c.Errors.String())
			log.Printf("[%s] %s %s -> %d em %s: %s", GetRequestID(c), c.Request.Method, c.Request.URL.RequestURI(), status, elapsed, c.Errors.String())
		case status >= 400:
			span.SetStatus(codes.Error, "requisição inválida")
		default:
			span.SetStatus(codes.Ok, "")
			if elapsed >= SlowRequest {
				log.Printf("[%s] requisição lenta: %s %s em %s", GetRequestID(c), c.Request.Method, c.Request.URL.RequestURI(), elapsed)
			}
		}
	}
}
