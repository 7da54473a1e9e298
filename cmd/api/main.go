package main

import (
	"log"

	_ "github.com/educacao-digital-ce/painel-indicadores/docs"
	"github.com/educacao-digital-ce/painel-indicadores/internal/api/routes"
	"github.com/educacao-digital-ce/painel-indicadores/internal/config"
	"github.com/educacao-digital-ce/painel-indicadores/internal/observability"
	"github.com/gin-gonic/gin"
)

// @title           Painel de Educação Digital API
// @version         1.0
// @description     Indicadores de inclusão digital, ENEM e IDEB por município, comparando o ano base com o ano alvo
// @termsOfService  http://swagger.io/terms/

// @contact.name   Educação Digital CE
// @contact.url    https://github.com/educacao-digital-ce/painel-indicadores

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	cfg := config.LoadConfig()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	r := routes.SetupRouter(cfg)

	log.Printf("Servidor iniciado na porta %s (dados em %s, %d vs %d)", cfg.ServerPort, cfg.DataDir, cfg.BaseYear, cfg.TargetYear)
	err := r.Run(":" + cfg.ServerPort)
	if err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
}
