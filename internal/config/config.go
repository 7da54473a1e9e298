// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: Modo do gin (debug, release, test)
//   - ADMIN_TOKEN: Bearer exigido em POST /api/v1/cache/reset (vazio: sem autenticação)
//
// ## Bases de dados
//   - DATA_DIR: Diretório dos CSVs de indicadores (default: data)
//   - DATASET_2019_FILE: CSV de 2019, relativo a DATA_DIR ou absoluto (default do mapeamento: indicadores19.csv)
//   - DATASET_2023_FILE: CSV de 2023 (default do mapeamento: indicadores23.csv)
//   - DATASET_2024_FILE: CSV de 2024 (default do mapeamento: indicadores24.csv)
//   - COLUMN_MAPPING_FILE: YAML com o mapeamento de colunas por ano (default: mapeamento embutido)
//
// ## Painel
//   - BASE_YEAR: Ano base das comparações (default: 2019)
//   - TARGET_YEAR: Ano alvo das comparações (default: 2024)
//   - IDEB_TARGET_YEAR: Ano alvo da comparação do IDEB (default: 2023)
//   - HISTOGRAM_BINS: Número de classes dos histogramas (default: 20)
//   - STATE_NAME: Nome do estado citado nos textos (default: Ceará)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita o exportador OTLP (default: false)
//   - TRACING_ENDPOINT: Endpoint gRPC do coletor (default: localhost:4317)
//   - TRACING_SAMPLE_RATIO: Fração de traces amostrados na raiz (default: 1.0)
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// variáveis que sobrescrevem o arquivo de cada ano do mapeamento
var datasetFileEnv = map[int]string{
	2019: "DATASET_2019_FILE",
	2023: "DATASET_2023_FILE",
	2024: "DATASET_2024_FILE",
}

type Config struct {
	ServerPort string `validate:"required,numeric"`
	GinMode    string `validate:"omitempty,oneof=debug release test"`
	AdminToken string

	// Bases de dados
	DataDir           string `validate:"required"`
	ColumnMappingFile string
	Mappings          *dataset.MappingConfig `validate:"required"`

	// Painel
	BaseYear       int    `validate:"gt=0,nefield=TargetYear"`
	TargetYear     int    `validate:"gt=0"`
	IDEBTargetYear int    `validate:"gt=0"`
	HistogramBins  int    `validate:"min=1,max=200"`
	StateName      string `validate:"required"`

	// Tracing configuration
	TracingEnabled     bool
	TracingEndpoint    string
	TracingSampleRatio float64 `validate:"gte=0,lte=1"`
}

// LoadConfig lê a configuração do ambiente (e do .env, se existir) e encerra o processo se for inválida
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}
	return cfg
}

// Load lê e valida a configuração a partir das variáveis de ambiente
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", ""),
		AdminToken: getEnv("ADMIN_TOKEN", ""),

		DataDir:           getEnv("DATA_DIR", "data"),
		ColumnMappingFile: getEnv("COLUMN_MAPPING_FILE", ""),

		BaseYear:       getEnvInt("BASE_YEAR", 2019),
		TargetYear:     getEnvInt("TARGET_YEAR", 2024),
		IDEBTargetYear: getEnvInt("IDEB_TARGET_YEAR", 2023),
		HistogramBins:  getEnvInt("HISTOGRAM_BINS", 20),
		StateName:      getEnv("STATE_NAME", "Ceará"),

		// Tracing configuration
		TracingEnabled:     getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint:    getEnv("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
	}

	mappings, err := dataset.LoadMappings(cfg.ColumnMappingFile)
	if err != nil {
		return nil, err
	}
	for year, key := range datasetFileEnv {
		file := getEnv(key, "")
		if file == "" {
			continue
		}
		if !mappings.OverrideFile(year, file) {
			log.Printf("Aviso: %s definido, mas o mapeamento não tem o ano %d", key, year)
		}
	}
	cfg.Mappings = mappings

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	for _, year := range []int{cfg.BaseYear, cfg.TargetYear, cfg.IDEBTargetYear} {
		if _, ok := mappings.ForYear(year); !ok {
			return nil, fmt.Errorf("ano %d sem mapeamento de colunas", year)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
