package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Colunas canônicas após a renomeação
const (
	ColMunicipio            = "Municipio"
	ColTotalAlunos          = "Total_Alunos"
	ColTotalComputador      = "Total_Computador"
	ColTotalInternet        = "Total_Internet"
	ColTotalInclusaoDigital = "Total_Inclusao_Digital"
	ColTaxaComputador       = "Taxa_Computador"
	ColTaxaInternet         = "Taxa_Internet"
	ColTaxaInclusaoDigital  = "Taxa_Inclusao_Digital"
	ColNotaMediaGeral       = "Nota_Media_Geral"
	ColNotaRedacao          = "Nota_Redacao"
	ColNotaCH               = "Nota_CH"
	ColNotaMat              = "Nota_Mat"
	ColNotaCN               = "Nota_CN"
	ColNotaLC               = "Nota_LC"
	ColIDEB                 = "IDEB"
)

// CanonicalColumns lista as colunas numéricas conhecidas pelo loader
var CanonicalColumns = []string{
	ColTotalAlunos, ColTotalComputador, ColTotalInternet, ColTotalInclusaoDigital,
	ColTaxaComputador, ColTaxaInternet, ColTaxaInclusaoDigital,
	ColNotaMediaGeral, ColNotaRedacao, ColNotaCH, ColNotaMat, ColNotaCN, ColNotaLC,
	ColIDEB,
}

//go:embed mappings.yaml
var defaultMappings []byte

// ColumnMapping descreve como normalizar o CSV de um ano
type ColumnMapping struct {
	Year         int               `yaml:"year" validate:"required,gte=1990,lte=2100"`
	File         string            `yaml:"file" validate:"required"`
	Municipality []string          `yaml:"municipality" validate:"required,min=1,dive,required"`
	Rename       map[string]string `yaml:"rename" validate:"dive,keys,required,endkeys,required"`
	Required     []string          `yaml:"required" validate:"dive,required"`
}

// MappingConfig é o documento YAML com um mapeamento por ano
type MappingConfig struct {
	Datasets []ColumnMapping `yaml:"datasets" validate:"required,min=1,dive"`
}

// DefaultMappings retorna o mapeamento embutido no binário
func DefaultMappings() (*MappingConfig, error) {
	return ParseMappings(defaultMappings)
}

// LoadMappings lê o mapeamento de um arquivo; caminho vazio usa o embutido
func LoadMappings(path string) (*MappingConfig, error) {
	if path == "" {
		return DefaultMappings()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler mapeamento de colunas %s: %w", path, err)
	}
	return ParseMappings(data)
}

// ParseMappings decodifica e valida um documento de mapeamento
func ParseMappings(data []byte) (*MappingConfig, error) {
	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("erro ao decodificar mapeamento de colunas: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checa a estrutura, anos repetidos e colunas obrigatórias desconhecidas
func (c *MappingConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("mapeamento de colunas inválido: %w", err)
	}

	known := make(map[string]bool, len(CanonicalColumns))
	for _, col := range CanonicalColumns {
		known[col] = true
	}

	seen := make(map[int]bool)
	for _, m := range c.Datasets {
		if seen[m.Year] {
			return fmt.Errorf("mapeamento de colunas inválido: ano %d repetido", m.Year)
		}
		seen[m.Year] = true

		for _, col := range m.Required {
			if !known[col] {
				return fmt.Errorf("mapeamento de colunas inválido: coluna obrigatória desconhecida %q (ano %d)", col, m.Year)
			}
		}
		for src, dst := range m.Rename {
			if dst != ColMunicipio && !known[dst] {
				return fmt.Errorf("mapeamento de colunas inválido: %q renomeada para coluna desconhecida %q (ano %d)", src, dst, m.Year)
			}
		}
	}
	return nil
}

// ForYear retorna o mapeamento de um ano
func (c *MappingConfig) ForYear(year int) (ColumnMapping, bool) {
	for _, m := range c.Datasets {
		if m.Year == year {
			return m, true
		}
	}
	return ColumnMapping{}, false
}

// Years retorna os anos configurados em ordem crescente
func (c *MappingConfig) Years() []int {
	years := make([]int, 0, len(c.Datasets))
	for _, m := range c.Datasets {
		years = append(years, m.Year)
	}
	sort.Ints(years)
	return years
}

// OverrideFile troca o arquivo de um ano já configurado
func (c *MappingConfig) OverrideFile(year int, file string) bool {
	for i := range c.Datasets {
		if c.Datasets[i].Year == year {
			c.Datasets[i].File = file
			return true
		}
	}
	return false
}
