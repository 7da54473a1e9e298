// Package dataset carrega as tabelas anuais de indicadores por município.
//
// Cada ano tem um CSV com cabeçalho e um ColumnMapping que unifica os nomes
// de coluna de origem (por exemplo NO_MUNICIPIO_PROVA e
// NO_MUNICIPIO_RESIDENCIA viram Municipio). Depois da renomeação as colunas
// obrigatórias do mapeamento são conferidas; qualquer falha aborta a carga.
//
// As bases carregadas são memorizadas por caminho no Cache do Loader.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// marca de ordem de bytes gravada por planilhas ao exportar UTF-8
var utf8BOM = []byte("\ufeff")

// tokens tratados como valor ausente
var missingTokens = map[string]bool{
	"":      true,
	"nan":   true,
	"na":    true,
	"n/a":   true,
	"null":  true,
	"<nil>": true,
}

// taxas derivadas de contagens quando o CSV não traz a coluna pronta
var derivedRates = []struct {
	rate  string
	count string
}{
	{ColTaxaComputador, ColTotalComputador},
	{ColTaxaInternet, ColTotalInternet},
	{ColTaxaInclusaoDigital, ColTotalInclusaoDigital},
}

// Loader lê as bases anuais a partir de um diretório de dados
type Loader struct {
	dataDir  string
	mappings *MappingConfig
	cache    *Cache
}

// NewLoader cria um loader. O cache pertence ao chamador e pode ser compartilhado.
func NewLoader(dataDir string, mappings *MappingConfig, cache *Cache) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{
		dataDir:  dataDir,
		mappings: mappings,
		cache:    cache,
	}
}

// Cache retorna o cache de bases do loader
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Years retorna os anos com mapeamento configurado
func (l *Loader) Years() []int {
	return l.mappings.Years()
}

// Path retorna o caminho do CSV de um ano
func (l *Loader) Path(year int) (string, error) {
	m, ok := l.mappings.ForYear(year)
	if !ok {
		return "", fmt.Errorf("%w: %d", models.ErrUnknownYear, year)
	}
	if filepath.IsAbs(m.File) {
		return m.File, nil
	}
	return filepath.Join(l.dataDir, m.File), nil
}

// Load carrega (ou busca no cache) a base de um ano
func (l *Loader) Load(ctx context.Context, year int) (*models.YearlyDataset, error) {
	m, ok := l.mappings.ForYear(year)
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownYear, year)
	}
	path, err := l.Path(year)
	if err != nil {
		return nil, err
	}
	return l.LoadPath(ctx, path, m)
}

// LoadPath carrega o CSV do caminho com o mapeamento informado, memorizando por caminho
func (l *Loader) LoadPath(ctx context.Context, path string, mapping ColumnMapping) (*models.YearlyDataset, error) {
	return l.cache.GetOrLoad(path, func() (*models.YearlyDataset, error) {
		_, span := otel.Tracer("dataset").Start(ctx, "dataset.load")
		defer span.End()
		span.SetAttributes(
			attribute.String("dataset.path", path),
			attribute.Int("dataset.year", mapping.Year),
		)

		ds, err := ReadFile(path, mapping)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "falha ao carregar base")
			return nil, err
		}

		span.SetAttributes(attribute.Int("dataset.rows", ds.Len()))
		log.Printf("Base %d carregada de %s: %d municípios", ds.Year, path, ds.Len())
		return ds, nil
	})
}

// Check verifica se os arquivos de todos os anos existem, sem carregá-los
func (l *Loader) Check() map[int]error {
	result := make(map[int]error)
	for _, year := range l.Years() {
		path, err := l.Path(year)
		if err != nil {
			result[year] = err
			continue
		}
		if _, err := os.Stat(path); err != nil {
			result[year] = &models.MissingFileError{Path: path}
			continue
		}
		result[year] = nil
	}
	return result
}

// ReadFile abre e lê um CSV de indicadores
func ReadFile(path string, mapping ColumnMapping) (*models.YearlyDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("erro ao abrir %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, path, mapping)
}

// Read lê um CSV de indicadores já aberto. source identifica a origem nas mensagens de erro.
func Read(r io.Reader, source string, mapping ColumnMapping) (*models.YearlyDataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV %s: %w", source, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// cabeçalho sem linhas é uma base vazia, não um arquivo inválido
		header, ok := headerOnly(data)
		if !ok {
			return nil, fmt.Errorf("erro ao ler CSV %s: %w", source, df.Err)
		}
		df = emptyFrame(header)
		if df.Err != nil {
			return nil, fmt.Errorf("erro ao ler CSV %s: %w", source, df.Err)
		}
	}

	df, err = renameColumns(df, mapping)
	if err != nil {
		return nil, fmt.Errorf("erro ao renomear colunas de %s: %w", source, err)
	}

	columns := make(map[string][]string)
	for _, name := range df.Names() {
		columns[name] = df.Col(name).Records()
	}

	municipios, ok := columns[ColMunicipio]
	if !ok {
		return nil, &models.SchemaMismatchError{Path: source, Missing: []string{ColMunicipio}}
	}

	values := make(map[string][]float64)
	for _, col := range CanonicalColumns {
		raw, ok := columns[col]
		if !ok {
			continue
		}
		parsed, err := parseColumn(raw)
		if err != nil {
			return nil, fmt.Errorf("coluna %s de %s: %w", col, source, err)
		}
		values[col] = parsed
	}

	deriveRates(values, df.Nrow())

	var missing []string
	for _, col := range mapping.Required {
		if _, ok := values[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &models.SchemaMismatchError{Path: source, Missing: missing}
	}

	ds := &models.YearlyDataset{
		Year:    mapping.Year,
		Source:  source,
		Records: make([]models.MunicipalityIndicatorRecord, 0, df.Nrow()),
	}

	seen := make(map[string]bool, df.Nrow())
	for i, raw := range municipios {
		nome := utils.NormalizarMunicipio(raw)
		if missingTokens[strings.ToLower(nome)] {
			log.Printf("Aviso: linha %d de %s sem município, ignorada", i+2, source)
			continue
		}
		if seen[nome] {
			log.Printf("Aviso: município %q repetido em %s (linha %d), mantida a primeira ocorrência", nome, source, i+2)
			continue
		}
		seen[nome] = true

		rec := models.NewRecord(nome)
		for col, vs := range values {
			setValue(&rec, col, vs[i])
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// headerOnly retorna o cabeçalho quando o CSV tem exatamente uma linha
func headerOnly(data []byte) ([]string, bool) {
	cr := csv.NewReader(bytes.NewReader(data))
	header, err := cr.Read()
	if err != nil || len(header) == 0 {
		return nil, false
	}
	if _, err := cr.Read(); err != io.EOF {
		return nil, false
	}
	return header, true
}

// emptyFrame monta um DataFrame de zero linhas com as colunas do cabeçalho
func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// renameColumns aplica o mapeamento: primeira coluna de município encontrada e renomeações simples
func renameColumns(df dataframe.DataFrame, mapping ColumnMapping) (dataframe.DataFrame, error) {
	present := make(map[string]bool)
	for _, name := range df.Names() {
		present[name] = true
	}

	if !present[ColMunicipio] {
		for _, alias := range mapping.Municipality {
			if present[alias] {
				df = df.Rename(ColMunicipio, alias)
				if df.Err != nil {
					return df, df.Err
				}
				present[ColMunicipio] = true
				delete(present, alias)
				break
			}
		}
	}

	for src, dst := range mapping.Rename {
		if !present[src] || src == dst {
			continue
		}
		if present[dst] {
			log.Printf("Aviso: coluna %s já existe, %s mantida sem renomear", dst, src)
			continue
		}
		df = df.Rename(dst, src)
		if df.Err != nil {
			return df, df.Err
		}
		present[dst] = true
		delete(present, src)
	}

	return df, nil
}

// parseColumn converte os valores textuais; ausentes viram NaN
func parseColumn(raw []string) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if missingTokens[strings.ToLower(s)] {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("valor inválido %q na linha %d", s, i+2)
		}
		out[i] = v
	}
	return out, nil
}

// deriveRates calcula Taxa_X = Total_X / Total_Alunos para as taxas ausentes
func deriveRates(values map[string][]float64, rows int) {
	students, ok := values[ColTotalAlunos]
	if !ok {
		return
	}
	for _, d := range derivedRates {
		if _, exists := values[d.rate]; exists {
			continue
		}
		counts, ok := values[d.count]
		if !ok {
			continue
		}
		rates := make([]float64, rows)
		for i := range rates {
			if students[i] == 0 || math.IsNaN(students[i]) {
				rates[i] = math.NaN()
				continue
			}
			rates[i] = counts[i] / students[i]
		}
		values[d.rate] = rates
	}
}

func setValue(rec *models.MunicipalityIndicatorRecord, col string, v float64) {
	switch col {
	case ColTotalAlunos:
		rec.TotalAlunos = v
	case ColTotalComputador:
		rec.TotalComputador = v
	case ColTotalInternet:
		rec.TotalInternet = v
	case ColTotalInclusaoDigital:
		rec.TotalInclusaoDigital = v
	case ColTaxaComputador:
		rec.TaxaComputador = v
	case ColTaxaInternet:
		rec.TaxaInternet = v
	case ColTaxaInclusaoDigital:
		rec.TaxaInclusaoDigital = v
	case ColNotaMediaGeral:
		rec.NotaMediaGeral = v
	case ColNotaRedacao:
		rec.NotaRedacao = v
	case ColNotaCH:
		rec.NotaCH = v
	case ColNotaMat:
		rec.NotaMat = v
	case ColNotaCN:
		rec.NotaCN = v
	case ColNotaLC:
		rec.NotaLC = v
	case ColIDEB:
		rec.IDEB = v
	}
}
