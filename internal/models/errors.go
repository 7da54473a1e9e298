package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMetric     = errors.New("métrica desconhecida")
	ErrUnknownYear       = errors.New("ano sem base de dados configurada")
	ErrInvalidPercentile = errors.New("percentil deve estar entre 0 e 100")
	ErrInvalidSide       = errors.New("lado inválido (use: abaixo, acima)")
	ErrUnknownGroup      = errors.New("grupo inválido (use: taxas, notas)")
	ErrUnknownChart      = errors.New("gráfico desconhecido (use: histograma, boxplot, dispersao, resumo)")
)

// MissingFileError indica que um CSV esperado não existe
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("arquivo de indicadores não encontrado: %s", e.Path)
}

// SchemaMismatchError indica colunas obrigatórias ausentes após a renomeação
type SchemaMismatchError struct {
	Path    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("colunas obrigatórias ausentes em %s: %s", e.Path, strings.Join(e.Missing, ", "))
}

// IsDataError indica se o erro impede a renderização por problema nos arquivos de entrada
func IsDataError(err error) bool {
	var missing *MissingFileError
	var schema *SchemaMismatchError
	return errors.As(err, &missing) || errors.As(err, &schema)
}
