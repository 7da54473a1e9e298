package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Statistic é um escalar derivado que pode ser indefinido (sem dados, divisão por zero).
// Quando Defined é falso, Value não deve ser lido.
type Statistic struct {
	Value   float64
	Defined bool
}

// DefinedStat cria uma estatística definida; NaN e Inf viram indefinida
func DefinedStat(v float64) Statistic {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Statistic{}
	}
	return Statistic{Value: v, Defined: true}
}

// Undefined representa a ausência de dados
func Undefined() Statistic {
	return Statistic{}
}

// Or retorna o valor ou fallback quando indefinida
func (s Statistic) Or(fallback float64) float64 {
	if !s.Defined {
		return fallback
	}
	return s.Value
}

// Format formata o valor com o verbo informado ou "N/A"
func (s Statistic) Format(format string) string {
	if !s.Defined {
		return "N/A"
	}
	return fmt.Sprintf(format, s.Value)
}

func (s Statistic) String() string {
	return s.Format("%.4f")
}

// MarshalJSON serializa estatísticas indefinidas como null
func (s Statistic) MarshalJSON() ([]byte, error) {
	if !s.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON aceita null como indefinida
func (s *Statistic) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Statistic{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = DefinedStat(v)
	return nil
}
