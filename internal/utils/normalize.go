package utils

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizarMunicipio prepara o nome do município para ser chave de junção.
// Apenas remove espaços nas pontas e aplica NFC: grafias diferentes continuam diferentes.
// Exemplo: "  Itapajé " (NFD) -> "Itapajé" (NFC)
func NormalizarMunicipio(nome string) string {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nome
	}
	return norm.NFC.String(nome)
}

// RemoverAcentos remove acentos e diacríticos e converte para minúsculas
// Exemplo: "Suporte Digital à Educação" -> "suporte digital a educacao"
func RemoverAcentos(texto string) string {
	if texto == "" {
		return texto
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, texto)

	return strings.ToLower(normalized)
}

// ComparadorMunicipios retorna uma função de comparação na ordem alfabética do português.
// O comparador não é seguro para uso concorrente: crie um por ordenação.
func ComparadorMunicipios() func(a, b string) int {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	return c.CompareString
}

// OrdenarMunicipios ordena nomes em ordem alfabética do português
func OrdenarMunicipios(nomes []string) {
	cmp := ComparadorMunicipios()
	sort.SliceStable(nomes, func(i, j int) bool {
		return cmp(nomes[i], nomes[j]) < 0
	})
}
