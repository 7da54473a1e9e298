package utils

import (
	"regexp"
	"strings"
)

const MaxSlugLength = 60

var slugInvalido = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug cria um nome de arquivo kebab-case a partir das partes informadas.
// Exemplo: ("Histograma", "Taxa_Inclusao_Digital", "2019") -> "histograma-taxa-inclusao-digital-2019"
func GenerateSlug(partes ...string) string {
	slug := slugInvalido.ReplaceAllString(RemoverAcentos(strings.Join(partes, " ")), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		if lastHyphen := strings.LastIndex(slug, "-"); lastHyphen > 0 {
			slug = slug[:lastHyphen]
		}
	}

	return slug
}
