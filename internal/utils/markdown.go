package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownToHTML converte o texto narrativo em HTML para o painel
func MarkdownToHTML(text string) string {
	if text == "" {
		return ""
	}

	// o parser guarda estado: um por chamada
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})

	return string(markdown.ToHTML([]byte(text), p, renderer))
}

// StripMarkdown remove a formatação markdown e retorna texto puro (usado no terminal)
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}

	doc := markdown.Parse([]byte(text), nil)

	var buf bytes.Buffer
	extractText(doc, &buf)

	result := strings.TrimSpace(buf.String())
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return result
}

// extractText percorre a AST acumulando apenas o texto
func extractText(node ast.Node, buf *bytes.Buffer) {
	switch node.(type) {
	case *ast.Text, *ast.Code, *ast.CodeBlock:
		buf.Write(node.AsLeaf().Literal)
		return
	case *ast.Hardbreak:
		buf.WriteByte('\n')
		return
	case *ast.Softbreak:
		buf.WriteByte(' ')
		return
	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	case *ast.ListItem:
		buf.WriteString("- ")
	}

	if container := node.AsContainer(); container != nil {
		for _, child := range container.Children {
			extractText(child, buf)
		}
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote:
		buf.WriteByte('\n')
	}
}
