package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
)

var fixtures = map[string]string{
	"indicadores19.csv": `NO_MUNICIPIO_RESIDENCIA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao,IDEB19
A,100,60,80,0.50,0.60,0.80,500,550,4.0
B,200,150,180,0.70,0.75,0.90,600,640,5.0
`,
	"indicadores23.csv": `NO_MUNICIPIO_PROVA,Total_Alunos,IDEB23
A,110,4.4
B,190,5.2
`,
	"indicadores24.csv": `NO_MUNICIPIO_PROVA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao
A,120,66,108,0.60,0.55,0.90,520,600
B,180,126,171,0.65,0.70,0.95,610,660
`,
}

func writeFixtures(t *testing.T, skip string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		if name == skip {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	data := writeFixtures(t, "")
	out := filepath.Join(t.TempDir(), "saida")

	var stdout bytes.Buffer
	err := run([]string{"--data-dir", data, "--out", out, "--metric", "Taxa_Internet", "--format", "svg"}, &stdout)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{
		"histograma-taxa-internet.svg",
		"boxplot-taxa-internet.svg",
		"dispersao-taxa-internet.svg",
		"resumo-taxas.svg",
		"resumo-notas.svg",
		workbookFile,
		reportFile,
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("arquivo %s não gerado: %v", name, err)
		}
	}

	report, err := os.ReadFile(filepath.Join(out, reportFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "Panorama da Educação Digital no Ceará: 2019 vs 2024") {
		t.Errorf("relatório sem título:\n%s", report)
	}

	printed := stdout.String()
	for _, want := range []string{"Tabela Resumo", "Taxa Internet", "Nota Média", "Hipótese da IA Generativa"} {
		if !strings.Contains(printed, want) {
			t.Errorf("saída sem %q", want)
		}
	}
	// texto puro no terminal
	if strings.Contains(printed, "**") {
		t.Error("markdown não deveria aparecer no terminal")
	}
}

func TestRunErrors(t *testing.T) {
	data := writeFixtures(t, "indicadores19.csv")
	out := t.TempDir()

	var missing *models.MissingFileError
	err := run([]string{"--data-dir", data, "--out", out}, &bytes.Buffer{})
	if !errors.As(err, &missing) {
		t.Errorf("err = %v, want MissingFileError", err)
	}
	if _, statErr := os.Stat(filepath.Join(out, reportFile)); statErr == nil {
		t.Error("nenhum arquivo deveria ser escrito com base ausente")
	}

	if err := run([]string{"--metric", "Nota_Media_Geral"}, &bytes.Buffer{}); !errors.Is(err, models.ErrUnknownMetric) {
		t.Errorf("err = %v, want ErrUnknownMetric", err)
	}
	if err := run([]string{"--format", "gif"}, &bytes.Buffer{}); err == nil {
		t.Error("formato gif deveria falhar")
	}
	if err := run([]string{"extra"}, &bytes.Buffer{}); err == nil {
		t.Error("argumento extra deveria falhar")
	}
}
