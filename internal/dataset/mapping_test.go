package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultMappings(t *testing.T) {
	cfg, err := DefaultMappings()
	if err != nil {
		t.Fatalf("DefaultMappings: %v", err)
	}

	years := cfg.Years()
	if len(years) != 3 || years[0] != 2019 || years[1] != 2023 || years[2] != 2024 {
		t.Errorf("Years = %v, want [2019 2023 2024]", years)
	}

	m, ok := cfg.ForYear(2019)
	if !ok {
		t.Fatal("mapeamento de 2019 ausente")
	}
	if m.Rename["IDEB19"] != ColIDEB || m.Rename["Computador"] != ColTotalComputador {
		t.Errorf("Rename 2019 = %v", m.Rename)
	}

	found := false
	for _, alias := range m.Municipality {
		if alias == "NO_MUNICIPIO_RESIDENCIA" {
			found = true
		}
	}
	if !found {
		t.Errorf("Municipality 2019 = %v, deveria aceitar NO_MUNICIPIO_RESIDENCIA", m.Municipality)
	}
}

func TestParseMappingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "sem datasets",
			yaml:    "datasets: []\n",
			wantErr: "inválido",
		},
		{
			name: "sem arquivo",
			yaml: `datasets:
  - year: 2019
    municipality: [Municipio]
`,
			wantErr: "inválido",
		},
		{
			name: "coluna obrigatória desconhecida",
			yaml: `datasets:
  - year: 2019
    file: a.csv
    municipality: [Municipio]
    required: [Nota_Fisica]
`,
			wantErr: "Nota_Fisica",
		},
		{
			name: "ano repetido",
			yaml: `datasets:
  - year: 2019
    file: a.csv
    municipality: [Municipio]
  - year: 2019
    file: b.csv
    municipality: [Municipio]
`,
			wantErr: "repetido",
		},
		{
			name:    "yaml quebrado",
			yaml:    "datasets: [",
			wantErr: "decodificar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMappings([]byte(tt.yaml))
			if err == nil {
				t.Fatal("esperava erro")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want contendo %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMappingsFromFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapeamento.yaml")
	content := `datasets:
  - year: 2019
    file: a.csv
    municipality: [NO_MUNICIPIO_PROVA]
    required: [Total_Alunos]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMappings(path)
	if err != nil {
		t.Fatalf("LoadMappings: %v", err)
	}

	if !cfg.OverrideFile(2019, "outro.csv") {
		t.Error("OverrideFile(2019) deveria encontrar o ano")
	}
	if cfg.OverrideFile(2030, "x.csv") {
		t.Error("OverrideFile(2030) não deveria encontrar o ano")
	}
	m, _ := cfg.ForYear(2019)
	if m.File != "outro.csv" {
		t.Errorf("File = %q, want outro.csv", m.File)
	}

	if _, err := LoadMappings(filepath.Join(t.TempDir(), "nao-existe.yaml")); err == nil {
		t.Error("esperava erro para arquivo inexistente")
	}
}
