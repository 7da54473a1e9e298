package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/educacao-digital-ce/painel-indicadores/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	fixture2019 = `NO_MUNICIPIO_RESIDENCIA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao,IDEB19
A,100,60,80,0.50,0.60,0.80,500,550,4.0
B,200,150,180,0.70,0.75,0.90,600,640,5.0
`
	fixture2023 = `NO_MUNICIPIO_PROVA,Total_Alunos,IDEB23
A,110,4.4
B,190,5.2
`
	fixture2024 = `NO_MUNICIPIO_PROVA,Total_Alunos,Computador,Internet,Taxa_Inclusao_Digital,Taxa_Computador,Taxa_Internet,Nota_Media_Geral,Nota_Redacao
A,120,66,108,0.60,0.55,0.90,520,600
B,180,126,171,0.65,0.70,0.95,610,660
`
)

type testServer struct {
	router *gin.Engine
	cache  *dataset.Cache
}

func newTestServer(t *testing.T, skip ...string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	files := map[string]string{
		"indicadores19.csv": fixture2019,
		"indicadores23.csv": fixture2023,
		"indicadores24.csv": fixture2024,
	}
	for _, name := range skip {
		delete(files, name)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mappings, err := dataset.DefaultMappings()
	if err != nil {
		t.Fatalf("DefaultMappings: %v", err)
	}
	cache := dataset.NewCache()
	loader := dataset.NewLoader(dir, mappings, cache)
	dashboard := services.NewDashboardService(loader, nil, services.DashboardOptions{
		BaseYear:   2019,
		TargetYear: 2024,
		IDEBYear:   2023,
		Estado:     "Ceará",
	})

	tmpl, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	page := NewDashboardHandler(dashboard)
	api := NewIndicatorsHandler(dashboard, services.NewExportService(dashboard), cache)
	health := NewHealthHandler(loader)

	r.GET("/", page.Page)
	r.GET("/readiness", health.Readiness)
	r.GET("/health", health.Health)
	r.GET("/api/v1/metricas", api.Metrics)
	r.GET("/api/v1/comparativo", api.Compare)
	r.GET("/api/v1/comparativo/municipios", api.Municipalities)
	r.GET("/api/v1/percentis", api.Percentiles)
	r.GET("/api/v1/correlacao", api.Correlation)
	r.GET("/api/v1/resumo", api.Summary)
	r.GET("/api/v1/graficos/:tipo", api.Chart)
	r.GET("/api/v1/exportar.xlsx", api.Export)
	r.POST("/api/v1/cache/reset", api.ResetCache)

	return &testServer{router: r, cache: cache}
}

func (s *testServer) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("resposta não é JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestStatusCodes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"catálogo", "/api/v1/metricas", http.StatusOK},
		{"comparativo padrão", "/api/v1/comparativo", http.StatusOK},
		{"comparativo de nota", "/api/v1/comparativo?metrica=Nota_Media_Geral", http.StatusOK},
		{"métrica desconhecida", "/api/v1/comparativo?metrica=Taxa_Foo", http.StatusBadRequest},
		{"ano não numérico", "/api/v1/comparativo?ano_base=abc", http.StatusBadRequest},
		{"ano sem base", "/api/v1/comparativo?ano_base=2030", http.StatusBadRequest},
		{"municípios", "/api/v1/comparativo/municipios?metrica=Taxa_Internet", http.StatusOK},
		{"percentil", "/api/v1/percentis?p=50&lado=acima", http.StatusOK},
		{"percentil ausente", "/api/v1/percentis", http.StatusBadRequest},
		{"percentil fora do intervalo", "/api/v1/percentis?p=120", http.StatusBadRequest},
		{"lado inválido", "/api/v1/percentis?p=50&lado=meio", http.StatusBadRequest},
		{"correlação", "/api/v1/correlacao?ano=2019&x=Taxa_Computador", http.StatusOK},
		{"resumo de notas", "/api/v1/resumo?grupo=notas", http.StatusOK},
		{"grupo inválido", "/api/v1/resumo?grupo=outros", http.StatusBadRequest},
		{"gráfico desconhecido", "/api/v1/graficos/pizza", http.StatusBadRequest},
		{"formato inválido", "/api/v1/graficos/boxplot?formato=gif", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.target)
			if w.Code != tt.want {
				t.Errorf("GET %s = %d, want %d\n%s", tt.target, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestCompareBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/comparativo?metrica=Taxa_Inclusao_Digital")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)

	cmp := body["comparativo"].(map[string]interface{})
	if math.Abs(cmp["media_base"].(float64)-0.60) > 1e-9 || math.Abs(cmp["media_alvo"].(float64)-0.625) > 1e-9 {
		t.Errorf("médias = %v/%v, want 0.60/0.625", cmp["media_base"], cmp["media_alvo"])
	}
	narr := body["narrativa"].(map[string]interface{})
	if narr["tendencia"] != "up" || !strings.Contains(narr["html"].(string), "<strong>") {
		t.Errorf("narrativa = %v", narr)
	}

	w = s.do(http.MethodGet, "/api/v1/comparativo?metrica=Foo")
	if got := decode(t, w)["error"]; got != "métrica desconhecida" {
		t.Errorf("error = %v", got)
	}
}

func TestChartImages(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target string
		ctype  string
		marker string
	}{
		{"/api/v1/graficos/histograma?metrica=Taxa_Internet", "image/png", "\x89PNG"},
		{"/api/v1/graficos/dispersao?formato=svg", "image/svg+xml", "<svg"},
		{"/api/v1/graficos/resumo?grupo=notas", "image/png", "\x89PNG"},
		{"/api/v1/graficos/boxplot?ano=2024", "image/png", "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", got, tt.ctype)
			}
			if !strings.Contains(w.Body.String(), tt.marker) {
				t.Errorf("corpo sem %q", tt.marker)
			}
		})
	}
}

func TestExportAndResetCache(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/exportar.xlsx")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "painel-taxa-inclusao-digital-2019-2024.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}
	// xlsx é um zip
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("planilha não parece um arquivo xlsx")
	}

	if s.cache.Stats() != 2 {
		t.Fatalf("cache = %d bases, want 2", s.cache.Stats())
	}
	w = s.do(http.MethodPost, "/api/v1/cache/reset")
	if w.Code != http.StatusOK || decode(t, w)["descartadas"].(float64) != 2 {
		t.Errorf("reset = %d %s", w.Code, w.Body.String())
	}
	if s.cache.Stats() != 0 {
		t.Errorf("cache = %d após reset, want 0", s.cache.Stats())
	}
}

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/?metrica=Taxa_Computador")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	page := w.Body.String()
	for _, want := range []string{
		"Panorama da Educação Digital no Ceará: 2019 vs 2024",
		`value="Taxa_Computador" checked`,
		"/api/v1/graficos/histograma?metrica=Taxa_Computador",
		"Nota Média do ENEM",
		"Hipótese da IA Generativa",
		"<strong>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("página sem %q", want)
		}
	}

	w = s.do(http.MethodGet, "/?metrica=Nota_Media_Geral")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Métrica inválida") {
		t.Errorf("métrica fora do seletor = %d", w.Code)
	}
}

func TestDashboardMissingFile(t *testing.T) {
	s := newTestServer(t, "indicadores23.csv")

	w := s.do(http.MethodGet, "/")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Base de dados indisponível") || !strings.Contains(page, "indicadores23.csv") {
		t.Errorf("página de erro = %s", page)
	}
	if strings.Contains(page, "Tabela Resumo") {
		t.Error("nenhuma seção deveria ser exibida com base ausente")
	}
}

func TestHealth(t *testing.T) {
	ok := newTestServer(t)
	if w := ok.do(http.MethodGet, "/readiness"); w.Code != http.StatusOK {
		t.Errorf("readiness = %d, want 200", w.Code)
	}
	w := ok.do(http.MethodGet, "/health")
	checks := decode(t, w)["checks"].(map[string]interface{})
	if checks["dataset_2024"] != "ok" || checks["cache"] != "0 base(s) em memória" {
		t.Errorf("checks = %v", checks)
	}

	missing := newTestServer(t, "indicadores24.csv")
	w = missing.do(http.MethodGet, "/readiness")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness = %d, want 503", w.Code)
	}
	checks = decode(t, w)["checks"].(map[string]interface{})
	if !strings.HasPrefix(checks["dataset_2024"].(string), "failed") {
		t.Errorf("checks = %v", checks)
	}
}
