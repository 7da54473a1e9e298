package services

import (
	"context"
	"fmt"
	"time"

	"github.com/educacao-digital-ce/painel-indicadores/internal/analysis"
	"github.com/educacao-digital-ce/painel-indicadores/internal/charts"
	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DashboardOptions são os anos e parâmetros padrão do painel
type DashboardOptions struct {
	BaseYear      int
	TargetYear    int
	IDEBYear      int
	HistogramBins int
	Estado        string
}

// ChartRequest descreve o gráfico pedido na API ou no export
type ChartRequest struct {
	Kind     charts.Kind
	Metric   models.Metric
	Y        models.Metric
	BaseYear int
	Year     int
	// Only restringe histograma e boxplot a um único ano
	Only  int
	Group models.SummaryGroup
}

// DashboardService monta as seções do painel a partir das bases anuais
type DashboardService struct {
	loader     *dataset.Loader
	narratives *narrative.Library
	opts       DashboardOptions
}

// NewDashboardService cria o serviço do painel
func NewDashboardService(loader *dataset.Loader, narratives *narrative.Library, opts DashboardOptions) *DashboardService {
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = charts.DefaultBins
	}
	if narratives == nil {
		narratives = narrative.Default(opts.Estado)
	}
	return &DashboardService{
		loader:     loader,
		narratives: narratives,
		opts:       opts,
	}
}

// Options retorna os parâmetros padrão do painel
func (s *DashboardService) Options() DashboardOptions {
	return s.opts
}

// Loader retorna o loader das bases
func (s *DashboardService) Loader() *dataset.Loader {
	return s.loader
}

// years aplica os anos padrão quando a requisição não informa
func (s *DashboardService) years(base, target int) (int, int) {
	if base == 0 {
		base = s.opts.BaseYear
	}
	if target == 0 {
		target = s.opts.TargetYear
	}
	return base, target
}

// LoadPair carrega as bases de dois anos; qualquer falha aborta
func (s *DashboardService) LoadPair(ctx context.Context, base, target int) (*models.YearlyDataset, *models.YearlyDataset, error) {
	ds1, err := s.loader.Load(ctx, base)
	if err != nil {
		return nil, nil, err
	}
	ds2, err := s.loader.Load(ctx, target)
	if err != nil {
		return nil, nil, err
	}
	return ds1, ds2, nil
}

// Compare compara a média da métrica entre dois anos e escolhe o texto
func (s *DashboardService) Compare(ctx context.Context, metric models.Metric, base, target int) (*ComparisonView, error) {
	base, target = s.years(base, target)

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Compare")
	defer span.End()
	span.SetAttributes(
		attribute.String("dashboard.metric", string(metric)),
		attribute.Int("dashboard.base_year", base),
		attribute.Int("dashboard.target_year", target),
	)

	ds1, ds2, err := s.LoadPair(ctx, base, target)
	if err != nil {
		return nil, fail(span, err, "falha ao carregar bases")
	}

	cmp := analysis.CompareMeans(ds1, ds2, metric)
	block, err := s.narratives.ForComparison(cmp)
	if err != nil {
		return nil, fail(span, err, "falha ao montar narrativa")
	}

	return &ComparisonView{Comparison: cmp, Narrative: block}, nil
}

// Municipalities retorna a tabela por município ordenada por diferença decrescente
func (s *DashboardService) Municipalities(ctx context.Context, metric models.Metric, base, target int) (*MunicipalityTable, error) {
	base, target = s.years(base, target)

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Municipalities")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.metric", string(metric)))

	ds1, ds2, err := s.LoadPair(ctx, base, target)
	if err != nil {
		return nil, fail(span, err, "falha ao carregar bases")
	}

	rows := analysis.Join(ds1, ds2, metric)
	analysis.SortByDifference(rows)
	span.SetAttributes(attribute.Int("dashboard.rows", len(rows)))

	return &MunicipalityTable{Metric: metric, BaseYear: base, Year: target, Rows: rows}, nil
}

// Percentiles recorta os municípios de um ano abaixo ou acima do percentil p
func (s *DashboardService) Percentiles(ctx context.Context, year int, metric models.Metric, p float64, side models.ThresholdSide) (*models.ThresholdSubset, error) {
	if year == 0 {
		year = s.opts.TargetYear
	}

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Percentiles")
	defer span.End()
	span.SetAttributes(
		attribute.Int("dashboard.year", year),
		attribute.Float64("dashboard.percentile", p),
		attribute.String("dashboard.side", string(side)),
	)

	ds, err := s.loader.Load(ctx, year)
	if err != nil {
		return nil, fail(span, err, "falha ao carregar base")
	}

	subset, err := analysis.Threshold(ds, metric, p, side)
	if err != nil {
		return nil, fail(span, err, "percentil inválido")
	}
	return &subset, nil
}

// Correlation calcula Pearson entre x e y em um ano
func (s *DashboardService) Correlation(ctx context.Context, year int, x, y models.Metric) (*CorrelationView, error) {
	if year == 0 {
		year = s.opts.TargetYear
	}

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Correlation")
	defer span.End()
	span.SetAttributes(
		attribute.Int("dashboard.year", year),
		attribute.String("dashboard.x", string(x)),
		attribute.String("dashboard.y", string(y)),
	)

	ds, err := s.loader.Load(ctx, year)
	if err != nil {
		return nil, fail(span, err, "falha ao carregar base")
	}

	res := analysis.CorrelateMetrics(ds, x, y)
	block, err := s.narratives.ForCorrelation(res)
	if err != nil {
		return nil, fail(span, err, "falha ao montar narrativa")
	}
	span.SetAttributes(attribute.Int("dashboard.pairs", res.Pairs))

	return &CorrelationView{Result: res, Narrative: block}, nil
}

// Summary monta a tabela resumo executiva de um grupo de métricas
func (s *DashboardService) Summary(ctx context.Context, base, target int, group models.SummaryGroup) (*SummaryView, error) {
	base, target = s.years(base, target)

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Summary")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.group", string(group)))

	ds1, ds2, err := s.LoadPair(ctx, base, target)
	if err != nil {
		return nil, fail(span, err, "falha ao carregar bases")
	}

	return &SummaryView{
		Group:    group,
		BaseYear: base,
		Year:     target,
		Rows:     analysis.Summary(ds1, ds2, group.Metrics()),
	}, nil
}

// Hypothesis retorna o bloco da hipótese da IA generativa
func (s *DashboardService) Hypothesis(trend narrative.Trend) (narrative.Block, error) {
	base, target := s.years(0, 0)
	return s.narratives.Render(narrative.TopicIA, trend, narrative.Context{AnoBase: base, AnoAlvo: target})
}

// Chart monta a especificação de um gráfico
func (s *DashboardService) Chart(ctx context.Context, req ChartRequest) (charts.Spec, error) {
	base, target := s.years(req.BaseYear, req.Year)

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Chart")
	defer span.End()
	span.SetAttributes(
		attribute.String("dashboard.chart", string(req.Kind)),
		attribute.String("dashboard.metric", string(req.Metric)),
	)

	if req.Kind == charts.KindBar {
		view, err := s.Summary(ctx, base, target, req.Group)
		if err != nil {
			return charts.Spec{}, fail(span, err, "falha ao montar resumo")
		}
		return charts.GroupedBar(base, target, view.Rows), nil
	}

	years := []int{base, target}
	if req.Only != 0 {
		years = []int{req.Only}
	}
	y := req.Y
	if y == "" {
		y = models.MetricNotaMediaGeral
	}

	var series []charts.Series
	for i, year := range years {
		ds, err := s.loader.Load(ctx, year)
		if err != nil {
			return charts.Spec{}, fail(span, err, "falha ao carregar base")
		}
		color := charts.ColorBase
		if i == 1 || (req.Only != 0 && year == target) {
			color = charts.ColorTarget
		}

		switch req.Kind {
		case charts.KindScatter:
			series = append(series, charts.PairSeries(ds, req.Metric, y, color))
		default:
			series = append(series, charts.YearSeries(ds, req.Metric, color))
		}
	}

	switch req.Kind {
	case charts.KindHistogram:
		return charts.Histogram(req.Metric, s.opts.HistogramBins, series...), nil
	case charts.KindBoxPlot:
		return charts.BoxPlot(req.Metric, series...), nil
	case charts.KindScatter:
		return charts.Scatter(req.Metric, y, series...), nil
	}
	return charts.Spec{}, fail(span, models.ErrUnknownChart, "gráfico desconhecido")
}

// Dashboard monta a página completa para a métrica escolhida.
// Qualquer base ausente aborta a página inteira.
func (s *DashboardService) Dashboard(ctx context.Context, metric models.Metric) (*DashboardView, error) {
	ctx, span := otel.Tracer("dashboard").Start(ctx, "Dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.metric", string(metric)))

	info, ok := metric.Info()
	if !ok {
		return nil, fail(span, models.ErrUnknownMetric, "métrica desconhecida")
	}

	base, target := s.years(0, 0)
	view := &DashboardView{
		Estado:      s.opts.Estado,
		Metric:      info,
		Options:     models.SelectorOptions(),
		BaseYear:    base,
		TargetYear:  target,
		IDEBYear:    s.opts.IDEBYear,
		GeneratedAt: time.Now(),
	}

	// 1. Suporte digital (métrica selecionada) e tabela por município
	digital, err := s.Compare(ctx, metric, base, target)
	if err != nil {
		return nil, err
	}
	view.Digital = *digital

	table, err := s.Municipalities(ctx, metric, base, target)
	if err != nil {
		return nil, err
	}
	view.Municipalities = *table

	// 2. ENEM
	enem, err := s.Compare(ctx, models.MetricNotaMediaGeral, base, target)
	if err != nil {
		return nil, err
	}
	view.ENEM = *enem

	// 3. Correlação taxa × nota em cada ano
	for _, year := range []int{base, target} {
		corr, err := s.Correlation(ctx, year, metric, models.MetricNotaMediaGeral)
		if err != nil {
			return nil, err
		}
		view.Correlations = append(view.Correlations, *corr)
	}

	// 4. IDEB (ano base × ano do IDEB)
	ideb, err := s.Compare(ctx, models.MetricIDEB, base, s.opts.IDEBYear)
	if err != nil {
		return nil, err
	}
	view.IDEB = *ideb

	// 5. Tabelas resumo
	for _, group := range []models.SummaryGroup{models.GroupRates, models.GroupScores} {
		summary, err := s.Summary(ctx, base, target, group)
		if err != nil {
			return nil, err
		}
		view.Summaries = append(view.Summaries, *summary)
	}

	// 6. Hipótese da IA generativa, acompanhando a direção da nota
	view.Hypothesis, err = s.Hypothesis(enem.Narrative.Trend)
	if err != nil {
		return nil, fail(span, err, "falha ao montar narrativa")
	}

	return view, nil
}

func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return fmt.Errorf("%s: %w", msg, err)
}
