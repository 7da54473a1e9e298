// Command export gera o relatório do painel em arquivos: gráficos, planilha
// XLSX e relatório em markdown, e imprime a tabela resumo no terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/educacao-digital-ce/painel-indicadores/internal/charts"
	"github.com/educacao-digital-ce/painel-indicadores/internal/config"
	"github.com/educacao-digital-ce/painel-indicadores/internal/dataset"
	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/narrative"
	"github.com/educacao-digital-ce/painel-indicadores/internal/services"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

const (
	workbookFile = "resumo.xlsx"
	reportFile   = "relatorio.md"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var missing *models.MissingFileError
		if errors.As(err, &missing) {
			color.Red("Base de dados ausente: %s", missing.Path)
		}
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	dataDir string
	mapping string
	out     string
	metric  string
	base    int
	target  int
	format  string
}

func run(args []string, stdout io.Writer) error {
	_ = godotenv.Load()

	var opts options
	flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flagSet.StringVar(&opts.dataDir, "data-dir", "", "diretório dos CSVs (default: DATA_DIR)")
	flagSet.StringVar(&opts.mapping, "mapping", "", "YAML de mapeamento de colunas (default: COLUMN_MAPPING_FILE ou embutido)")
	flagSet.StringVarP(&opts.out, "out", "o", "relatorio", "diretório de saída")
	flagSet.StringVarP(&opts.metric, "metric", "m", string(models.DefaultMetric), "métrica do seletor")
	flagSet.IntVar(&opts.base, "base", 0, "ano base (default: BASE_YEAR)")
	flagSet.IntVar(&opts.target, "target", 0, "ano alvo (default: TARGET_YEAR)")
	flagSet.StringVar(&opts.format, "format", charts.FormatPNG, "formato dos gráficos (png, svg)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("argumento inesperado: %s", flagSet.Arg(0))
	}

	if opts.mapping != "" {
		os.Setenv("COLUMN_MAPPING_FILE", opts.mapping)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.base != 0 {
		cfg.BaseYear = opts.base
	}
	if opts.target != 0 {
		cfg.TargetYear = opts.target
	}
	if opts.format != charts.FormatPNG && opts.format != charts.FormatSVG {
		return fmt.Errorf("%w: %q", charts.ErrUnsupportedFormat, opts.format)
	}

	metric, err := models.ParseSelectableMetric(opts.metric)
	if err != nil {
		return fmt.Errorf("%w: %s", err, opts.metric)
	}

	loader := dataset.NewLoader(cfg.DataDir, cfg.Mappings, dataset.NewCache())
	dashboard := services.NewDashboardService(loader, narrative.Default(cfg.StateName), services.DashboardOptions{
		BaseYear:      cfg.BaseYear,
		TargetYear:    cfg.TargetYear,
		IDEBYear:      cfg.IDEBTargetYear,
		HistogramBins: cfg.HistogramBins,
		Estado:        cfg.StateName,
	})

	ctx := context.Background()

	// 1. Painel completo: qualquer base ausente aborta antes de escrever arquivos
	view, err := dashboard.Dashboard(ctx, metric)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("erro ao criar %s: %w", opts.out, err)
	}

	// 2. Gráficos
	written, err := writeCharts(ctx, dashboard, metric, opts.out, opts.format)
	if err != nil {
		return err
	}

	// 3. Planilha
	f, err := services.NewExportService(dashboard).Workbook(ctx, metric, cfg.BaseYear, cfg.TargetYear)
	if err != nil {
		return err
	}
	defer f.Close()
	workbook := filepath.Join(opts.out, workbookFile)
	if err := f.SaveAs(workbook); err != nil {
		return fmt.Errorf("erro ao salvar %s: %w", workbook, err)
	}
	written = append(written, workbook)

	// 4. Relatório em markdown
	report := filepath.Join(opts.out, reportFile)
	if err := os.WriteFile(report, []byte(services.Report(view)), 0o644); err != nil {
		return fmt.Errorf("erro ao salvar %s: %w", report, err)
	}
	written = append(written, report)

	// 5. Terminal
	printView(stdout, view)
	fmt.Fprintln(stdout)
	for _, path := range written {
		fmt.Fprintf(stdout, "%s %s\n", color.GreenString("✔"), path)
	}
	return nil
}

// writeCharts desenha os gráficos da métrica e os dois resumos
func writeCharts(ctx context.Context, dashboard *services.DashboardService, metric models.Metric, dir, format string) ([]string, error) {
	requests := []services.ChartRequest{
		{Kind: charts.KindHistogram, Metric: metric},
		{Kind: charts.KindBoxPlot, Metric: metric},
		{Kind: charts.KindScatter, Metric: metric},
		{Kind: charts.KindBar, Group: models.GroupRates},
		{Kind: charts.KindBar, Group: models.GroupScores},
	}

	var written []string
	for _, req := range requests {
		spec, err := dashboard.Chart(ctx, req)
		if err != nil {
			return written, err
		}

		name := utils.GenerateSlug(string(req.Kind), string(req.Metric), string(req.Group))
		path := filepath.Join(dir, name+"."+format)
		if err := writeChart(spec, path, format); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeChart(spec charts.Spec, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar %s: %w", path, err)
	}
	if err := charts.Render(spec, f, format); err != nil {
		f.Close()
		return fmt.Errorf("erro ao desenhar %s: %w", path, err)
	}
	return f.Close()
}

// printView imprime as comparações e as tabelas resumo
func printView(w io.Writer, view *services.DashboardView) {
	fmt.Fprintln(w, color.CyanString("=== Panorama da Educação Digital no %s: %d vs %d ===", view.Estado, view.BaseYear, view.TargetYear))

	for _, cmp := range []services.ComparisonView{view.Digital, view.ENEM, view.IDEB} {
		printComparison(w, cmp)
	}

	fmt.Fprintln(w, color.YellowString("\nCorrelação com a nota do ENEM"))
	for _, corr := range view.Correlations {
		fmt.Fprintf(w, "  %d: r = %s (%d pares)\n", corr.Result.Year, utils.FormatarEstatistica(corr.Result.Pearson, 2), corr.Result.Pairs)
	}

	fmt.Fprintln(w, color.YellowString("\nTabela Resumo"))
	for _, summary := range view.Summaries {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Indicador", fmt.Sprint(summary.BaseYear), fmt.Sprint(summary.Year), "Diferença", "Variação (%)"})
		for _, r := range summary.Rows {
			table.Append([]string{
				r.Indicator,
				utils.FormatarEstatistica(r.Value1, 2),
				utils.FormatarEstatistica(r.Value2, 2),
				utils.FormatarVariacao(r.Difference, 2, ""),
				trendColor(r.Variation)(utils.FormatarVariacao(r.Variation, 2, "%")),
			})
		}
		table.Render()
	}

	fmt.Fprintf(w, "\n%s %s\n%s\n", view.Hypothesis.Icon, color.YellowString("%s", view.Hypothesis.Title), utils.StripMarkdown(view.Hypothesis.Markdown))
}

func printComparison(w io.Writer, v services.ComparisonView) {
	c := v.Comparison
	change := utils.FormatarVariacao(c.Variation, 1, "%")
	if c.Metric.IsRate() {
		change = utils.FormatarVariacao(c.Points, 1, " p.p.")
	}

	paint := trendColor(c.Delta)
	fmt.Fprintf(w, "\n%s %s\n", v.Narrative.Icon, color.YellowString("%s", c.Label))
	fmt.Fprintf(w, "  %d: %s  →  %d: %s (%s)\n",
		c.BaseYear, utils.FormatarEstatistica(c.Mean1, 2),
		c.Year, utils.FormatarEstatistica(c.Mean2, 2),
		paint(change),
	)
	fmt.Fprintf(w, "  %s\n", utils.StripMarkdown(v.Narrative.Markdown))
}

// trendColor pinta de verde o crescimento e de vermelho o retrocesso
func trendColor(s models.Statistic) func(a ...interface{}) string {
	switch narrative.TrendOf(s) {
	case narrative.TrendUp:
		return color.New(color.FgGreen).SprintFunc()
	case narrative.TrendDown:
		return color.New(color.FgRed).SprintFunc()
	}
	return fmt.Sprint
}
