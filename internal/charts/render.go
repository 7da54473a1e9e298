package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ErrUnsupportedFormat = errors.New("formato de imagem não suportado")
	ErrUnknownKind       = errors.New("tipo de gráfico desconhecido")
)

// Formatos aceitos por Render
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Tamanho padrão das imagens
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// transparência dos histogramas sobrepostos
const overlayAlpha = 150

// ContentType retorna o MIME do formato
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render desenha spec em w no formato pedido ("png" ou "svg")
func Render(spec Spec, w io.Writer, format string) error {
	return RenderSize(spec, w, format, DefaultWidth, DefaultHeight)
}

// RenderSize é como Render, com largura e altura explícitas
func RenderSize(spec Spec, w io.Writer, format string, width, height vg.Length) error {
	format = strings.ToLower(format)
	if format != FormatPNG && format != FormatSVG {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	p, err := Build(spec)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("erro ao preparar imagem: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("erro ao escrever imagem: %w", err)
	}
	return nil
}

// Build converte a spec em um *plot.Plot
func Build(spec Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.Legend.Top = true

	var err error
	switch spec.Kind {
	case KindHistogram:
		err = addHistograms(p, spec)
	case KindBoxPlot:
		err = addBoxes(p, spec)
	case KindScatter:
		err = addScatters(p, spec)
	case KindBar:
		err = addBars(p, spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	if err != nil {
		return nil, err
	}

	if spec.FixedX {
		p.X.Min, p.X.Max = spec.XMin, spec.XMax
	}
	if spec.Empty() {
		p.Title.Text += " (sem dados)"
	}
	return p, nil
}

func addHistograms(p *plot.Plot, spec Spec) error {
	lo, hi := spec.XMin, spec.XMax
	if !spec.FixedX {
		lo, hi = valueRange(spec.Series)
	}

	bins := spec.Bins
	if bins <= 0 {
		bins = DefaultBins
	}

	for _, s := range spec.Series {
		if len(s.Values) == 0 {
			continue
		}
		hb := Bins(s.Values, bins, lo, hi)
		h := &plotter.Histogram{
			Bins:      hb,
			Width:     hb[0].Max - hb[0].Min,
			FillColor: withAlpha(parseColor(s.Color), overlayAlpha),
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(s.Name, h)
	}
	p.Add(plotter.NewGrid())
	return nil
}

func addBoxes(p *plot.Plot, spec Spec) error {
	names := make([]string, len(spec.Series))
	for i, s := range spec.Series {
		names[i] = s.Name
		if len(s.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(50), float64(i), plotter.Values(s.Values))
		if err != nil {
			return fmt.Errorf("erro ao montar boxplot %s: %w", s.Name, err)
		}
		box.FillColor = parseColor(s.Color)
		p.Add(box)
	}
	p.NominalX(names...)
	p.Add(plotter.NewGrid())
	return nil
}

func addScatters(p *plot.Plot, spec Spec) error {
	for _, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("erro ao montar dispersão %s: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = withAlpha(parseColor(s.Color), 200)
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	p.Add(plotter.NewGrid())
	return nil
}

func addBars(p *plot.Plot, spec Spec) error {
	width := vg.Points(18)
	n := len(spec.Series)
	for i, s := range spec.Series {
		if len(s.Values) == 0 {
			continue
		}
		values := make(plotter.Values, len(s.Values))
		for j, v := range s.Values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				values[j] = v
			}
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("erro ao montar barras %s: %w", s.Name, err)
		}
		bars.Color = parseColor(s.Color)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = width * vg.Length(2*i-n+1) / 2
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.NominalX(spec.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 8
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0
	return nil
}

// Bins distribui values em n classes de mesma largura em [lo, hi].
// Valores fora do intervalo são ignorados; hi entra na última classe.
func Bins(values []float64, n int, lo, hi float64) []plotter.HistogramBin {
	if n <= 0 {
		n = DefaultBins
	}
	if hi <= lo {
		lo, hi = lo-0.5, lo+0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]plotter.HistogramBin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	bins[n-1].Max = hi

	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Weight++
	}
	return bins
}

func valueRange(series []Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}

// parseColor lê "#rrggbb"; cores inválidas viram cinza
func parseColor(hex string) color.RGBA {
	gray := color.RGBA{R: 127, G: 127, B: 127, A: 255}
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return gray
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gray
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// withAlpha aplica transparência a uma cor opaca (RGBA é pré-multiplicado)
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
