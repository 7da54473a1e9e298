// Package narrative escolhe e preenche os textos explicativos do painel.
//
// Os textos são dados (DefaultTemplates), indexados por assunto e direção da
// variação. A busca tenta (assunto, direção), depois (assunto, qualquer),
// depois os genéricos (qualquer, direção) e (qualquer, qualquer).
package narrative

import (
	"bytes"
	"fmt"
	"math"
	"text/template"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/educacao-digital-ce/painel-indicadores/internal/utils"
)

// Topic é o assunto de um texto
type Topic string

const (
	TopicInclusaoDigital       = Topic(models.MetricInclusaoDigital)
	TopicComputador            = Topic(models.MetricComputador)
	TopicInternet              = Topic(models.MetricInternet)
	TopicENEM            Topic = "enem"
	TopicIDEB            Topic = "ideb"
	TopicCorrelacao      Topic = "correlacao"
	TopicIA              Topic = "ia_generativa"
	TopicAny             Topic = "*"
)

// Trend é a direção observada
type Trend string

const (
	TrendUp        Trend = "up"
	TrendDown      Trend = "down"
	TrendFlat      Trend = "flat"
	TrendUndefined Trend = "undefined"
	TrendAny       Trend = "*"
)

// limite abaixo do qual a correlação é tratada como ausente
const weakCorrelation = 0.1

// Context são os valores interpolados nos textos
type Context struct {
	Estado    string
	AnoBase   int
	AnoAlvo   int
	Indicador string
	Tendencia string
	Magnitude string
	Unidade   string
	Media1    string
	Media2    string
}

// Block é um texto pronto para exibição
type Block struct {
	Topic     Topic  `json:"assunto"`
	Trend     Trend  `json:"tendencia"`
	Title     string `json:"titulo"`
	Icon      string `json:"icone"`
	Color     string `json:"cor"`
	Tendencia string `json:"rotulo_tendencia"`
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
}

type key struct {
	topic Topic
	trend Trend
}

type entry struct {
	title string
	tmpl  *template.Template
}

// Library é o acervo compilado de textos; seguro para uso concorrente
type Library struct {
	estado  string
	entries map[key]entry
}

// New compila os templates. estado é o nome da unidade federativa citada nos textos.
func New(templates []Template, estado string) (*Library, error) {
	lib := &Library{
		estado:  estado,
		entries: make(map[key]entry, len(templates)),
	}
	for _, t := range templates {
		k := key{t.Topic, t.Trend}
		if _, dup := lib.entries[k]; dup {
			return nil, fmt.Errorf("texto duplicado para %s/%s", t.Topic, t.Trend)
		}
		tmpl, err := template.New(string(t.Topic) + "/" + string(t.Trend)).Option("missingkey=error").Parse(t.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao compilar texto %s/%s: %w", t.Topic, t.Trend, err)
		}
		lib.entries[k] = entry{title: t.Title, tmpl: tmpl}
	}
	if _, ok := lib.entries[key{TopicAny, TrendAny}]; !ok {
		return nil, fmt.Errorf("acervo sem texto genérico (%s/%s)", TopicAny, TrendAny)
	}
	return lib, nil
}

// Default compila o acervo padrão
func Default(estado string) *Library {
	lib, err := New(DefaultTemplates, estado)
	if err != nil {
		panic(err)
	}
	return lib
}

// lookup aplica a ordem de fallback
func (l *Library) lookup(topic Topic, trend Trend) (entry, key) {
	for _, k := range []key{{topic, trend}, {topic, TrendAny}, {TopicAny, trend}, {TopicAny, TrendAny}} {
		if e, ok := l.entries[k]; ok {
			return e, k
		}
	}
	// New garante o genérico
	return entry{}, key{}
}

// Render escolhe o texto de (topic, trend) e interpola ctx
func (l *Library) Render(topic Topic, trend Trend, ctx Context) (Block, error) {
	e, _ := l.lookup(topic, trend)
	if ctx.Estado == "" {
		ctx.Estado = l.estado
	}
	if ctx.Tendencia == "" {
		ctx.Tendencia = trendLabel(trend)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, ctx); err != nil {
		return Block{}, fmt.Errorf("erro ao preencher texto %s/%s: %w", topic, trend, err)
	}

	md := buf.String()
	return Block{
		Topic:     topic,
		Trend:     trend,
		Title:     e.title,
		Icon:      trendIcon(trend),
		Color:     trendColor(trend),
		Tendencia: ctx.Tendencia,
		Markdown:  md,
		HTML:      utils.MarkdownToHTML(md),
	}, nil
}

// ForComparison monta o texto da comparação de médias de uma métrica
func (l *Library) ForComparison(cmp models.MeanComparison) (Block, error) {
	trend := TrendOf(cmp.Delta)

	ctx := Context{
		AnoBase:   cmp.BaseYear,
		AnoAlvo:   cmp.Year,
		Indicador: cmp.Label,
		Media1:    utils.FormatarEstatistica(cmp.Mean1, 2),
		Media2:    utils.FormatarEstatistica(cmp.Mean2, 2),
	}
	if cmp.Metric.IsRate() {
		ctx.Magnitude = utils.FormatarEstatistica(abs(cmp.Points), 1)
		ctx.Unidade = "pontos percentuais"
	} else {
		ctx.Magnitude = utils.FormatarEstatistica(abs(cmp.Variation), 1)
		ctx.Unidade = "%"
	}

	return l.Render(TopicForMetric(cmp.Metric), trend, ctx)
}

// ForCorrelation monta o texto da correlação entre uma taxa e a nota
func (l *Library) ForCorrelation(res models.CorrelationResult) (Block, error) {
	trend := TrendUndefined
	if res.Pearson.Defined {
		switch {
		case math.Abs(res.Pearson.Value) < weakCorrelation:
			trend = TrendFlat
		case res.Pearson.Value > 0:
			trend = TrendUp
		default:
			trend = TrendDown
		}
	}

	ctx := Context{
		AnoAlvo:   res.Year,
		Indicador: res.X.Label(),
		Magnitude: utils.FormatarEstatistica(res.Pearson, 2),
		Tendencia: "CORRELAÇÃO",
	}
	return l.Render(TopicCorrelacao, trend, ctx)
}

// TopicForMetric associa uma métrica ao assunto do texto
func TopicForMetric(m models.Metric) Topic {
	switch {
	case m == models.MetricIDEB:
		return TopicIDEB
	case m.IsRate():
		return Topic(m)
	case m.Kind() == models.KindScore:
		return TopicENEM
	}
	return TopicAny
}

// TrendOf classifica a direção de um delta
func TrendOf(delta models.Statistic) Trend {
	switch {
	case !delta.Defined:
		return TrendUndefined
	case delta.Value > 0:
		return TrendUp
	case delta.Value < 0:
		return TrendDown
	}
	return TrendFlat
}

func trendLabel(t Trend) string {
	switch t {
	case TrendUp:
		return "CRESCIMENTO"
	case TrendDown:
		return "RETROCESSO"
	case TrendFlat:
		return "ESTABILIDADE"
	}
	return "SEM DADOS"
}

func trendIcon(t Trend) string {
	switch t {
	case TrendUp:
		return "📈"
	case TrendDown:
		return "📉"
	case TrendFlat:
		return "➖"
	}
	return "❔"
}

func trendColor(t Trend) string {
	switch t {
	case TrendUp:
		return "green"
	case TrendDown:
		return "red"
	}
	return "gray"
}

func abs(s models.Statistic) models.Statistic {
	if !s.Defined {
		return s
	}
	return models.DefinedStat(math.Abs(s.Value))
}
