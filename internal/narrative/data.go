package narrative

// Template é um texto narrativo em markdown com campos de Context
type Template struct {
	Topic Topic  // assunto (métrica ou seção)
	Trend Trend  // direção observada; TrendAny vale para qualquer uma
	Title string // título do bloco
	Body  string // corpo em markdown (text/template)
}

const header = "Entre {{.AnoBase}} e {{.AnoAlvo}}, o {{.Estado}} observou um(a) **{{.Tendencia}}** de **{{.Magnitude}} {{.Unidade}}** neste indicador.\n\n"

const headerUndefined = "Não há dados suficientes para comparar {{.AnoBase}} e {{.AnoAlvo}} neste indicador.\n\n"

// DefaultTemplates é o acervo de textos do painel
var DefaultTemplates = []Template{
	// Posse de computador
	{Topic: TopicComputador, Trend: TrendDown, Title: "O que isso significa?", Body: header +
		"Isso evidencia o **'Paradoxo da Conectividade'**. Embora haja mais alunos, o estoque de equipamentos de produtividade (computadores) diminuiu, sugerindo uma migração massiva para o celular."},
	{Topic: TopicComputador, Trend: TrendUp, Title: "O que isso significa?", Body: header +
		"Mais estudantes passaram a ter um **computador em casa**, o equipamento mais adequado para estudo, produção de textos e simulados."},

	// Acesso à internet
	{Topic: TopicInternet, Trend: TrendUp, Title: "O que isso significa?", Body: header +
		"O acesso à rede foi **universalizado**. A pandemia acelerou a infraestrutura de telecomunicações, rompendo a barreira do sinal para a maioria dos municípios. A Internet virou uma espécie de commodity e sua rápida proliferação foi suficiente para aumentar os índices do ENEM para a maioria."},
	{Topic: TopicInternet, Trend: TrendDown, Title: "O que isso significa?", Body: header +
		"Menos estudantes declararam **acesso à internet** em casa, um sinal de alerta para a participação em atividades remotas."},

	// Suporte digital ao estudo (computador e internet)
	{Topic: TopicInclusaoDigital, Trend: TrendDown, Title: "O que isso significa?", Body: header +
		"A Inclusão Plena (ter as duas coisas) caiu. Estamos criando uma geração **'Mobile-Only'**, o que pode limitar o desenvolvimento de habilidades técnicas avançadas."},
	{Topic: TopicInclusaoDigital, Trend: TrendUp, Title: "O que isso significa?", Body: header +
		"A Inclusão Plena (ter as duas coisas) **avançou**: mais estudantes contam com computador **e** internet para estudar em casa."},

	// ENEM
	{Topic: TopicENEM, Trend: TrendUp, Title: "Análise do Cenário", Body: header +
		"Surpreendentemente, **o desempenho subiu** mesmo com a queda dos computadores. Hipótese provável: o uso de **IA Generativa e Celulares** compensou a falta de hardware físico."},
	{Topic: TopicENEM, Trend: TrendDown, Title: "Análise do Cenário", Body: header +
		"A nota média **recuou** no período, acompanhando a perda de equipamentos adequados para o estudo em casa."},

	// IDEB
	{Topic: TopicIDEB, Trend: TrendUp, Title: "Análise do Cenário", Body: header +
		"A qualidade da educação básica medida pelo **IDEB** melhorou na média dos municípios."},
	{Topic: TopicIDEB, Trend: TrendDown, Title: "Análise do Cenário", Body: header +
		"O **IDEB** médio dos municípios caiu, indicando perda de fluxo ou de aprendizagem na educação básica."},

	// Correlação entre taxa e nota
	{Topic: TopicCorrelacao, Trend: TrendUp, Title: "Correlação", Body: "Em {{.AnoAlvo}}, a correlação de Pearson entre **{{.Indicador}}** e a nota média é de **{{.Magnitude}}**: municípios com mais suporte digital tendem a ter notas **maiores**."},
	{Topic: TopicCorrelacao, Trend: TrendDown, Title: "Correlação", Body: "Em {{.AnoAlvo}}, a correlação de Pearson entre **{{.Indicador}}** e a nota média é de **{{.Magnitude}}**: a relação é **inversa** entre os municípios."},
	{Topic: TopicCorrelacao, Trend: TrendFlat, Title: "Correlação", Body: "Em {{.AnoAlvo}}, **não há correlação linear** entre **{{.Indicador}}** e a nota média."},
	{Topic: TopicCorrelacao, Trend: TrendUndefined, Title: "Correlação", Body: "Em {{.AnoAlvo}}, não há pares suficientes para calcular a correlação entre **{{.Indicador}}** e a nota média."},

	// Hipótese da IA generativa
	{Topic: TopicIA, Trend: TrendAny, Title: "Hipótese da IA Generativa", Body: "Tentamos considerar o efeito revolucionário das Inteligências Artificiais Generativas, que poderiam ter influenciado a subida da nota, especialmente em redação, apesar da baixa adesão à dispositivos adequados."},

	// Textos genéricos
	{Topic: TopicAny, Trend: TrendFlat, Title: "O que isso significa?", Body: header +
		"O indicador ficou **estável** entre os dois anos."},
	{Topic: TopicAny, Trend: TrendUndefined, Title: "O que isso significa?", Body: headerUndefined},
	{Topic: TopicAny, Trend: TrendAny, Title: "O que isso significa?", Body: header},
}
