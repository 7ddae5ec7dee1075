package reporting

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

// Metric keys, matching the JSON names of models.Results.
const (
	MetricTotalCostStandard  = "total_cost_standard"
	MetricTotalCostAdditive  = "total_cost_additive"
	MetricCurrentEfficiency  = "current_efficiency"
	MetricNewMilkYield       = "new_milk_yield"
	MetricNewEfficiency      = "new_efficiency"
	MetricMilkRevenue        = "milk_revenue"
	MetricFatRevenue         = "fat_revenue"
	MetricTotalRevenue       = "total_revenue"
	MetricExtraInvestment    = "extra_investment"
	MetricExtraDryMatterCost = "extra_dry_matter_cost"
	MetricNetProfit          = "net_profit"
	MetricBatchGain          = "batch_gain"
	MetricBreakevenCombined  = "breakeven_combined"
	MetricBreakevenMilkOnly  = "breakeven_milk_only"
	MetricROI                = "roi"
)

// DashboardColumns is the on-screen grouping of metrics. The report's
// Outputs table lists the same keys column after column.
var DashboardColumns = [][]string{
	{MetricTotalCostStandard, MetricNewMilkYield, MetricExtraDryMatterCost, MetricMilkRevenue, MetricNetProfit},
	{MetricTotalCostAdditive, MetricCurrentEfficiency, MetricBreakevenCombined, MetricFatRevenue, MetricROI},
	{MetricExtraInvestment, MetricNewEfficiency, MetricBreakevenMilkOnly, MetricTotalRevenue, MetricBatchGain},
}

// FieldLabel describes one input field.
type FieldLabel struct {
	Form   string
	Report string
	Help   string
}

// MetricLabel describes one derived metric.
type MetricLabel struct {
	Screen string
	Report string
	Help   string
}

// Labels is every user-facing string of the page and the report for one language.
type Labels struct {
	Language string

	PageTitle     string
	InputsTitle   string
	OutputsTitle  string
	CalculateText string
	DownloadText  string
	MissingField  string
	InvalidNumber string

	ReportTitle     string
	TimestampPrefix string
	TimestampLayout string
	ParameterHeader string
	MetricHeader    string
	ValueHeader     string
	Disclaimer      string
	DayUnit         string
	Undefined       string

	Fields  map[string]FieldLabel
	Metrics map[string]MetricLabel
}

var catalog = map[string]Labels{
	"pt": {
		Language:        "pt",
		PageTitle:       "Calculadora de Custo-Benefício Inmilk",
		InputsTitle:     "Entradas",
		OutputsTitle:    "Saídas",
		CalculateText:   "Calcular",
		DownloadText:    "Baixar Relatório em PDF",
		MissingField:    "Por favor, preencha todos os campos antes de calcular.",
		InvalidNumber:   "Certifique-se de usar apenas números válidos nos campos.",
		ReportTitle:     "Simulação de Custo-Benefício Inmilk",
		TimestampPrefix: "Data de geração",
		TimestampLayout: "02/01/2006 15:04",
		ParameterHeader: "Parâmetro",
		MetricHeader:    "Métrica",
		ValueHeader:     "Valor",
		Disclaimer:      "Disclaimer: Projeção sujeita a fatores externos como manejo, saúde e clima.",
		DayUnit:         "kg/dia",
		Undefined:       "-",
		Fields: map[string]FieldLabel{
			models.FieldStandardFeedCost:  {Form: "Custo da ração padrão (R$)", Report: "Custo ração padrão", Help: "Custo unitário da ração sem Inmilk (R$ por kg)."},
			models.FieldDryMatterIntake:   {Form: "Consumo de Matéria Seca (kg/dia)", Report: "Consumo MS", Help: "Matéria seca consumida por vaca/dia antes do ajuste."},
			models.FieldFeedIntake:        {Form: "Consumo de ração por vaca/dia (kg)", Report: "Consumo ração", Help: "Ração consumida por vaca/dia."},
			models.FieldCowCount:          {Form: "Número de vacas em lactação", Report: "Número vacas", Help: "Quantidade de vacas em lactação."},
			models.FieldIntakeIncrease:    {Form: "Aumento de ingestão MS (kg/dia)", Report: "Aumento ingestão MS", Help: "Acréscimo de MS/dia com Inmilk."},
			models.FieldAdditiveFeedCost:  {Form: "Custo da ração Inmilk (R$)", Report: "Custo ração Inmilk", Help: "Custo da ração com Inmilk."},
			models.FieldDryMatterCost:     {Form: "Custo MS (R$/kg)", Report: "Custo MS", Help: "Custo da matéria seca por kg."},
			models.FieldCurrentMilkYield:  {Form: "Produção de leite atual (kg/dia)", Report: "Produção atual", Help: "Produção média antes do Inmilk."},
			models.FieldFatPremium:        {Form: "Aumento gordura (R$/kg leite)", Report: "Aumento gordura", Help: "Receita extra por teor de gordura."},
			models.FieldMilkYieldIncrease: {Form: "Incremento de leite esperado (kg/dia)", Report: "Incremento leite", Help: "Ganho de leite/dia com Inmilk."},
			models.FieldMilkPrice:         {Form: "Preço do leite (R$/kg)", Report: "Preço leite", Help: "Preço de venda do leite."},
		},
		Metrics: map[string]MetricLabel{
			MetricTotalCostStandard:  {Screen: "Custo total ração padrão", Report: "Custo total ração padrão", Help: "Gasto diário em ração antiga por vaca."},
			MetricNewMilkYield:       {Screen: "Produção com Inmilk (kg/dia)", Report: "Produção com Inmilk", Help: "Produção diária prevista com Inmilk."},
			MetricExtraDryMatterCost: {Screen: "Custo adicional MS", Report: "Custo adicional MS", Help: "Custo extra diário de MS por vaca."},
			MetricMilkRevenue:        {Screen: "Receita adicional (leite)", Report: "Receita adicional (leite)", Help: "Receita extra por aumento de volume de leite."},
			MetricNetProfit:          {Screen: "Lucro líquido", Report: "Lucro líquido", Help: "Ganho líquido diário por vaca."},
			MetricTotalCostAdditive:  {Screen: "Custo total ração Inmilk", Report: "Custo total ração Inmilk", Help: "Gasto diário em ração com Inmilk por vaca."},
			MetricCurrentEfficiency:  {Screen: "Eficiência atual (kg leite/kg MS)", Report: "Eficiência atual", Help: "Eficiência antes de Inmilk."},
			MetricBreakevenCombined:  {Screen: "Ponto de equilíbrio (gordura + leite) vaca/dia", Report: "Ponto equilíbrio (gordura+leite)", Help: "Mililitros de leite extra considerando receita de gordura."},
			MetricFatRevenue:         {Screen: "Receita adicional (gordura)", Report: "Receita adicional (gordura)", Help: "Receita extra por maior teor de gordura."},
			MetricROI:                {Screen: "ROI (x vezes)", Report: "ROI", Help: "Multiplicador retorno."},
			MetricExtraInvestment:    {Screen: "Investimento adicional", Report: "Investimento adicional", Help: "Diferença de custo de ração por vaca."},
			MetricNewEfficiency:      {Screen: "Eficiência Inmilk (kg leite/kg MS)", Report: "Eficiência Inmilk", Help: "Eficiência com Inmilk."},
			MetricBreakevenMilkOnly:  {Screen: "Ponto de equilíbrio (ml leite)", Report: "Ponto equilíbrio (leite)", Help: "Leite extra para cobrir custos."},
			MetricTotalRevenue:       {Screen: "Receita total adicional", Report: "Receita total adicional", Help: "Soma receitas extras."},
			MetricBatchGain:          {Screen: "Ganho total do lote", Report: "Ganho total do lote", Help: "Ganho líquido do lote."},
		},
	},
	"en": {
		Language:        "en",
		PageTitle:       "Inmilk Cost-Benefit Calculator",
		InputsTitle:     "Inputs",
		OutputsTitle:    "Outputs",
		CalculateText:   "Calculate",
		DownloadText:    "Download PDF report",
		MissingField:    "Please fill in every field before calculating.",
		InvalidNumber:   "Make sure every field contains a valid number.",
		ReportTitle:     "Inmilk Cost-Benefit Simulation",
		TimestampPrefix: "Generated on",
		TimestampLayout: "02/01/2006 15:04",
		ParameterHeader: "Parameter",
		MetricHeader:    "Metric",
		ValueHeader:     "Value",
		Disclaimer:      "Disclaimer: projection subject to external factors such as management, health and weather.",
		DayUnit:         "kg/day",
		Undefined:       "-",
		Fields: map[string]FieldLabel{
			models.FieldStandardFeedCost:  {Form: "Standard feed cost (R$)", Report: "Standard feed cost", Help: "Unit cost of feed without Inmilk (R$ per kg)."},
			models.FieldDryMatterIntake:   {Form: "Dry matter intake (kg/day)", Report: "Dry matter intake", Help: "Dry matter eaten per cow per day before the change."},
			models.FieldFeedIntake:        {Form: "Feed intake per cow/day (kg)", Report: "Feed intake", Help: "Feed eaten per cow per day."},
			models.FieldCowCount:          {Form: "Lactating cows", Report: "Cows", Help: "Number of lactating cows."},
			models.FieldIntakeIncrease:    {Form: "Dry matter intake increase (kg/day)", Report: "Intake increase", Help: "Extra dry matter per day with Inmilk."},
			models.FieldAdditiveFeedCost:  {Form: "Inmilk feed cost (R$)", Report: "Inmilk feed cost", Help: "Cost of feed with Inmilk."},
			models.FieldDryMatterCost:     {Form: "Dry matter cost (R$/kg)", Report: "Dry matter cost", Help: "Cost of dry matter per kg."},
			models.FieldCurrentMilkYield:  {Form: "Current milk yield (kg/day)", Report: "Current milk yield", Help: "Average yield before Inmilk."},
			models.FieldFatPremium:        {Form: "Fat premium (R$/kg milk)", Report: "Fat premium", Help: "Extra revenue from fat content."},
			models.FieldMilkYieldIncrease: {Form: "Expected milk increase (kg/day)", Report: "Milk increase", Help: "Milk gained per day with Inmilk."},
			models.FieldMilkPrice:         {Form: "Milk price (R$/kg)", Report: "Milk price", Help: "Milk sale price."},
		},
		Metrics: map[string]MetricLabel{
			MetricTotalCostStandard:  {Screen: "Standard feed total cost", Report: "Standard feed total cost", Help: "Daily spend on the old feed per cow."},
			MetricNewMilkYield:       {Screen: "Yield with Inmilk (kg/day)", Report: "Yield with Inmilk", Help: "Expected daily yield with Inmilk."},
			MetricExtraDryMatterCost: {Screen: "Extra dry matter cost", Report: "Extra dry matter cost", Help: "Extra daily dry matter cost per cow."},
			MetricMilkRevenue:        {Screen: "Extra revenue (milk)", Report: "Extra revenue (milk)", Help: "Extra revenue from higher milk volume."},
			MetricNetProfit:          {Screen: "Net profit", Report: "Net profit", Help: "Net daily gain per cow."},
			MetricTotalCostAdditive:  {Screen: "Inmilk feed total cost", Report: "Inmilk feed total cost", Help: "Daily spend on Inmilk feed per cow."},
			MetricCurrentEfficiency:  {Screen: "Current efficiency (kg milk/kg DM)", Report: "Current efficiency", Help: "Efficiency before Inmilk."},
			MetricBreakevenCombined:  {Screen: "Breakeven (fat + milk) cow/day", Report: "Breakeven (fat+milk)", Help: "Extra millilitres of milk counting fat revenue."},
			MetricFatRevenue:         {Screen: "Extra revenue (fat)", Report: "Extra revenue (fat)", Help: "Extra revenue from higher fat content."},
			MetricROI:                {Screen: "ROI (x times)", Report: "ROI", Help: "Return multiplier."},
			MetricExtraInvestment:    {Screen: "Extra investment", Report: "Extra investment", Help: "Feed cost difference per cow."},
			MetricNewEfficiency:      {Screen: "Inmilk efficiency (kg milk/kg DM)", Report: "Inmilk efficiency", Help: "Efficiency with Inmilk."},
			MetricBreakevenMilkOnly:  {Screen: "Breakeven (ml milk)", Report: "Breakeven (milk)", Help: "Extra milk needed to cover costs."},
			MetricTotalRevenue:       {Screen: "Total extra revenue", Report: "Total extra revenue", Help: "Sum of extra revenues."},
			MetricBatchGain:          {Screen: "Herd total gain", Report: "Herd total gain", Help: "Net gain of the whole herd."},
		},
	},
}

// Catalog returns the labels for a language code ("pt" or "en").
func Catalog(language string) (Labels, error) {
	labels, ok := catalog[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return Labels{}, fmt.Errorf("unsupported report language %q", language)
	}
	return labels, nil
}

// MustCatalog is Catalog for known-good language codes.
func MustCatalog(language string) Labels {
	labels, err := Catalog(language)
	if err != nil {
		panic(err)
	}
	return labels
}
