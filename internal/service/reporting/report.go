// Package reporting formats simulation results and renders them as PDF reports.
package reporting

import (
	"strconv"
	"time"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

// InputRows lists the formatted inputs in form order.
func InputRows(in models.Inputs, labels Labels) []models.ReportRow {
	values := map[string]string{
		models.FieldStandardFeedCost:  FormatBRL(in.StandardFeedCost),
		models.FieldDryMatterIntake:   formatQuantity(in.DryMatterIntake, labels.DayUnit),
		models.FieldFeedIntake:        formatQuantity(in.FeedIntake, labels.DayUnit),
		models.FieldCowCount:          strconv.Itoa(in.CowCount),
		models.FieldIntakeIncrease:    formatQuantity(in.IntakeIncrease, labels.DayUnit),
		models.FieldAdditiveFeedCost:  FormatBRL(in.AdditiveFeedCost),
		models.FieldDryMatterCost:     FormatBRL(in.DryMatterCost),
		models.FieldCurrentMilkYield:  formatQuantity(in.CurrentMilkYield, labels.DayUnit),
		models.FieldFatPremium:        FormatBRL(in.FatPremium),
		models.FieldMilkYieldIncrease: formatQuantity(in.MilkYieldIncrease, labels.DayUnit),
		models.FieldMilkPrice:         FormatBRL(in.MilkPrice),
	}

	rows := make([]models.ReportRow, 0, len(models.InputFields))
	for _, field := range models.InputFields {
		rows = append(rows, models.ReportRow{Label: labels.Fields[field].Report, Value: values[field]})
	}
	return rows
}

// OutputRows lists the formatted metrics in dashboard order, column after column.
func OutputRows(res models.Results, labels Labels) []models.ReportRow {
	values := metricValues(res, labels, true)

	var rows []models.ReportRow
	for _, column := range DashboardColumns {
		for _, key := range column {
			rows = append(rows, models.ReportRow{Label: labels.Metrics[key].Report, Value: values[key]})
		}
	}
	return rows
}

// BuildDashboard groups the on-screen metrics into their display columns.
func BuildDashboard(res models.Results, labels Labels) models.Dashboard {
	values := metricValues(res, labels, false)

	columns := make([][]models.Metric, 0, len(DashboardColumns))
	for _, keys := range DashboardColumns {
		column := make([]models.Metric, 0, len(keys))
		for _, key := range keys {
			label := labels.Metrics[key]
			column = append(column, models.Metric{Key: key, Label: label.Screen, Help: label.Help, Value: values[key]})
		}
		columns = append(columns, column)
	}
	return models.Dashboard{Columns: columns}
}

// BuildReport assembles the document content. generatedAt should already be
// in the zone the timestamp line is meant to show.
func BuildReport(in models.Inputs, res models.Results, labels Labels, generatedAt time.Time) models.Report {
	return models.Report{
		Title:       labels.ReportTitle,
		GeneratedAt: generatedAt,
		Timestamp:   labels.TimestampPrefix + ": " + generatedAt.Format(labels.TimestampLayout),
		Inputs: models.ReportSection{
			Title:       labels.InputsTitle,
			LabelHeader: labels.ParameterHeader,
			ValueHeader: labels.ValueHeader,
			Rows:        InputRows(in, labels),
		},
		Outputs: models.ReportSection{
			Title:       labels.OutputsTitle,
			LabelHeader: labels.MetricHeader,
			ValueHeader: labels.ValueHeader,
			Rows:        OutputRows(res, labels),
		},
		Disclaimer: labels.Disclaimer,
	}
}

// metricValues formats every metric. The report variant carries units on
// yield and breakeven values; the screen variant shows bare numbers.
func metricValues(res models.Results, labels Labels, report bool) map[string]string {
	yield := formatFixed(res.NewMilkYield, 2)
	breakevenSuffix := ""
	if report {
		yield = formatQuantity(res.NewMilkYield, labels.DayUnit)
		breakevenSuffix = " ml"
	}

	return map[string]string{
		MetricTotalCostStandard:  FormatBRL(res.TotalCostStandard),
		MetricTotalCostAdditive:  FormatBRL(res.TotalCostAdditive),
		MetricCurrentEfficiency:  formatOptional(res.CurrentEfficiency, 2, "", labels.Undefined),
		MetricNewMilkYield:       yield,
		MetricNewEfficiency:      formatOptional(res.NewEfficiency, 2, "", labels.Undefined),
		MetricMilkRevenue:        FormatBRL(res.MilkRevenue),
		MetricFatRevenue:         FormatBRL(res.FatRevenue),
		MetricTotalRevenue:       FormatBRL(res.TotalRevenue),
		MetricExtraInvestment:    FormatBRL(res.ExtraInvestment),
		MetricExtraDryMatterCost: FormatBRL(res.ExtraDryMatterCost),
		MetricNetProfit:          FormatBRL(res.NetProfit),
		MetricBatchGain:          FormatBRL(res.BatchGain),
		MetricBreakevenCombined:  formatOptional(res.BreakevenCombined, 0, breakevenSuffix, labels.Undefined),
		MetricBreakevenMilkOnly:  formatOptional(res.BreakevenMilkOnly, 0, breakevenSuffix, labels.Undefined),
		MetricROI:                formatOptional(res.ROI, 2, "", labels.Undefined),
	}
}
