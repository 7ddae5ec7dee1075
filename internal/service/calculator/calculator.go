// Package calculator turns the eleven scenario inputs into the derived
// cost/benefit metrics of feeding the Inmilk additive.
package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

var (
	errNotFinite   = errors.New("value is not finite")
	errHexNotation = errors.New("hexadecimal notation is not accepted")
	errCowRange    = errors.New("cow count is out of range")
)

// Calculate parses the raw form values and computes the results.
func Calculate(raw models.RawInputs) (models.Inputs, models.Results, error) {
	in, err := Parse(raw)
	if err != nil {
		return models.Inputs{}, models.Results{}, err
	}
	res := Compute(in)
	if metric, ok := firstNonFinite(res); ok {
		return models.Inputs{}, models.Results{}, &RangeError{Metric: metric}
	}
	return in, res, nil
}

// Parse validates presence of every field, then reads each one as a number.
// A comma is accepted as decimal separator.
func Parse(raw models.RawInputs) (models.Inputs, error) {
	values := raw.Values()

	var missing []string
	for _, field := range models.InputFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return models.Inputs{}, &ValidationError{Fields: missing}
	}

	parsed := make(map[string]float64, len(models.InputFields))
	for _, field := range models.InputFields {
		v, err := ParseNumber(values[field])
		if err != nil {
			return models.Inputs{}, &ParseError{Field: field, Value: values[field], Err: err}
		}
		parsed[field] = v
	}

	cows, err := cowCount(parsed[models.FieldCowCount])
	if err != nil {
		return models.Inputs{}, &ParseError{Field: models.FieldCowCount, Value: values[models.FieldCowCount], Err: err}
	}

	return models.Inputs{
		StandardFeedCost:  parsed[models.FieldStandardFeedCost],
		DryMatterIntake:   parsed[models.FieldDryMatterIntake],
		FeedIntake:        parsed[models.FieldFeedIntake],
		CowCount:          cows,
		IntakeIncrease:    parsed[models.FieldIntakeIncrease],
		AdditiveFeedCost:  parsed[models.FieldAdditiveFeedCost],
		DryMatterCost:     parsed[models.FieldDryMatterCost],
		CurrentMilkYield:  parsed[models.FieldCurrentMilkYield],
		FatPremium:        parsed[models.FieldFatPremium],
		MilkYieldIncrease: parsed[models.FieldMilkYieldIncrease],
		MilkPrice:         parsed[models.FieldMilkPrice],
	}, nil
}

// cowCount truncates toward zero. On 64-bit platforms float64(math.MaxInt)
// rounds up to 2^63, so the upper bound is exclusive.
func cowCount(v float64) (int, error) {
	t := math.Trunc(v)
	if t < float64(math.MinInt) || t >= float64(math.MaxInt) {
		return 0, errCowRange
	}
	return int(t), nil
}

// ParseNumber reads a locale formatted decimal. Every comma becomes a period,
// so "1,5" and "1.5" are the same value while "1.234,5" is rejected.
// Hexadecimal literals and digit separators are rejected.
func ParseNumber(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	unsigned := strings.TrimLeft(normalized, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, errHexNotation
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// Compute applies the cost/benefit formulas. Divisions whose denominator is
// zero, or not positive for the breakeven and ROI ratios, yield an undefined value.
func Compute(in models.Inputs) models.Results {
	var r models.Results

	r.TotalCostStandard = in.FeedIntake * in.StandardFeedCost
	r.TotalCostAdditive = in.FeedIntake * in.AdditiveFeedCost

	if in.DryMatterIntake != 0 {
		r.CurrentEfficiency = models.Some(in.CurrentMilkYield / in.DryMatterIntake)
	}

	r.NewMilkYield = in.CurrentMilkYield + in.MilkYieldIncrease
	if intake := in.DryMatterIntake + in.IntakeIncrease; intake != 0 {
		r.NewEfficiency = models.Some(r.NewMilkYield / intake)
	}

	r.MilkRevenue = in.MilkPrice * in.MilkYieldIncrease
	r.FatRevenue = in.FatPremium * r.NewMilkYield
	r.TotalRevenue = r.MilkRevenue + r.FatRevenue

	r.ExtraInvestment = r.TotalCostAdditive - r.TotalCostStandard
	r.ExtraDryMatterCost = in.IntakeIncrease * in.DryMatterCost
	r.NetProfit = r.TotalRevenue - r.ExtraInvestment - r.ExtraDryMatterCost
	r.BatchGain = r.NetProfit * float64(in.CowCount)

	extraCost := r.ExtraInvestment + r.ExtraDryMatterCost
	if price := in.MilkPrice + in.FatPremium; price > 0 {
		r.BreakevenCombined = models.Some(extraCost / price * 1000)
	}
	if in.MilkPrice > 0 {
		r.BreakevenMilkOnly = models.Some(extraCost / in.MilkPrice * 1000)
	}
	if extraCost > 0 {
		r.ROI = models.Some(r.TotalRevenue / extraCost)
	}

	return r
}

// firstNonFinite returns the key of the first metric that overflowed.
func firstNonFinite(r models.Results) (string, bool) {
	metrics := []struct {
		key   string
		value float64
	}{
		{"total_cost_standard", r.TotalCostStandard},
		{"total_cost_additive", r.TotalCostAdditive},
		{"current_efficiency", r.CurrentEfficiency.Value},
		{"new_milk_yield", r.NewMilkYield},
		{"new_efficiency", r.NewEfficiency.Value},
		{"milk_revenue", r.MilkRevenue},
		{"fat_revenue", r.FatRevenue},
		{"total_revenue", r.TotalRevenue},
		{"extra_investment", r.ExtraInvestment},
		{"extra_dry_matter_cost", r.ExtraDryMatterCost},
		{"net_profit", r.NetProfit},
		{"batch_gain", r.BatchGain},
		{"breakeven_combined", r.BreakevenCombined.Value},
		{"breakeven_milk_only", r.BreakevenMilkOnly.Value},
		{"roi", r.ROI.Value},
	}
	for _, m := range metrics {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return m.key, true
		}
	}
	return "", false
}
