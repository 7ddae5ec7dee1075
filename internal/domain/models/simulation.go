package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Input field keys, in form order.
const (
	FieldStandardFeedCost  = "standard_feed_cost"
	FieldDryMatterIntake   = "dry_matter_intake"
	FieldFeedIntake        = "feed_intake"
	FieldCowCount          = "cow_count"
	FieldIntakeIncrease    = "intake_increase"
	FieldAdditiveFeedCost  = "additive_feed_cost"
	FieldDryMatterCost     = "dry_matter_cost"
	FieldCurrentMilkYield  = "current_milk_yield"
	FieldFatPremium        = "fat_premium"
	FieldMilkYieldIncrease = "milk_yield_increase"
	FieldMilkPrice         = "milk_price"
)

// InputFields lists every input key in the order the form and the report present them.
var InputFields = []string{
	FieldStandardFeedCost,
	FieldDryMatterIntake,
	FieldFeedIntake,
	FieldCowCount,
	FieldIntakeIncrease,
	FieldAdditiveFeedCost,
	FieldDryMatterCost,
	FieldCurrentMilkYield,
	FieldFatPremium,
	FieldMilkYieldIncrease,
	FieldMilkPrice,
}

// RawInputs carries the eleven form fields exactly as typed by the user.
type RawInputs struct {
	StandardFeedCost  string `form:"standard_feed_cost" json:"standard_feed_cost"`
	DryMatterIntake   string `form:"dry_matter_intake" json:"dry_matter_intake"`
	FeedIntake        string `form:"feed_intake" json:"feed_intake"`
	CowCount          string `form:"cow_count" json:"cow_count"`
	IntakeIncrease    string `form:"intake_increase" json:"intake_increase"`
	AdditiveFeedCost  string `form:"additive_feed_cost" json:"additive_feed_cost"`
	DryMatterCost     string `form:"dry_matter_cost" json:"dry_matter_cost"`
	CurrentMilkYield  string `form:"current_milk_yield" json:"current_milk_yield"`
	FatPremium        string `form:"fat_premium" json:"fat_premium"`
	MilkYieldIncrease string `form:"milk_yield_increase" json:"milk_yield_increase"`
	MilkPrice         string `form:"milk_price" json:"milk_price"`
}

// Values returns the raw strings keyed by field name.
func (r RawInputs) Values() map[string]string {
	return map[string]string{
		FieldStandardFeedCost:  r.StandardFeedCost,
		FieldDryMatterIntake:   r.DryMatterIntake,
		FieldFeedIntake:        r.FeedIntake,
		FieldCowCount:          r.CowCount,
		FieldIntakeIncrease:    r.IntakeIncrease,
		FieldAdditiveFeedCost:  r.AdditiveFeedCost,
		FieldDryMatterCost:     r.DryMatterCost,
		FieldCurrentMilkYield:  r.CurrentMilkYield,
		FieldFatPremium:        r.FatPremium,
		FieldMilkYieldIncrease: r.MilkYieldIncrease,
		FieldMilkPrice:         r.MilkPrice,
	}
}

// UnmarshalJSON accepts each field as a string or a bare JSON number. A number
// keeps its literal text so parsing matches the form path. null is blank.
func (r *RawInputs) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	values := make(map[string]string, len(fields))
	for key, msg := range fields {
		v, err := rawFieldValue(msg)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		values[key] = v
	}
	*r = RawInputsFromValues(values)
	return nil
}

func rawFieldValue(msg json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(msg)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("must be a string or a number: %w", err)
	}
	return n.String(), nil
}

// RawInputsFromValues is the inverse of Values. Unknown keys are ignored.
func RawInputsFromValues(values map[string]string) RawInputs {
	return RawInputs{
		StandardFeedCost:  values[FieldStandardFeedCost],
		DryMatterIntake:   values[FieldDryMatterIntake],
		FeedIntake:        values[FieldFeedIntake],
		CowCount:          values[FieldCowCount],
		IntakeIncrease:    values[FieldIntakeIncrease],
		AdditiveFeedCost:  values[FieldAdditiveFeedCost],
		DryMatterCost:     values[FieldDryMatterCost],
		CurrentMilkYield:  values[FieldCurrentMilkYield],
		FatPremium:        values[FieldFatPremium],
		MilkYieldIncrease: values[FieldMilkYieldIncrease],
		MilkPrice:         values[FieldMilkPrice],
	}
}

// Inputs is the parsed scenario.
type Inputs struct {
	StandardFeedCost  float64 `bson:"standard_feed_cost" json:"standard_feed_cost"`
	DryMatterIntake   float64 `bson:"dry_matter_intake" json:"dry_matter_intake"`
	FeedIntake        float64 `bson:"feed_intake" json:"feed_intake"`
	CowCount          int     `bson:"cow_count" json:"cow_count"`
	IntakeIncrease    float64 `bson:"intake_increase" json:"intake_increase"`
	AdditiveFeedCost  float64 `bson:"additive_feed_cost" json:"additive_feed_cost"`
	DryMatterCost     float64 `bson:"dry_matter_cost" json:"dry_matter_cost"`
	CurrentMilkYield  float64 `bson:"current_milk_yield" json:"current_milk_yield"`
	FatPremium        float64 `bson:"fat_premium" json:"fat_premium"`
	MilkYieldIncrease float64 `bson:"milk_yield_increase" json:"milk_yield_increase"`
	MilkPrice         float64 `bson:"milk_price" json:"milk_price"`
}

// Optional is a derived value that may be undefined when its denominator is not usable.
type Optional struct {
	Value float64 `bson:"value"`
	Valid bool    `bson:"valid"`
}

// Some wraps a defined value.
func Some(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

// None is the undefined marker.
func None() Optional {
	return Optional{}
}

// MarshalJSON renders undefined values as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON accepts a number or null.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Results holds every derived metric of a scenario. Values are per cow per day
// unless stated otherwise.
type Results struct {
	TotalCostStandard  float64  `bson:"total_cost_standard" json:"total_cost_standard"`
	TotalCostAdditive  float64  `bson:"total_cost_additive" json:"total_cost_additive"`
	CurrentEfficiency  Optional `bson:"current_efficiency" json:"current_efficiency"`
	NewMilkYield       float64  `bson:"new_milk_yield" json:"new_milk_yield"`
	NewEfficiency      Optional `bson:"new_efficiency" json:"new_efficiency"`
	MilkRevenue        float64  `bson:"milk_revenue" json:"milk_revenue"`
	FatRevenue         float64  `bson:"fat_revenue" json:"fat_revenue"`
	TotalRevenue       float64  `bson:"total_revenue" json:"total_revenue"`
	ExtraInvestment    float64  `bson:"extra_investment" json:"extra_investment"`
	ExtraDryMatterCost float64  `bson:"extra_dry_matter_cost" json:"extra_dry_matter_cost"`
	NetProfit          float64  `bson:"net_profit" json:"net_profit"`
	// BatchGain is the herd-wide daily gain.
	BatchGain float64 `bson:"batch_gain" json:"batch_gain"`
	// Breakeven values are millilitres of extra milk per cow per day.
	BreakevenCombined Optional `bson:"breakeven_combined" json:"breakeven_combined"`
	BreakevenMilkOnly Optional `bson:"breakeven_milk_only" json:"breakeven_milk_only"`
	ROI               Optional `bson:"roi" json:"roi"`
}

// Simulation is the outcome of one successful calculate action.
type Simulation struct {
	ID            string
	CreatedAt     time.Time
	Inputs        Inputs
	Results       Results
	Dashboard     Dashboard
	Report        Report
	Document      []byte
	DownloadToken string
	ExpiresAt     time.Time
}

// SimulationRecord is the archived form of a simulation.
type SimulationRecord struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Renderer  string    `bson:"renderer" json:"renderer"`
	Inputs    Inputs    `bson:"inputs" json:"inputs"`
	Results   Results   `bson:"results" json:"results"`
}
