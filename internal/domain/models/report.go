package models

import "time"

// ReportRow is one label/value line of a report table.
type ReportRow struct {
	Label string
	Value string
}

// ReportSection is a titled two-column table.
type ReportSection struct {
	Title       string
	LabelHeader string
	ValueHeader string
	Rows        []ReportRow
}

// Report is the renderer-agnostic content of the downloadable document.
type Report struct {
	Title       string
	GeneratedAt time.Time
	// Timestamp is the already formatted generation line.
	Timestamp  string
	Inputs     ReportSection
	Outputs    ReportSection
	Disclaimer string
}

// Metric is one on-screen result tile.
type Metric struct {
	Key   string
	Label string
	Help  string
	Value string
}

// Dashboard groups the on-screen metrics into display columns.
type Dashboard struct {
	Columns [][]Metric
}
