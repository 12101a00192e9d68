package kpi

// Dataset kinds routed per location.
const (
	DatasetEOD   = "eod"   // end-of-day billing sheet
	DatasetFront = "front" // front-desk KPI sheet
)

// ComponentSpec names one raw column feeding a KPI. Variants are acceptable
// raw header spellings, current schema first, legacy last. Negate subtracts
// the component inside an additive merge.
type ComponentSpec struct {
	Logical  string
	Variants []string
	Negate   bool
}

// Definition describes how one KPI is sourced and computed. The variant
// lists are data, not code: a new round of sheet-header drift is handled by
// appending spellings here.
type Definition struct {
	Name         string
	Kind         MetricKind
	Dataset      string
	DateVariants []string

	// Components feeds AdditiveAmount and CumulativeCount KPIs.
	Components []ComponentSpec

	// Numerator and Denominator feed RatioPair KPIs. Multi-column sides are
	// merged additively before the ratio is taken.
	Numerator   []ComponentSpec
	Denominator []ComponentSpec
}

var eodDateVariants = []string{"Submission Date", "Date", "date"}
var frontDateVariants = []string{"Submission Date", "Date", "date"}

// Definitions returns the five KPI definitions computed per location.
func Definitions() []Definition {
	return []Definition{
		{
			Name:         "production",
			Kind:         AdditiveAmount,
			Dataset:      DatasetEOD,
			DateVariants: eodDateVariants,
			Components: []ComponentSpec{
				{Logical: "production", Variants: []string{"Total Production Today", "Production Today", "Production"}},
				{Logical: "adjustments", Variants: []string{"Adjustments Today", "Adjustments"}},
				{Logical: "writeoffs", Variants: []string{"Write-offs Today", "Write Offs Today", "Writeoffs"}},
			},
		},
		{
			Name:         "collection_rate",
			Kind:         RatioPair,
			Dataset:      DatasetEOD,
			DateVariants: eodDateVariants,
			Numerator: []ComponentSpec{
				{Logical: "collections", Variants: []string{"Total Collections Today", "Collections Today", "Collections"}},
			},
			Denominator: []ComponentSpec{
				{Logical: "production", Variants: []string{"Total Production Today", "Production Today", "Production"}},
			},
		},
		{
			Name:         "new_patients",
			Kind:         CumulativeCount,
			Dataset:      DatasetEOD,
			DateVariants: eodDateVariants,
			Components: []ComponentSpec{
				{Logical: "new_patients_mtd", Variants: []string{"New Patients - Total Month to Date", "New Patients MTD", "New Patients Month to Date"}},
			},
		},
		{
			Name:         "case_acceptance",
			Kind:         RatioPair,
			Dataset:      DatasetFront,
			DateVariants: frontDateVariants,
			Numerator: []ComponentSpec{
				{Logical: "treatments_scheduled", Variants: []string{"Treatments Scheduled", "treatments_scheduled"}},
				{Logical: "same_day_treatment", Variants: []string{"Same Day Treatment", "$ Same Day Treatment", "same_day_treatment"}},
			},
			Denominator: []ComponentSpec{
				{Logical: "treatments_presented", Variants: []string{"Treatments Presented", "treatments_presented"}},
			},
		},
		{
			Name:         "hygiene_reappointment",
			Kind:         RatioPair,
			Dataset:      DatasetFront,
			DateVariants: frontDateVariants,
			Numerator: []ComponentSpec{
				{Logical: "hygiene_total", Variants: []string{"Total hygiene Appointments", "Total Hygiene Appointments", "total_hygiene_appointments"}},
				{Logical: "hygiene_not_reappointed", Variants: []string{"Number of patients NOT reappointed?", "Patients Not Reappointed", "patients_not_reappointed"}, Negate: true},
			},
			Denominator: []ComponentSpec{
				{Logical: "hygiene_total", Variants: []string{"Total hygiene Appointments", "Total Hygiene Appointments", "total_hygiene_appointments"}},
			},
		},
	}
}
