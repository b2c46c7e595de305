package domain

// Ranges holds the min/max bounds that drive every scale of a chart.
type Ranges struct {
	MinYear  int     `json:"min_year"`
	MaxYear  int     `json:"max_year"`
	MinMonth int     `json:"min_month"`
	MaxMonth int     `json:"max_month"`
	MinTemp  float64 `json:"min_temp"`
	MaxTemp  float64 `json:"max_temp"`
}

// YearCount is the number of distinct year columns in the chart.
func (r Ranges) YearCount() int {
	return r.MaxYear - r.MinYear + 1
}

// ComputeRanges derives year, month, and absolute temperature bounds in a
// single pass over the records.
func ComputeRanges(ds Dataset) (Ranges, error) {
	if len(ds.Records) == 0 {
		return Ranges{}, ErrEmptyDataset
	}

	first := ds.Records[0]
	r := Ranges{
		MinYear:  first.Year,
		MaxYear:  first.Year,
		MinMonth: first.Month,
		MaxMonth: first.Month,
		MinTemp:  first.Temperature(ds.BaseTemperature),
		MaxTemp:  first.Temperature(ds.BaseTemperature),
	}
	for _, rec := range ds.Records[1:] {
		r.MinYear = min(r.MinYear, rec.Year)
		r.MaxYear = max(r.MaxYear, rec.Year)
		r.MinMonth = min(r.MinMonth, rec.Month)
		r.MaxMonth = max(r.MaxMonth, rec.Month)
		t := rec.Temperature(ds.BaseTemperature)
		r.MinTemp = min(r.MinTemp, t)
		r.MaxTemp = max(r.MaxTemp, t)
	}
	return r, nil
}
