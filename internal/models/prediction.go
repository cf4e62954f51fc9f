// internal/models/prediction.go
package models

type EmploymentPoint struct {
	Period           string  `json:"period"`
	EmploymentRate   float64 `json:"employment_rate"`
	UnemploymentRate float64 `json:"unemployment_rate"`
	YouthPopulation  int     `json:"youth_population"`
	Employed         int     `json:"employed"`
	Unemployed       int     `json:"unemployed"`
}

type SalaryPoint struct {
	Period      string `json:"period"`
	TotalCount  int    `json:"total_count"`
	Under50     int    `json:"under_50"`
	Range50100  int    `json:"range_50_100"`
	Range100150 int    `json:"range_100_150"`
	Range150200 int    `json:"range_150_200"`
	Range200300 int    `json:"range_200_300"`
	Over300     int    `json:"over_300"`
}

type UnemploymentDurationPoint struct {
	Period       string `json:"period"`
	Total        int    `json:"total"`
	Under6Months int    `json:"under_6months"`
	Months6To12  int    `json:"months_6_12"`
	Years1To2    int    `json:"years_1_2"`
	Years2To3    int    `json:"years_2_3"`
	Over3Years   int    `json:"over_3years"`
}

type EmploymentDurationPoint struct {
	Period            string `json:"period"`
	TotalExperienced  int    `json:"total_experienced"`
	AvgDurationMonths int    `json:"avg_duration_months"`
	Under3Months      int    `json:"under_3months"`
	Months3To6        int    `json:"months_3_6"`
	Months6To12       int    `json:"months_6_12"`
	Years1To2         int    `json:"years_1_2"`
	Years2To3         int    `json:"years_2_3"`
	Over3Years        int    `json:"over_3years"`
}

type TrendDataSummary struct {
	EmploymentPoints         int `json:"employment_points"`
	SalaryPoints             int `json:"salary_points"`
	UnemploymentPoints       int `json:"unemployment_points"`
	EmploymentDurationPoints int `json:"employment_duration_points"`
}

// TrendAnalysisResponse carries the model's prediction document as decoded JSON.
type TrendAnalysisResponse struct {
	Success     bool                   `json:"success"`
	Data        map[string]interface{} `json:"data,omitempty"`
	DataSummary *TrendDataSummary      `json:"data_summary,omitempty"`
	LastPeriod  *string                `json:"last_period"`
	Error       string                 `json:"error,omitempty"`
	Details     string                 `json:"details,omitempty"`
}
