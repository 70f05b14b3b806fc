package api

// SaveRecordRequest creates a record, or updates one when ID is set.
type SaveRecordRequest struct {
	ID         string `json:"id,omitempty"`
	RecordDate string `json:"record_date"`
	Measurements
	Locale string `json:"locale,omitempty"`
}

type SaveRecordResponse struct {
	Record *Record `json:"record"`
}

// ListRecordsRequest lists the caller's records; Year 0 means all years.
type ListRecordsRequest struct {
	Year   int    `json:"year,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type ListRecordsResponse struct {
	Records []*Record `json:"records"`
	Years   []int     `json:"years"`
}

type GetRecordRequest struct {
	ID     string `json:"id"`
	Locale string `json:"locale,omitempty"`
}

type GetRecordResponse struct {
	Record *Record `json:"record"`
}

type DeleteRecordRequest struct {
	ID string `json:"id"`
}

type DeleteRecordResponse struct{}

type GetDashboardRequest struct {
	Locale string `json:"locale,omitempty"`
}

// GetDashboardResponse summarizes the caller's latest state. Latest is nil
// when there are no records.
type GetDashboardResponse struct {
	Latest              *Record  `json:"latest,omitempty"`
	Previous            *Record  `json:"previous,omitempty"`
	ChangesFromPrevious []*Delta `json:"changes_from_previous"`
	ChangesFromFirst    []*Delta `json:"changes_from_first"`
	RecordCount         int      `json:"record_count"`
	Years               []int    `json:"years"`
	DaysSinceLastRecord int      `json:"days_since_last_record"`
	Inactive            bool     `json:"inactive"`
}

// ComputeMetricsRequest previews derived metrics for an unsaved sample.
type ComputeMetricsRequest struct {
	Measurements
	Profile
	Locale string `json:"locale,omitempty"`
}

type ComputeMetricsResponse struct {
	Metrics *DerivedMetrics `json:"metrics"`
}

type AssessRequest struct {
	// Kind is "latest" or "general".
	Kind   string `json:"kind"`
	Locale string `json:"locale,omitempty"`
}

type AssessResponse struct {
	Kind       string      `json:"kind"`
	Assessment *Assessment `json:"assessment"`
}
