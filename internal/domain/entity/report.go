package entity

import "time"

// RatePivotRow carries one account's rate aggregates serialized into a single
// delimited field: `RateCode,Units,Rate,Money` per aggregate, comma-joined,
// rate values at six fractional digits and money at two.
type RatePivotRow struct {
	Year         int    `json:"year"`
	Period       int    `json:"period"`
	AccountCode  string `json:"account_code"`
	NumRateCodes int    `json:"num_rate_codes"`
	RateList     string `json:"rate_list"`
}

// IdentifierPivotRow carries the identifiers of one detail line serialized as
// `Name,"Value"` pairs, comma-joined. Values are quoted with literal double
// quotes and are not escaped: a value containing the quote or separator
// character makes the field unparsable, matching the source system.
type IdentifierPivotRow struct {
	LoadTrackingUID int64  `json:"load_tracking_uid"`
	DetailUID       int64  `json:"detail_uid"`
	DetailLine      int    `json:"detail_line"`
	NumIdentifiers  int    `json:"num_identifiers"`
	IdentifierList  string `json:"identifier_list"`
}

// ReportRow is one flattened output row per (account, detail line).
// AccountCode is stored already wrapped in literal double quotes, the shape
// the downstream end-of-month loader expects.
type ReportRow struct {
	Year           int       `json:"year"`
	Period         int       `json:"period"`
	AccountCode    string    `json:"account_code"`
	UsageStartDate time.Time `json:"usage_start_date"`
	UsageEndDate   time.Time `json:"usage_end_date"`
	DetailLine     int       `json:"detail_line"`
	NumRateCodes   int       `json:"num_rate_codes"`
	RateList       string    `json:"rate_list"`
	NumIdentifiers int       `json:"num_identifiers"`
	IdentifierList string    `json:"identifier_list"`
}
