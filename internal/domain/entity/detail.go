package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailRecord is one transaction-level line backing a summary charge,
// identified by (DetailUID, DetailLine). Line numbers are assigned upstream;
// this pipeline only ever reads the maximum line per detail UID.
type DetailRecord struct {
	DetailUID           int64           `json:"detail_uid"`
	DetailLine          int             `json:"detail_line"`
	LoadTrackingUID     int64           `json:"load_tracking_uid"`
	AccountCode         string          `json:"account_code"`
	StartDate           time.Time       `json:"start_date"`
	EndDate             time.Time       `json:"end_date"`
	RateCode            string          `json:"rate_code"`
	ResourceUnits       decimal.Decimal `json:"resource_units"`
	MoneyValue          decimal.Decimal `json:"money_value"`
	AccountingStartDate time.Time       `json:"accounting_start_date"`
	AccountingEndDate   time.Time       `json:"accounting_end_date"`
}

// CorrelatedRow joins one summary record with zero or one detail record.
// Detail is nil when no detail matched the join predicate. Correlated rows
// resolve detail-line numbering only; totals always come from the raw
// summary records, since a summary matching several details fans out here.
type CorrelatedRow struct {
	Summary SummaryRecord
	Detail  *DetailRecord
}

// DetailLineIndexEntry records the highest detail line seen for one
// (Year, Period, AccountCode, DetailUID) group of correlated rows. The UID
// stays part of the key: an account with several detail UIDs in one period
// keeps independent numbering per UID.
type DetailLineIndexEntry struct {
	Year          int    `json:"year"`
	Period        int    `json:"period"`
	AccountCode   string `json:"account_code"`
	DetailUID     int64  `json:"detail_uid"`
	MaxDetailLine int    `json:"max_detail_line"`
}
