package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRecord is one billed rate-code charge for an account over a usage
// window. Records are loaded scoped to a single (Year, Period) and the
// CHAR-padded text columns arrive already trimmed.
type SummaryRecord struct {
	LoadTrackingUID int64           `json:"load_tracking_uid"`
	Year            int             `json:"year"`
	Period          int             `json:"period"`
	AccountCode     string          `json:"account_code"`
	UsageStartDate  time.Time       `json:"usage_start_date"`
	UsageEndDate    time.Time       `json:"usage_end_date"`
	RateCode        string          `json:"rate_code"`
	ResourceUnits   decimal.Decimal `json:"resource_units"`
	RateValue       decimal.Decimal `json:"rate_value"`
	MoneyValue      decimal.Decimal `json:"money_value"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	RateTable       string          `json:"rate_table"`
}

// RateAggregate is the rollup of summary records sharing (Year, Period,
// AccountCode, RateCode, RateTable): summed units and money, mean rate value.
type RateAggregate struct {
	Year          int             `json:"year"`
	Period        int             `json:"period"`
	AccountCode   string          `json:"account_code"`
	RateCode      string          `json:"rate_code"`
	RateTable     string          `json:"rate_table"`
	ResourceUnits decimal.Decimal `json:"resource_units"`
	RateValue     decimal.Decimal `json:"rate_value"`
	MoneyValue    decimal.Decimal `json:"money_value"`
}

// UsageWindow is the overall usage date range reported for one account in a
// period, independent of rate code.
type UsageWindow struct {
	Year           int       `json:"year"`
	Period         int       `json:"period"`
	AccountCode    string    `json:"account_code"`
	UsageStartDate time.Time `json:"usage_start_date"`
	UsageEndDate   time.Time `json:"usage_end_date"`
}
