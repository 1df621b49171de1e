package usecase

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

type rateKey struct {
	year, period          int
	accountCode, rateCode string
	rateTable             string
}

// AggregateRates collapses summary records per (Year, Period, AccountCode,
// RateCode, RateTable): SUM of resource units, SUM of money, arithmetic mean
// of the rate value (not weighted by units). Sums are exact decimal
// arithmetic, so the result is the same for any ordering of the input.
func AggregateRates(summaries []entity.SummaryRecord) []entity.RateAggregate {
	groups := lo.GroupBy(summaries, func(s entity.SummaryRecord) rateKey {
		return rateKey{s.Year, s.Period, s.AccountCode, s.RateCode, s.RateTable}
	})

	aggregates := make([]entity.RateAggregate, 0, len(groups))
	for k, rows := range groups {
		units, money, rates := decimal.Zero, decimal.Zero, decimal.Zero
		for _, r := range rows {
			units = units.Add(r.ResourceUnits)
			money = money.Add(r.MoneyValue)
			rates = rates.Add(r.RateValue)
		}
		aggregates = append(aggregates, entity.RateAggregate{
			Year:          k.year,
			Period:        k.period,
			AccountCode:   k.accountCode,
			RateCode:      k.rateCode,
			RateTable:     k.rateTable,
			ResourceUnits: units,
			MoneyValue:    money,
			RateValue:     rates.Div(decimal.NewFromInt(int64(len(rows)))),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.AccountCode != b.AccountCode {
			return a.AccountCode < b.AccountCode
		}
		if a.RateCode != b.RateCode {
			return a.RateCode < b.RateCode
		}
		return a.RateTable < b.RateTable
	})
	return aggregates
}

// AggregateUsageWindows collapses summary records per (Year, Period,
// AccountCode) into the overall MIN usage start and MAX usage end. The
// window is per account, not per rate code.
func AggregateUsageWindows(summaries []entity.SummaryRecord) []entity.UsageWindow {
	type accountKey struct {
		year, period int
		accountCode  string
	}
	groups := lo.GroupBy(summaries, func(s entity.SummaryRecord) accountKey {
		return accountKey{s.Year, s.Period, s.AccountCode}
	})

	windows := make([]entity.UsageWindow, 0, len(groups))
	for k, rows := range groups {
		w := entity.UsageWindow{
			Year:           k.year,
			Period:         k.period,
			AccountCode:    k.accountCode,
			UsageStartDate: rows[0].UsageStartDate,
			UsageEndDate:   rows[0].UsageEndDate,
		}
		for _, r := range rows[1:] {
			if r.UsageStartDate.Before(w.UsageStartDate) {
				w.UsageStartDate = r.UsageStartDate
			}
			if r.UsageEndDate.After(w.UsageEndDate) {
				w.UsageEndDate = r.UsageEndDate
			}
		}
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.AccountCode < b.AccountCode
	})
	return windows
}
