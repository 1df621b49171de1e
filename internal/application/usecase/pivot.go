package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

// serializeGroup renders each row of one pivot group and joins the parts with
// the comma separator. Both pivots share this shape: an empty group yields
// count 0 and an empty string with no trailing separator.
func serializeGroup[T any](rows []T, render func(T) string) (count int, list string) {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, render(r))
	}
	return len(parts), strings.Join(parts, ",")
}

// PivotRates serializes each account's rate aggregates into one delimited
// field. Entries are ordered by (RateCode, RateTable) so the report is
// deterministic; rate values print at six fractional digits and money at
// two, both rounded half-even.
func PivotRates(aggregates []entity.RateAggregate) []entity.RatePivotRow {
	type accountKey struct {
		year, period int
		accountCode  string
	}
	groups := lo.GroupBy(aggregates, func(a entity.RateAggregate) accountKey {
		return accountKey{a.Year, a.Period, a.AccountCode}
	})

	rows := make([]entity.RatePivotRow, 0, len(groups))
	for k, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].RateCode != group[j].RateCode {
				return group[i].RateCode < group[j].RateCode
			}
			return group[i].RateTable < group[j].RateTable
		})
		count, list := serializeGroup(group, func(a entity.RateAggregate) string {
			return fmt.Sprintf("%s,%s,%s,%s",
				a.RateCode,
				a.ResourceUnits.String(),
				a.RateValue.StringFixedBank(6),
				a.MoneyValue.StringFixedBank(2))
		})
		rows = append(rows, entity.RatePivotRow{
			Year:         k.year,
			Period:       k.period,
			AccountCode:  k.accountCode,
			NumRateCodes: count,
			RateList:     list,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.AccountCode < b.AccountCode
	})
	return rows
}

// PivotIdentifiers resolves identifier assignments against the name
// dictionary and serializes the pairs of each (LoadTrackingUID, DetailUID,
// DetailLine) into one delimited field. The ACCOUNT_CODE identifier is
// dropped (its value travels separately as the account code), as are
// assignments whose number is missing from the dictionary. Values are quoted
// with literal double quotes and not escaped.
//
// Grouping is by (DetailUID, DetailLine): a detail UID belongs to exactly one
// load in the source tables, so LoadTrackingUID is resolved from the detail
// record carrying the UID rather than widening the group key.
func PivotIdentifiers(
	assignments []entity.IdentifierAssignment,
	names []entity.IdentifierName,
	details []entity.DetailRecord,
) []entity.IdentifierPivotRow {
	nameByNumber := make(map[int]string, len(names))
	for _, n := range names {
		nameByNumber[n.IdentNumber] = n.IdentName
	}
	loadByDetailUID := make(map[int64]int64, len(details))
	for _, d := range details {
		loadByDetailUID[d.DetailUID] = d.LoadTrackingUID
	}

	type lineKey struct {
		detailUID  int64
		detailLine int
	}
	pairs := make(map[lineKey][]entity.IdentifierPair)
	for _, a := range assignments {
		name, ok := nameByNumber[a.IdentNumber]
		if !ok || name == entity.AccountCodeIdentifier {
			continue
		}
		k := lineKey{a.DetailUID, a.DetailLine}
		pairs[k] = append(pairs[k], entity.IdentifierPair{Name: name, Value: a.IdentValue})
	}

	rows := make([]entity.IdentifierPivotRow, 0, len(pairs))
	for k, group := range pairs {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].Value < group[j].Value
		})
		count, list := serializeGroup(group, func(p entity.IdentifierPair) string {
			return fmt.Sprintf("%s,\"%s\"", p.Name, p.Value)
		})
		rows = append(rows, entity.IdentifierPivotRow{
			LoadTrackingUID: loadByDetailUID[k.detailUID],
			DetailUID:       k.detailUID,
			DetailLine:      k.detailLine,
			NumIdentifiers:  count,
			IdentifierList:  list,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.DetailUID != b.DetailUID {
			return a.DetailUID < b.DetailUID
		}
		return a.DetailLine < b.DetailLine
	})
	return rows
}
