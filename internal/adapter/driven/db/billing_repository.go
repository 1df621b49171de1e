package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
	"github.com/billingops/sccm-usage-report/internal/shared/types"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// BillingRepositoryImpl reads the chargeback warehouse tables through
// database/sql. All reads are bulk snapshots; nothing is ever written.
type BillingRepositoryImpl struct {
	db *sql.DB
}

// NewBillingRepository opens a connection pool for the given DSN and
// verifies the database is reachable.
func NewBillingRepository(dsn string) (*BillingRepositoryImpl, error) {
	handle, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening billing database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("billing database unreachable: %w", err)
	}
	return &BillingRepositoryImpl{db: handle}, nil
}

func (r *BillingRepositoryImpl) Close() error {
	return r.db.Close()
}

const summaryQuery = `
SELECT load_tracking_uid, year, period, account_code,
       usage_start_date, usage_end_date, rate_code,
       resource_units, rate_value, money_value,
       start_date, end_date, rate_table
  FROM cims_summary
 WHERE year = $1 AND period = $2`

// GetSummaryRecords loads the summary rows of one reporting period. The
// CHAR-padded text columns are trimmed at scan time.
func (r *BillingRepositoryImpl) GetSummaryRecords(ctx context.Context, year, period int) ([]entity.SummaryRecord, error) {
	rows, err := r.db.QueryContext(ctx, summaryQuery, year, period)
	if err != nil {
		return nil, fmt.Errorf("querying summary source: %w", err)
	}
	defer rows.Close()

	var records []entity.SummaryRecord
	for rows.Next() {
		var (
			uid                        sql.NullInt64
			yr, pd                     sql.NullInt64
			account, rateCode, rtable  sql.NullString
			usageStart, usageEnd       sql.NullTime
			startDate, endDate         sql.NullTime
			units, rateValue, moneyVal decimal.NullDecimal
		)
		if err := rows.Scan(&uid, &yr, &pd, &account, &usageStart, &usageEnd,
			&rateCode, &units, &rateValue, &moneyVal, &startDate, &endDate, &rtable); err != nil {
			return nil, &types.SchemaError{Source: "cims_summary", Key: "unknown", Err: err}
		}
		key := nullKey("load_tracking_uid", uid)
		if err := requireValid([]columnCheck{
			{"load_tracking_uid", uid.Valid},
			{"year", yr.Valid},
			{"period", pd.Valid},
			{"account_code", account.Valid},
			{"usage_start_date", usageStart.Valid},
			{"usage_end_date", usageEnd.Valid},
			{"rate_code", rateCode.Valid},
			{"resource_units", units.Valid},
			{"rate_value", rateValue.Valid},
			{"money_value", moneyVal.Valid},
			{"start_date", startDate.Valid},
			{"end_date", endDate.Valid},
			{"rate_table", rtable.Valid},
		}); err != nil {
			return nil, &types.SchemaError{Source: "cims_summary", Key: key, Err: err}
		}
		records = append(records, entity.SummaryRecord{
			LoadTrackingUID: uid.Int64,
			Year:            int(yr.Int64),
			Period:          int(pd.Int64),
			AccountCode:     strings.TrimSpace(account.String),
			UsageStartDate:  usageStart.Time,
			UsageEndDate:    usageEnd.Time,
			RateCode:        strings.TrimSpace(rateCode.String),
			ResourceUnits:   units.Decimal,
			RateValue:       rateValue.Decimal,
			MoneyValue:      moneyVal.Decimal,
			StartDate:       startDate.Time,
			EndDate:         endDate.Time,
			RateTable:       strings.TrimSpace(rtable.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading summary source: %w", err)
	}
	return records, nil
}

const detailQuery = `
SELECT detail_uid, detail_line, load_tracking_uid, account_code,
       start_date, end_date, rate_code, resource_units, money_value,
       accounting_start_date, accounting_end_date
  FROM cims_detail`

// GetDetailRecords loads all detail rows; correlation narrows them to the
// reporting period downstream.
func (r *BillingRepositoryImpl) GetDetailRecords(ctx context.Context) ([]entity.DetailRecord, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery)
	if err != nil {
		return nil, fmt.Errorf("querying detail source: %w", err)
	}
	defer rows.Close()

	var records []entity.DetailRecord
	for rows.Next() {
		var (
			detailUID, loadUID sql.NullInt64
			detailLine         sql.NullInt64
			account, rateCode  sql.NullString
			startDate, endDate sql.NullTime
			acctStart, acctEnd sql.NullTime
			units, moneyVal    decimal.NullDecimal
		)
		if err := rows.Scan(&detailUID, &detailLine, &loadUID, &account,
			&startDate, &endDate, &rateCode, &units, &moneyVal, &acctStart, &acctEnd); err != nil {
			return nil, &types.SchemaError{Source: "cims_detail", Key: "unknown", Err: err}
		}
		key := nullKey("detail_uid", detailUID) + "/" + nullKey("detail_line", detailLine)
		if err := requireValid([]columnCheck{
			{"detail_uid", detailUID.Valid},
			{"detail_line", detailLine.Valid},
			{"load_tracking_uid", loadUID.Valid},
			{"account_code", account.Valid},
			{"start_date", startDate.Valid},
			{"end_date", endDate.Valid},
			{"rate_code", rateCode.Valid},
			{"resource_units", units.Valid},
			{"money_value", moneyVal.Valid},
			{"accounting_start_date", acctStart.Valid},
			{"accounting_end_date", acctEnd.Valid},
		}); err != nil {
			return nil, &types.SchemaError{Source: "cims_detail", Key: key, Err: err}
		}
		records = append(records, entity.DetailRecord{
			DetailUID:           detailUID.Int64,
			DetailLine:          int(detailLine.Int64),
			LoadTrackingUID:     loadUID.Int64,
			AccountCode:         strings.TrimSpace(account.String),
			StartDate:           startDate.Time,
			EndDate:             endDate.Time,
			RateCode:            strings.TrimSpace(rateCode.String),
			ResourceUnits:       units.Decimal,
			MoneyValue:          moneyVal.Decimal,
			AccountingStartDate: acctStart.Time,
			AccountingEndDate:   acctEnd.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading detail source: %w", err)
	}
	return records, nil
}

const identAssignmentQuery = `
SELECT detail_uid, detail_line, ident_number, ident_value
  FROM cims_detail_ident`

func (r *BillingRepositoryImpl) GetIdentifierAssignments(ctx context.Context) ([]entity.IdentifierAssignment, error) {
	rows, err := r.db.QueryContext(ctx, identAssignmentQuery)
	if err != nil {
		return nil, fmt.Errorf("querying identifier-assignment source: %w", err)
	}
	defer rows.Close()

	var records []entity.IdentifierAssignment
	for rows.Next() {
		var (
			detailUID               sql.NullInt64
			detailLine, identNumber sql.NullInt64
			identValue              sql.NullString
		)
		if err := rows.Scan(&detailUID, &detailLine, &identNumber, &identValue); err != nil {
			return nil, &types.SchemaError{Source: "cims_detail_ident", Key: "unknown", Err: err}
		}
		key := nullKey("detail_uid", detailUID) + "/" + nullKey("detail_line", detailLine)
		if err := requireValid([]columnCheck{
			{"detail_uid", detailUID.Valid},
			{"detail_line", detailLine.Valid},
			{"ident_number", identNumber.Valid},
			{"ident_value", identValue.Valid},
		}); err != nil {
			return nil, &types.SchemaError{Source: "cims_detail_ident", Key: key, Err: err}
		}
		records = append(records, entity.IdentifierAssignment{
			DetailUID:   detailUID.Int64,
			DetailLine:  int(detailLine.Int64),
			IdentNumber: int(identNumber.Int64),
			IdentValue:  strings.TrimSpace(identValue.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier-assignment source: %w", err)
	}
	return records, nil
}

const identNameQuery = `
SELECT ident_number, ident_name
  FROM cims_ident`

func (r *BillingRepositoryImpl) GetIdentifierNames(ctx context.Context) ([]entity.IdentifierName, error) {
	rows, err := r.db.QueryContext(ctx, identNameQuery)
	if err != nil {
		return nil, fmt.Errorf("querying identifier dictionary: %w", err)
	}
	defer rows.Close()

	var records []entity.IdentifierName
	for rows.Next() {
		var (
			identNumber sql.NullInt64
			identName   sql.NullString
		)
		if err := rows.Scan(&identNumber, &identName); err != nil {
			return nil, &types.SchemaError{Source: "cims_ident", Key: "unknown", Err: err}
		}
		if err := requireValid([]columnCheck{
			{"ident_number", identNumber.Valid},
			{"ident_name", identName.Valid},
		}); err != nil {
			return nil, &types.SchemaError{Source: "cims_ident", Key: nullKey("ident_number", identNumber), Err: err}
		}
		records = append(records, entity.IdentifierName{
			IdentNumber: int(identNumber.Int64),
			IdentName:   strings.TrimSpace(identName.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier dictionary: %w", err)
	}
	return records, nil
}

type columnCheck struct {
	name  string
	valid bool
}

// requireValid reports the first NULL among the required columns, in the
// declared column order so the message is stable.
func requireValid(columns []columnCheck) error {
	for _, c := range columns {
		if !c.valid {
			return errors.New("required column " + c.name + " is NULL")
		}
	}
	return nil
}

func nullKey(column string, v sql.NullInt64) string {
	if !v.Valid {
		return column + "=NULL"
	}
	return column + "=" + strconv.FormatInt(v.Int64, 10)
}
