package repository

import (
	"context"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

// BillingRepository defines read access to the billing warehouse sources.
// Implementations return full snapshots; the pipeline never reads a source
// twice within one run.
type BillingRepository interface {
	// Summary rows scoped to the reporting period.
	GetSummaryRecords(ctx context.Context, year, period int) ([]entity.SummaryRecord, error)

	// Detail rows across all periods; correlation narrows scope downstream.
	GetDetailRecords(ctx context.Context) ([]entity.DetailRecord, error)

	// Identifier sources.
	GetIdentifierAssignments(ctx context.Context) ([]entity.IdentifierAssignment, error)
	GetIdentifierNames(ctx context.Context) ([]entity.IdentifierName, error)

	Close() error
}

// BillingRepositoryFactory opens a billing repository for the given DSN.
// The DSN is only known after flags and config file are merged, so the
// composition root passes a factory instead of a ready connection.
type BillingRepositoryFactory func(dsn string) (BillingRepository, error)
