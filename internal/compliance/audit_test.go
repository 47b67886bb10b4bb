package compliance

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAuditServiceLogOptOut(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	svc := newAuditServiceWithDB(mock)

	mock.ExpectExec("INSERT INTO compliance_audit_events").
		WithArgs(pgxmock.AnyArg(), EventOptOutReceived, "loc-1", "contact-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := svc.LogOptOut(context.Background(), "loc-1", "contact-1", "stop"); err != nil {
		t.Fatalf("log opt-out failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuditServiceNilSafe(t *testing.T) {
	var svc *AuditService
	if err := svc.LogOptOut(context.Background(), "loc-1", "contact-1", "stop"); err != nil {
		t.Fatalf("nil service should drop events, got %v", err)
	}

	svc = NewAuditService(nil)
	if err := svc.LogDeactivationObserved(context.Background(), "loc-1", "contact-1", []string{"ai-off"}); err != nil {
		t.Fatalf("no-op service should drop events, got %v", err)
	}
}
