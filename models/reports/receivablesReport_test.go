package reports

import (
	"testing"

	"github.com/dimitrizarkua/jobs_backend/models"
)

func TestBuildReceivablesReport_BucketBoundaries(t *testing.T) {
	reference := day("2026-03-31")

	cases := []struct {
		name   string
		due    string
		bucket string
	}{
		{"due on reference date", "2026-03-31", "current"},
		{"30 days overdue stays current", "2026-03-01", "current"},
		{"31 days overdue", "2026-02-28", "more_30"},
		{"45 days overdue", "2026-02-14", "more_30"},
		{"60 days overdue", "2026-01-30", "more_30"},
		{"61 days overdue", "2026-01-29", "more_60"},
		{"90 days overdue", "2025-12-31", "more_60"},
		{"91 days overdue", "2025-12-30", "more_90"},
		{"a year overdue", "2025-03-31", "more_90"},
	}
	for _, tc := range cases {
		invoice := paidInvoice(1, 10, "2025-01-01", tc.due, "100", "0")
		report := BuildReceivablesReport([]*models.Invoice{invoice}, reference)

		buckets := map[string]string{
			"current": report.Current.String(),
			"more_30": report.More30Days.String(),
			"more_60": report.More60Days.String(),
			"more_90": report.More90Days.String(),
		}
		for bucket, amount := range buckets {
			expected := "0"
			if bucket == tc.bucket {
				expected = "100"
			}
			if amount != expected {
				t.Fatalf("%s: bucket %s expected %s, got %s", tc.name, bucket, expected, amount)
			}
		}
		if !report.Total.Equal(d("100")) {
			t.Fatalf("%s: total expected 100, got %s", tc.name, report.Total)
		}
	}
}

func TestBuildReceivablesReport_ExcludesFutureDue(t *testing.T) {
	reference := day("2026-03-31")
	invoice := paidInvoice(1, 10, "2026-03-01", "2026-04-01", "100", "0")

	report := BuildReceivablesReport([]*models.Invoice{invoice}, reference)
	if !report.Total.IsZero() {
		t.Fatalf("invoice due after reference date must be excluded, got total %s", report.Total)
	}
	if len(report.Contacts) != 0 {
		t.Fatalf("expected no contact rows, got %d", len(report.Contacts))
	}
}

func TestBuildReceivablesReport_AgesOutstandingNotTotal(t *testing.T) {
	reference := day("2026-03-31")
	// 300 invoiced, 120 paid: only 180 is receivable.
	invoice := paidInvoice(1, 10, "2026-01-01", "2026-03-15", "300", "120")

	report := BuildReceivablesReport([]*models.Invoice{invoice}, reference)
	if !report.Current.Equal(d("180")) {
		t.Fatalf("expected outstanding 180 in current, got %s", report.Current)
	}
}

func TestBuildReceivablesReport_PerContactBreakdown(t *testing.T) {
	reference := day("2026-03-31")
	invoices := []*models.Invoice{
		paidInvoice(1, 10, "2026-01-01", "2026-03-20", "100", "0"),
		paidInvoice(2, 20, "2026-01-01", "2026-01-15", "200", "0"),
		paidInvoice(3, 10, "2026-01-01", "2026-01-01", "50", "0"),
	}

	report := BuildReceivablesReport(invoices, reference)
	if len(report.Contacts) != 2 {
		t.Fatalf("expected 2 contact rows, got %d", len(report.Contacts))
	}
	// First-seen contact first.
	first := report.Contacts[0]
	if first.ContactId != 10 || !first.Total.Equal(d("150")) {
		t.Fatalf("unexpected first contact row: id=%d total=%s", first.ContactId, first.Total)
	}
	second := report.Contacts[1]
	if second.ContactId != 20 || !second.More60Days.Equal(d("200")) {
		t.Fatalf("unexpected second contact row: id=%d more_60=%s", second.ContactId, second.More60Days)
	}
	if !report.Total.Equal(d("350")) {
		t.Fatalf("expected grand total 350, got %s", report.Total)
	}
}
