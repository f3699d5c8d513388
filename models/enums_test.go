package models

import (
	"testing"
	"time"
)

func TestDateString_JSONRoundTrip(t *testing.T) {
	var date DateString
	if err := date.UnmarshalJSON([]byte(`"2026-03-31"`)); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	out, err := date.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(out) != `"2026-03-31"` {
		t.Fatalf("expected \"2026-03-31\", got %s", out)
	}
}

func TestDateString_RejectsBadInput(t *testing.T) {
	var date DateString
	if err := date.UnmarshalJSON([]byte(`"31/03/2026"`)); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if err := date.UnmarshalJSON([]byte(`20260331`)); err == nil {
		t.Fatal("expected error for non-string date")
	}
}

func TestDateString_DayBoundsInTimezone(t *testing.T) {
	var from DateString
	_ = from.UnmarshalJSON([]byte(`"2026-03-31"`))
	if err := from.StartOfDayUTCTime("Australia/Brisbane"); err != nil {
		t.Fatalf("StartOfDayUTCTime error: %v", err)
	}
	// Brisbane is UTC+10, no DST: local midnight is 14:00 UTC the day before.
	got := time.Time(from)
	if got.Day() != 30 || got.Hour() != 14 {
		t.Fatalf("unexpected start of day: %s", got)
	}

	var to DateString
	_ = to.UnmarshalJSON([]byte(`"2026-03-31"`))
	if err := to.EndOfDayUTCTime("Australia/Brisbane"); err != nil {
		t.Fatalf("EndOfDayUTCTime error: %v", err)
	}
	end := time.Time(to)
	if end.Day() != 31 || end.Hour() != 13 || end.Minute() != 59 {
		t.Fatalf("unexpected end of day: %s", end)
	}
}

func TestDocumentType_Valid(t *testing.T) {
	for _, valid := range []DocumentType{DocumentTypeInvoice, DocumentTypeCreditNote, DocumentTypePurchaseOrder} {
		if !valid.Valid() {
			t.Fatalf("%s should be valid", valid)
		}
	}
	if DocumentType("journal").Valid() {
		t.Fatal("unknown document type should be invalid")
	}
}

func TestDocumentStatusValue_Valid(t *testing.T) {
	if !DocumentStatusApproved.Valid() {
		t.Fatal("approved should be valid")
	}
	if DocumentStatusValue("archived").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}
