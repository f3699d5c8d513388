package reports

import (
	"strings"
	"testing"

	"github.com/dimitrizarkua/jobs_backend/models"
)

func TestTrialBalanceScopedToReportableGroups(t *testing.T) {
	if !strings.Contains(trialBalanceSQL, "atg.name IN @groupNames") {
		t.Fatal("trial balance query must restrict accounts by group name")
	}

	want := []string{models.AccountGroupRevenue, models.AccountGroupAsset, models.AccountGroupLiability}
	if len(trialBalanceGroups) != len(want) {
		t.Fatalf("expected %d reportable groups, got %d", len(want), len(trialBalanceGroups))
	}
	for i, name := range want {
		if trialBalanceGroups[i] != name {
			t.Fatalf("expected group %s at position %d, got %s", name, i, trialBalanceGroups[i])
		}
	}
}

func TestBuildGroupedTrialBalance_TotalRow(t *testing.T) {
	rows := []TrialBalanceRow{
		{AccountId: 1, AccountName: "Cash", GroupName: "Asset",
			DebitAmount: d("300"), CreditAmount: d("0"),
			DebitAmountYtd: d("900"), CreditAmountYtd: d("100")},
		{AccountId: 2, AccountName: "Receivables", GroupName: "Asset",
			DebitAmount: d("200"), CreditAmount: d("150"),
			DebitAmountYtd: d("400"), CreditAmountYtd: d("250")},
		{AccountId: 3, AccountName: "Restoration Revenue", GroupName: "Revenue",
			DebitAmount: d("0"), CreditAmount: d("350"),
			DebitAmountYtd: d("50"), CreditAmountYtd: d("1000")},
	}

	groups, total := BuildGroupedTrialBalance(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].GroupName != "Asset" || len(groups[0].Rows) != 2 {
		t.Fatalf("unexpected first group: %s with %d rows", groups[0].GroupName, len(groups[0].Rows))
	}
	if groups[1].GroupName != "Revenue" || len(groups[1].Rows) != 1 {
		t.Fatalf("unexpected second group: %s with %d rows", groups[1].GroupName, len(groups[1].Rows))
	}

	if total.AccountName != "TOTAL" {
		t.Fatalf("expected TOTAL row, got %q", total.AccountName)
	}
	// A balanced ledger: debit and credit totals agree per window.
	if !total.DebitAmount.Equal(d("500")) || !total.CreditAmount.Equal(d("500")) {
		t.Fatalf("period totals expected 500/500, got %s/%s", total.DebitAmount, total.CreditAmount)
	}
	if !total.DebitAmountYtd.Equal(d("1350")) || !total.CreditAmountYtd.Equal(d("1350")) {
		t.Fatalf("ytd totals expected 1350/1350, got %s/%s", total.DebitAmountYtd, total.CreditAmountYtd)
	}
}

func TestBuildGroupedTrialBalance_Empty(t *testing.T) {
	groups, total := BuildGroupedTrialBalance(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
	if !total.DebitAmount.IsZero() || !total.CreditAmount.IsZero() {
		t.Fatalf("expected zero totals, got %s/%s", total.DebitAmount, total.CreditAmount)
	}
}
