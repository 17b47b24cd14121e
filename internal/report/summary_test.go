package report

import "testing"

func TestExtractSummary(t *testing.T) {
	text := `Transaction Statement for 98XXXXXX21
01 Nov 2025 - 30 Nov 2025

Opening Balance: 1,20,000.00 (Cr)
Total Withdrawal Amount : 45,230.50 (Dr)
Total Deposit Amount - 55,000
Closing Balance 1,29,769.50 (Cr)
`

	sums := ExtractSummary(text)
	if len(sums) != 4 {
		t.Fatalf("got %d keys, want 4: %v", len(sums), sums)
	}

	want := map[string]string{
		KeyOpeningBalance:  "120000",
		KeyTotalWithdrawal: "45230.5",
		KeyTotalDeposit:    "55000",
		KeyClosingBalance:  "129769.5",
	}
	for key, amount := range want {
		got, ok := sums[key]
		if !ok {
			t.Errorf("key %q absent", key)
			continue
		}
		if got.String() != amount {
			t.Errorf("%s = %s, want %s", key, got, amount)
		}
	}
}

func TestExtractSummaryPartial(t *testing.T) {
	sums := ExtractSummary("Closing Balance: 88,450.00")
	if len(sums) != 1 {
		t.Fatalf("got %d keys, want 1: %v", len(sums), sums)
	}
	if sums[KeyClosingBalance].String() != "88450" {
		t.Errorf("closing balance = %s, want 88450", sums[KeyClosingBalance])
	}
}

func TestExtractSummaryEmpty(t *testing.T) {
	if sums := ExtractSummary("no aggregate lines here"); len(sums) != 0 {
		t.Errorf("got %v, want empty", sums)
	}
}
