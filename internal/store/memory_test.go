package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/models"
)

func TestMemorySaveAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got, err := m.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("new store holds %d transactions, want 0", len(got))
	}

	batch := []models.Transaction{
		{Description: "Paid to Amazon", Amount: decimal.RequireFromString("450"), Type: models.TypeDebit},
		{Description: "Salary", Amount: decimal.RequireFromString("55000"), Type: models.TypeCredit},
	}
	if err := m.Save(ctx, batch); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Save(ctx, batch[:1]); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = m.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}
	if got[0].Description != "Paid to Amazon" || got[2].Description != "Paid to Amazon" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestMemoryListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, []models.Transaction{{Description: "original"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, _ := m.ListAll(ctx)
	first[0].Description = "mutated"

	second, _ := m.ListAll(ctx)
	if second[0].Description != "original" {
		t.Errorf("ListAll exposed internal state: %q", second[0].Description)
	}
}

func TestMemoryConcurrentSave(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Save(ctx, []models.Transaction{{Description: "x"}})
		}()
	}
	wg.Wait()

	got, err := m.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("got %d transactions, want 10", len(got))
	}
}
