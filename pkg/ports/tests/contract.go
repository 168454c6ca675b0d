package tests

import (
	"context"
	"testing"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
)

// TableLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TableLoader.
// want is the table the loader is expected to produce, in order.
func TableLoaderContractTest(t *testing.T, loader ports.TableLoader, want []domain.Component) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	table, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading table: %v", err)
	}

	// 2. Test Order and Contents
	t.Run("Components", func(t *testing.T) {
		got := table.Components()
		if len(got) != len(want) {
			t.Fatalf("expected %d components, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Name != want[i].Name {
				t.Errorf("component %d: got name %q, want %q", i, got[i].Name, want[i].Name)
			}
			if got[i].Coefficients != want[i].Coefficients {
				t.Errorf("component %q: got %+v, want %+v", want[i].Name, got[i].Coefficients, want[i].Coefficients)
			}
		}
	})

	// 3. Test Lookup (NotFound)
	t.Run("Lookup_NotFound", func(t *testing.T) {
		_, err := table.Lookup("non-existent-component")
		if err == nil {
			t.Error("expected error for non-existent component, got nil")
		}
	})

	// 4. Test Idempotence
	t.Run("Reload", func(t *testing.T) {
		again, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error reloading table: %v", err)
		}
		if again.Fingerprint() != table.Fingerprint() {
			t.Errorf("fingerprint changed between loads: %s vs %s", table.Fingerprint(), again.Fingerprint())
		}
	})
}
