package memory

import (
	"context"
	"testing"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	components := []domain.Component{
		{Name: "Water", Coefficients: domain.Coefficients{A: 16.3872, B: -3885.70, C: -42.98}},
		{Name: "Ethanol", Coefficients: domain.Coefficients{A: 16.8958, B: -3795.17, C: -42.232}},
	}
	tests.TableLoaderContractTest(t, NewFromComponents(components...), components)
}

func TestNewFromMap(t *testing.T) {
	loader, err := NewFromMap([]string{"B", "A"}, map[string]domain.Coefficients{
		"A": {A: 1},
		"B": {A: 2},
	})
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, table.Names())

	_, err = NewFromMap([]string{"C"}, nil)
	assert.Error(t, err)
}

func TestLoader_RejectsDuplicates(t *testing.T) {
	loader := NewFromComponents(domain.Component{Name: "X"}, domain.Component{Name: "X"})
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}
