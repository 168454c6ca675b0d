package loam

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/antoine/internal/testutils"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	water   = domain.Coefficients{A: 66.7412, B: -7258.2, C: 0, D: -7.3037, E: 4.1653e-06, F: 2}
	ethanol = domain.Coefficients{A: 67.5672, B: -7164.3, C: 0, D: -7.327, E: 3.134e-06, F: 2}
	benzene = domain.Coefficients{A: 76.1992, B: -6486.2, C: 0, D: -9.2194, E: 6.9844e-06, F: 2}
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docs := []core.Document{
		{
			ID: "01-water.md",
			Content: `---
name: Water
coefficients:
  a: 66.7412
  b: -7258.2
  c: 0
  d: -7.3037
  e: 4.1653E-06
  f: 2
---
DIPPR 101 fit, K and kPa.`,
		},
		{
			ID: "02-ethanol.md",
			Content: `---
name: Ethanol
coefficients:
  a: "67,5672"
  b: "-7164,3"
  c: 0
  d: "-7,327"
  e: "3,134E-06"
  f: 2
---`,
		},
	}
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc))
	}

	loader := New(loam.NewTypedRepository[ComponentMetadata](repo))

	tests.TableLoaderContractTest(t, loader, []domain.Component{
		{Name: "Water", Coefficients: water},
		{Name: "Ethanol", Coefficients: ethanol},
	})
}

func TestOpen_MixedFormats_OrderedByID(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)

	testutils.WriteFiles(t, dir, map[string]string{
		"b-benzene.json": `{
  "name": "Benzene",
  "coefficients": {"a": 76.1992, "b": -6486.2, "c": 0, "d": -9.2194, "e": 6.9844e-06, "f": 2}
}`,
		"a-water.md": `---
coefficients:
  a: 66.7412
  b: -7258.2
  c: 0
  d: -7.3037
  e: 4.1653E-06
  f: 2
---`,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Name falls back to the file stem.
	assert.Equal(t, []string{"a-water", "Benzene"}, table.Names())

	got, err := table.Lookup("Benzene")
	require.NoError(t, err)
	assert.InDelta(t, benzene.A, got.Coefficients.A, 1e-12)
	assert.InDelta(t, benzene.E, got.Coefficients.E, 1e-18)
}

func TestLoader_InvalidCoefficients(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)

	testutils.WriteFiles(t, dir, map[string]string{
		"broken.md": `---
name: Broken
coefficients:
  a: 1
  b: abc
---`,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, pe.Row)
	assert.Contains(t, pe.Msg, "broken.md")
}

func TestLoader_DuplicateNames(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)

	body := `---
name: Water
coefficients: {a: 1, b: 1, c: 1, d: 1, e: 1, f: 1}
---`
	testutils.WriteFiles(t, dir, map[string]string{
		"one.md": body,
		"two.md": body,
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestLoader_Empty(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)

	loader, err := Open(dir)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "water", trimExtension("water.md"))
	assert.Equal(t, "water", trimExtension("nested/water.json"))
	assert.Equal(t, "water", trimExtension("water"))
}
