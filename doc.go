/*
Package antoine computes vapor pressure and boiling temperature curves of
chemical components with the extended Antoine equation

	ln(P) = a + b/(T+c) + d*ln(T) + e*T^f

and serves them as an interactive dashboard, a JSON API, MCP tools and a CLI.

# Concept

The coefficient table is loaded once into an immutable domain.Table. Every
interaction recomputes its views from scratch: pressure curves over a
temperature range, the boiling temperature of each component at a target
pressure (a dense grid search), the boiling separation of a pair of components
and that separation swept over pressure. Components whose evaluation leaves the
numeric domain are skipped and reported instead of failing the request.

# Usage

	eng, err := antoine.New("data/parametros_antoine.txt")
	if err != nil {
		log.Fatal(err)
	}

	d, err := eng.Compute(context.Background(), domain.DefaultParams())
	if err != nil {
		log.Fatal(err)
	}
	for _, b := range d.Boiling {
		fmt.Printf("%s boils at %.2f K\n", b.Component, b.Temperature)
	}

The table path selects the loader: a tab-separated parameter sheet, a YAML or
JSON catalog, or a directory of Markdown/JSON component documents read through
Loam. Custom sources plug in with WithLoader.
*/
package antoine
