package loam

// ComponentMetadata is the front matter of a component document.
//
//	---
//	name: Water
//	coefficients:
//	  a: 66.7412
//	  b: -7258.2
//	  ...
//	---
//	Free-form notes about the source of the fit.
//
// Coefficients stay generic so comma decimals and json.Number values from
// strict mode are normalized by the same decoder the catalog loader uses.
type ComponentMetadata struct {
	Name         string         `json:"name" mapstructure:"name"`
	Coefficients map[string]any `json:"coefficients" mapstructure:"coefficients"`
}
