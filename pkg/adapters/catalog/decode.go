package catalog

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// decimalHook accepts "16,3872" wherever a float is expected.
func decimalHook(from reflect.Kind, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.Float64 {
		return data, nil
	}
	return domain.ParseDecimal(reflect.ValueOf(data).String())
}

// DecodeCoefficients decodes a generic map into coefficients.
// Numbers, numeric strings and comma-decimal strings are accepted; all six
// coefficients must be present. Unknown keys are ignored.
func DecodeCoefficients(raw map[string]any) (domain.Coefficients, error) {
	var k domain.Coefficients
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncKind(decimalHook),
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &k,
	})
	if err != nil {
		return k, err
	}
	if err := decoder.Decode(raw); err != nil {
		return k, err
	}
	if len(md.Unset) > 0 {
		missing := append([]string(nil), md.Unset...)
		sort.Strings(missing)
		return k, fmt.Errorf("missing coefficients %v", missing)
	}
	return k, nil
}
