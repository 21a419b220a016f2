package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Rate is a per-unit numeric parameter that may not apply to a unit at all,
// e.g. electricity for a gas boiler or emissions for a heat pump.
// A not-applicable Rate serialises as JSON null.
type Rate struct {
	Value      float64
	Applicable bool
}

// NotApplicable is the zero Rate.
var NotApplicable = Rate{}

// Applicable returns a Rate carrying v.
func Applicable(v float64) Rate {
	return Rate{Value: v, Applicable: true}
}

// Or returns the value when applicable, def otherwise.
func (r Rate) Or(def float64) float64 {
	if !r.Applicable {
		return def
	}
	return r.Value
}

func (r Rate) String() string {
	if !r.Applicable {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Applicable {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = NotApplicable
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Applicable(v)
	return nil
}
