package geometry3D

import (
	"encoding/json"
	"math"
	"strconv"
)

// JSONFloat encodes NaN and the infinities as the strings "NaN", "+Inf" and
// "-Inf", finite values as plain JSON numbers.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(x)
}

func (f *JSONFloat) UnmarshalJSON(b []byte) (err error) {
	var (
		x float64
		s string
	)
	if err = json.Unmarshal(b, &s); err == nil {
		if x, err = strconv.ParseFloat(s, 64); err != nil {
			return
		}
	} else if err = json.Unmarshal(b, &x); err != nil {
		return
	}
	*f = JSONFloat(x)
	return
}

func (E Tensor) MarshalJSON() ([]byte, error) {
	var F [9]JSONFloat
	for i := range E {
		F[i] = JSONFloat(E[i])
	}
	return json.Marshal(F)
}

func (E *Tensor) UnmarshalJSON(b []byte) error {
	var F [9]JSONFloat
	if err := json.Unmarshal(b, &F); err != nil {
		return err
	}
	for i := range F {
		E[i] = float64(F[i])
	}
	return nil
}
