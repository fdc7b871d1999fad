package metricfield

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/anisometric/geometry3D"
)

type Statistic struct {
	Mean, StdDev, Min, Max float64
}

type jsonStatistic struct {
	Mean, StdDev, Min, Max geometry3D.JSONFloat
}

func newStatistic(x []float64) (s Statistic) {
	if len(x) == 0 {
		return
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		s.StdDev = 0
	}
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	return
}

func (s Statistic) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonStatistic{
		Mean:   geometry3D.JSONFloat(s.Mean),
		StdDev: geometry3D.JSONFloat(s.StdDev),
		Min:    geometry3D.JSONFloat(s.Min),
		Max:    geometry3D.JSONFloat(s.Max),
	})
}

func (s *Statistic) UnmarshalJSON(b []byte) error {
	var js jsonStatistic
	if err := json.Unmarshal(b, &js); err != nil {
		return err
	}
	*s = Statistic{
		Mean:   float64(js.Mean),
		StdDev: float64(js.StdDev),
		Min:    float64(js.Min),
		Max:    float64(js.Max),
	}
	return nil
}

// Summary describes a population of sampled tensors through the spread of
// their principal scales. Anisotropy is the ratio largest/smallest eigenvalue,
// taken over positive definite tensors only.
type Summary struct {
	Count                   int
	MinEigen, MaxEigen      Statistic
	Anisotropy, Determinant Statistic
	Indefinite              int // smallest eigenvalue <= 0, left out of Anisotropy
	Failed                  int // non finite tensors or no convergence, left out of all statistics
}

func Summarize(T []geometry3D.Tensor) (s Summary) {
	var (
		minE, maxE, aniso, det []float64
	)
	s.Count = len(T)
	for _, E := range T {
		if !E.IsFinite() {
			s.Failed++
			continue
		}
		vals, _, err := E.Eigen()
		if err != nil {
			s.Failed++
			continue
		}
		minE = append(minE, vals[0])
		maxE = append(maxE, vals[2])
		det = append(det, E.Det())
		if vals[0] <= 0 {
			s.Indefinite++
			continue
		}
		aniso = append(aniso, vals[2]/vals[0])
	}
	s.MinEigen = newStatistic(minE)
	s.MaxEigen = newStatistic(maxE)
	s.Anisotropy = newStatistic(aniso)
	s.Determinant = newStatistic(det)
	return
}

func (s Summary) Print(w io.Writer, title string) {
	fmt.Fprintf(w, "%s: %d tensors", title, s.Count)
	if s.Indefinite != 0 {
		fmt.Fprintf(w, " (%d not positive definite)", s.Indefinite)
	}
	if s.Failed != 0 {
		fmt.Fprintf(w, " (%d failed decomposition)", s.Failed)
	}
	fmt.Fprintf(w, "\n%-14s%12s%12s%12s%12s\n", "", "mean", "stddev", "min", "max")
	for _, row := range []struct {
		name string
		st   Statistic
	}{
		{"min eigen", s.MinEigen},
		{"max eigen", s.MaxEigen},
		{"anisotropy", s.Anisotropy},
		{"determinant", s.Determinant},
	} {
		fmt.Fprintf(w, "%-14s%12.5f%12.5f%12.5f%12.5f\n", row.name, row.st.Mean, row.st.StdDev, row.st.Min, row.st.Max)
	}
}
