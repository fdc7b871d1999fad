/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/InputParameters"
	"github.com/notargets/anisometric/metricfield"
)

const exampleInputFile = `
########################################
Title: "Sink with a swirl"
PrimaryField: sink
SecondaryField: swirl  # Optional, defaults to none
BlendWeight: 0.75      # Optional, weight of the primary field, defaults to 1
# FrameCenter: [0, 0, 0]
# FrameRange: [1, 1, 1]
# StrainValue: 10      # Required by the strain field
########################################
`

// ProbeCmd represents the probe command
var ProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Evaluate the tensor field at a single point",
	Long: `Evaluate the configured tensor field at a single point, printing the tensor,
its eigen decomposition and the transformed point`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			p  r3.Vec
			ip *InputParameters.FieldParameters
		)
		icFile, _ := cmd.Flags().GetString("inputConditionsFile")
		ps, _ := cmd.Flags().GetString("point")
		if p, err = parsePoint(ps); err != nil {
			return
		}
		if ip, err = readInputParameters(icFile); err != nil {
			return
		}
		return RunProbe(cmd.OutOrStdout(), ip, p)
	},
}

func init() {
	rootCmd.AddCommand(ProbeCmd)
	ProbeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the field parameters")
	ProbeCmd.Flags().StringP("point", "p", "0,0,0", "point to evaluate, as x,y,z")
}

func readInputParameters(icFile string) (ip *InputParameters.FieldParameters, err error) {
	var data []byte
	if len(icFile) == 0 {
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), example:%s", exampleInputFile)
	}
	if data, err = os.ReadFile(icFile); err != nil {
		return
	}
	ip = &InputParameters.FieldParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", icFile, err)
	}
	return
}

func parsePoint(s string) (p r3.Vec, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return p, fmt.Errorf("point %q must have 3 comma separated coordinates", s)
	}
	var x [3]float64
	for i, part := range parts {
		if x[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return p, fmt.Errorf("point %q: %w", s, err)
		}
	}
	return r3.Vec{X: x[0], Y: x[1], Z: x[2]}, nil
}

// RunProbe evaluates the field at p in the unit frame unless the parameters
// set one.
func RunProbe(w io.Writer, ip *InputParameters.FieldParameters, p r3.Vec) (err error) {
	var (
		c metricfield.Configuration
	)
	if c, err = ip.Configuration(metricfield.UnitFrame); err != nil {
		return
	}
	ip.Print(w)
	logger.Debug("probe", "config", c.String(), "point", p)

	E := c.DeformTensor(p)
	fmt.Fprintf(w, "Point:       (%g, %g, %g)\n", p.X, p.Y, p.Z)
	fmt.Fprintf(w, "Tensor:      %s\n", E)
	fmt.Fprintf(w, "Determinant: %8.5f\n", E.Det())
	vals, vecs, err := E.Eigen()
	if err != nil {
		return
	}
	for i := range vals {
		fmt.Fprintf(w, "Eigen[%d]:    %8.5f along (%8.5f, %8.5f, %8.5f)\n",
			i, vals[i], vecs[i].X, vecs[i].Y, vecs[i].Z)
	}
	q := c.TransformPoint(p)
	fmt.Fprintf(w, "Transformed: (%g, %g, %g)\n", q.X, q.Y, q.Z)
	return
}
