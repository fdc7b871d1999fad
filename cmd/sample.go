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
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/anisometric/DG3D/mesh"
	"github.com/notargets/anisometric/DG3D/mesh/readers"
	"github.com/notargets/anisometric/InputParameters"
	"github.com/notargets/anisometric/geometry3D"
	"github.com/notargets/anisometric/metricfield"
)

type SampleModel struct {
	GridFile    string
	ICFile      string
	OutFile     string
	Vertex      bool
	Parallelism int
}

// SampleReport is the YAML record of a sampling run
type SampleReport struct {
	Title         string               `json:"Title,omitempty"`
	GridFile      string               `json:"GridFile"`
	Configuration string               `json:"Configuration"`
	Tets          metricfield.Summary  `json:"Tets"`
	Edges         metricfield.Summary  `json:"Edges"`
	Vertices      *metricfield.Summary `json:"Vertices,omitempty"`
	TetTensors    []geometry3D.Tensor  `json:"TetTensors"`
	EdgeTensors   []geometry3D.Tensor  `json:"EdgeTensors"`
	EdgeVertices  [][2]int             `json:"EdgeVertices"`
	VertexTensors []geometry3D.Tensor  `json:"VertexTensors,omitempty"`
}

// SampleCmd represents the sample command
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample the tensor field over the tets and edges of a mesh",
	Long: `Sample the configured tensor field at every tet barycenter and every edge
midpoint of a mesh, the domain frame is the mesh bounding box unless the input
parameters file sets one`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.FieldParameters
			sm = &SampleModel{}
		)
		sm.GridFile, _ = cmd.Flags().GetString("gridFile")
		sm.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		sm.OutFile, _ = cmd.Flags().GetString("output")
		sm.Vertex, _ = cmd.Flags().GetBool("vertex")
		sm.Parallelism = viper.GetInt("parallelism")
		if len(sm.GridFile) == 0 {
			return fmt.Errorf("must supply a grid file (-F, --gridFile) in .neu, .su2 or .msh format")
		}
		if ip, err = readInputParameters(sm.ICFile); err != nil {
			return
		}
		if viper.GetBool("profile") {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
		}
		return RunSample(cmd.OutOrStdout(), sm, ip)
	},
}

func init() {
	rootCmd.AddCommand(SampleCmd)
	SampleCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Gambit (.neu), SU2 (.su2) or Gmsh 2.2 (.msh) format")
	SampleCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the field parameters")
	SampleCmd.Flags().StringP("output", "o", "", "write a YAML report of the sampled tensors")
	SampleCmd.Flags().Bool("vertex", false, "also average the tet tensors onto the vertices")
	SampleCmd.Flags().Bool("profile", false, "write a CPU profile of the run to the current directory")
	_ = viper.BindPFlag("profile", SampleCmd.Flags().Lookup("profile"))
}

func RunSample(w io.Writer, sm *SampleModel, ip *InputParameters.FieldParameters) (err error) {
	var (
		msh *mesh.Mesh
		c   metricfield.Configuration
		NP  = sm.Parallelism
	)
	if msh, err = readers.ReadMeshFile(sm.GridFile); err != nil {
		return
	}
	msh.PrintStatistics(w)
	if c, err = ip.Configuration(metricfield.NewDomainFrame(msh.Bounds())); err != nil {
		return
	}
	ip.Print(w)
	if NP == 0 {
		NP = ip.Parallelism
	}
	tets := msh.Tets()
	if len(tets) == 0 {
		return fmt.Errorf("%s has no tetrahedra to sample", sm.GridFile)
	}
	logger.Info("sampling", "config", c.String(), "tets", len(tets), "edges", len(msh.Edges), "parallelism", NP)

	start := time.Now()
	report := &SampleReport{
		Title:         ip.Title,
		GridFile:      sm.GridFile,
		Configuration: c.String(),
		TetTensors:    c.SampleTets(msh, tets, NP),
		EdgeTensors:   c.SampleEdges(msh, msh.Edges, NP),
		EdgeVertices:  msh.Edges,
	}
	if sm.Vertex {
		report.VertexTensors = c.VertexTensors(msh, NP)
	}
	logger.Info("sampled", "elapsed", time.Since(start))

	report.Tets = metricfield.Summarize(report.TetTensors)
	report.Tets.Print(w, "Tet barycenters")
	report.Edges = metricfield.Summarize(report.EdgeTensors)
	report.Edges.Print(w, "Edge midpoints")
	if sm.Vertex {
		vs := metricfield.Summarize(report.VertexTensors)
		report.Vertices = &vs
		vs.Print(w, "Vertices")
	}

	if len(sm.OutFile) != 0 {
		var data []byte
		if data, err = yaml.Marshal(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err = os.WriteFile(sm.OutFile, data, 0644); err != nil {
			return
		}
		logger.Info("wrote report", "file", sm.OutFile)
	}
	return
}
