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
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/anisometric/metricfield"
)

// FieldsCmd lists the field catalog
var FieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the available tensor fields",
	Long:  `List the available tensor fields with the names accepted in the input parameters file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		PrintFields(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(FieldsCmd)
}

func PrintFields(w io.Writer) {
	for _, name := range metricfield.FieldNames() {
		f, _ := metricfield.NewFieldType(name)
		fmt.Fprintf(w, "%-10s %s\n", name, f.Description())
	}
	fmt.Fprintf(w, "\naccepted names, case insensitive: %s\n", strings.Join(metricfield.FieldAliases(), ", "))
}
