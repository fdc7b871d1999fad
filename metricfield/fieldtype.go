package metricfield

import (
	"fmt"
	"sort"
	"strings"
)

type FieldType uint8

const (
	FieldNone FieldType = iota
	FieldStretchX
	FieldStretchY
	FieldSink
	FieldSwirl
	FieldSine
	FieldCenter
	FieldPerimeter
	FieldRight
	FieldStrain
	numFieldTypes
)

var fieldNames = [numFieldTypes]string{
	"none", "stretchX", "stretchY", "sink", "swirl", "sine",
	"center", "perimeter", "right", "strain",
}

var FieldNameMap = map[string]FieldType{
	"none":      FieldNone,
	"isotropic": FieldNone,
	"stretchx":  FieldStretchX,
	"stretchy":  FieldStretchY,
	"sink":      FieldSink,
	"swirl":     FieldSwirl,
	"sine":      FieldSine,
	"center":    FieldCenter,
	"perimeter": FieldPerimeter,
	"right":     FieldRight,
	"strain":    FieldStrain,
}

var fieldDescriptions = [numFieldTypes]string{
	"identity, no anisotropy",
	"3x stretch along X",
	"3x stretch along Y",
	"radial compression orthogonal to the line through the origin",
	"radial expansion along the line through the origin",
	"compression along the tangent of y = 1.8 sin(6x)",
	"isotropic, denser toward the origin",
	"isotropic, denser away from the origin",
	"isotropic, denser on the positive X side",
	"isotropic, scaled by an external strain sample",
}

func (f FieldType) String() string {
	if f < numFieldTypes {
		return fieldNames[f]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(f))
}

func (f FieldType) Description() string {
	if f < numFieldTypes {
		return fieldDescriptions[f]
	}
	return ""
}

func (f FieldType) Valid() bool { return f < numFieldTypes }

// NewFieldType parses a field name, case insensitive. Unknown names are a
// configuration error.
func NewFieldType(name string) (f FieldType, err error) {
	var (
		ok  bool
		key = strings.ToLower(strings.TrimSpace(name))
	)
	if f, ok = FieldNameMap[key]; !ok {
		err = &ConfigurationError{
			Field:  "field type",
			Reason: fmt.Sprintf("unknown field %q, must be one of %s", name, strings.Join(FieldNames(), ", ")),
		}
	}
	return
}

// FieldNames lists the catalog in enum order
func FieldNames() (names []string) {
	names = make([]string, numFieldTypes)
	copy(names, fieldNames[:])
	return
}

// FieldAliases lists every accepted spelling, sorted
func FieldAliases() (keys []string) {
	for k := range FieldNameMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
