// Package optlog provides structured progress logging for iterative
// numerical optimization runs. A Logger observes an optimization run at
// defined lifecycle points (initialization, each iteration), captures a
// caller-chosen ordered set of fields from the run's state, and delivers
// the resulting records asynchronously to a terminal or file backend.
package optlog

import (
	"errors"
	"strings"
)

// Field identifies a loggable piece of optimization state. Its string
// value is the display key under which the field is emitted.
type Field string

const (
	FieldBestCost          Field = "BestCost"
	FieldBestParam         Field = "BestParam"
	FieldCost              Field = "Cost"
	FieldFunctionCounts    Field = "FunctionCounts"
	FieldIsBest            Field = "IsBest"
	FieldIter              Field = "Iter"
	FieldLastBestIter      Field = "LastBestIter"
	FieldMaxIters          Field = "MaxIters"
	FieldParam             Field = "Param"
	FieldTargetCost        Field = "TargetCost"
	FieldTerminationReason Field = "TerminationReason"
	FieldTerminationStatus Field = "TerminationStatus"
	FieldTime              Field = "Time"
)

var fieldMap = map[string]Field{
	"bestcost":          FieldBestCost,
	"bestparam":         FieldBestParam,
	"cost":              FieldCost,
	"functioncounts":    FieldFunctionCounts,
	"isbest":            FieldIsBest,
	"iter":              FieldIter,
	"lastbestiter":      FieldLastBestIter,
	"maxiters":          FieldMaxIters,
	"param":             FieldParam,
	"targetcost":        FieldTargetCost,
	"terminationreason": FieldTerminationReason,
	"terminationstatus": FieldTerminationStatus,
	"time":              FieldTime,
}

// DefaultFields returns the selection used by a freshly constructed
// Logger: function counts, best cost, cost, and iteration number.
func DefaultFields() []Field {
	return []Field{FieldFunctionCounts, FieldBestCost, FieldCost, FieldIter}
}

// ParseField parses a string into a Field. It is case-insensitive and
// returns an error if the input does not name a known field.
func ParseField(s string) (Field, error) {
	if f, ok := fieldMap[strings.ToLower(s)]; ok {
		return f, nil
	}

	return "", errors.New("invalid field: " + s)
}

// ParseFields parses a comma-separated list of field names, e.g.
// "Iter,Cost,BestCost". Whitespace around names is ignored. Order and
// duplicates are preserved.
func ParseFields(s string) ([]Field, error) {
	parts := strings.Split(s, ",")
	fields := make([]Field, 0, len(parts))

	for _, p := range parts {
		f, err := ParseField(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)
	}

	return fields, nil
}
