// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// filterRegex parses key + operator + target. The operator may be negated
// with a leading !.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~@/<>])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// An expression without an operator is a prefix match on the style id, so
// "chicago" is the same as "id^chicago". Malformed expressions are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("CITECTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			filters = append(filters, Filter{Key: "id", Operand: "^", Target: filterSpec})
			continue
		}

		key := parts[1]
		if key == "" {
			key = "id"
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Target:  parts[3],
		})
	}

	return filters
}

// FilterRows returns the rows matching every filter in spec.
func FilterRows(rows []Row, spec string) []Row {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	//nolint:prealloc
	var filtered []Row
	for _, r := range rows {
		if applyFilters(r, filters) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// applyFilters returns true if the row matches all of the provided filters.
// Filters on unknown keys are logged and ignored.
func applyFilters(r Row, filters []Filter) bool {
	for _, filter := range filters {
		var value string
		switch filter.Key {
		case "id":
			value = r.ID
		case "active":
			value = strconv.FormatBool(r.Active)
		default:
			log.Errorf("filter key not found: %s", filter.Key)
			continue
		}

		if !checkStringOperand(value, filter) {
			return false
		}
	}
	return true
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
