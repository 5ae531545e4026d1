// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/citectl/internal/catalog"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// CatalogValidator checks that the value names a known catalog source.
func CatalogValidator(value any) error {
	if _, err := catalog.New(catalog.Spec{Source: value.(string)}); err != nil {
		return err
	}
	return nil
}
