// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/staranto/sitectl/internal/output"
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

var accountIDRe = regexp.MustCompile(`^[0-9]{12}$`)

// AccountIDValidator accepts an empty value (checked later, together with the
// other required settings) or a 12 digit AWS account id.
func AccountIDValidator(value any) error {
	s := value.(string)
	if s != "" && !accountIDRe.MatchString(s) {
		return errors.New("must be a 12 digit AWS account id")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return errors.New("must not be negative")
		}
	case time.Duration:
		if v < 0 {
			return errors.New("must not be negative")
		}
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}
