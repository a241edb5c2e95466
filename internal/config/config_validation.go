// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks the merged configuration against its `validate` tags and
// maps the first failing section to its sentinel error.
func (cfg *StructuredConfig) validate() error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("error validating config: %w", err)
	}

	fe := fieldErrs[0]
	return fmt.Errorf("%w: %s failed on %q", sectionError(fe.StructNamespace()), fe.StructNamespace(), fe.Tag())
}

// ValidateClient checks the settings configctl depends on.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: empty base url", ErrInvalidAdapterConfigs)
	}
	if err := structValidator.Var(cfg.Adapter.BaseURL, "url"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAdapterConfigs, err)
	}

	return nil
}

// ValidateOperator checks the settings needed to mint admin tokens locally.
func (cfg *StructuredConfig) ValidateOperator() error {
	if err := structValidator.Struct(cfg.App); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAppConfigs, err)
	}

	return nil
}

func sectionError(namespace string) error {
	section := namespace
	if parts := strings.SplitN(namespace, ".", 3); len(parts) > 1 {
		section = parts[1]
	}

	switch section {
	case "App":
		return ErrInvalidAppConfigs
	case "Server":
		return ErrInvalidServerConfigs
	case "Storage":
		return ErrInvalidStorageConfigs
	case "Adapter":
		return ErrInvalidAdapterConfigs
	case "Workers":
		return ErrInvalidWorkerConfigs
	default:
		return ErrInvalidConfig
	}
}
