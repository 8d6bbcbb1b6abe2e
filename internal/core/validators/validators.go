// Package validators holds the input checks used by the prompts. Every
// validator returns nil for valid input and a localized error otherwise.
package validators

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
)

const (
	customerPrefix = "customer"
	maxNameLength  = 61
)

var (
	clientRegex        = regexp.MustCompile(`^\d{3}$`)
	projectNameRegex   = regexp.MustCompile(`^[a-z]+((\.)?[a-z0-9])*$`)
	specialCharsRegex  = regexp.MustCompile(`^[a-zA-Z0-9_$.\-]+$`)
	dataSourceURIRegex = regexp.MustCompile(`^/[^\s]*/$`)
	upperCaseRegex     = regexp.MustCompile(`[A-Z]`)
)

// ValidateEmptyString rejects blank input.
func ValidateEmptyString(value string) error {
	if strings.TrimSpace(value) == "" {
		return i18n.Error("validators.inputCannotBeEmpty")
	}
	return nil
}

// ValidateClient accepts an empty client or exactly three digits.
func ValidateClient(client string) error {
	if client == "" || clientRegex.MatchString(client) {
		return nil
	}
	return i18n.Error("validators.invalidClient")
}

// ValidateURL accepts absolute http(s) URLs.
func ValidateURL(value string) error {
	if err := ValidateEmptyString(value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return i18n.Error("validators.invalidUrl", "url", value)
	}
	return nil
}

// ValidateProjectName checks an adaptation project name and that no directory
// with that name exists in destinationPath.
func ValidateProjectName(name, destinationPath string, isCustomerBase bool) error {
	if err := ValidateEmptyString(name); err != nil {
		return err
	}
	if upperCaseRegex.MatchString(name) {
		return i18n.Error("validators.projectNameUppercaseError")
	}
	if isCustomerBase {
		if err := validateProjectNameExternal(name); err != nil {
			return err
		}
	} else if err := validateProjectNameInternal(name); err != nil {
		return err
	}
	return ValidateDuplicateProjectName(name, destinationPath)
}

func validateProjectNameExternal(name string) error {
	if len(name) > maxNameLength || strings.HasSuffix(strings.ToLower(name), "component") {
		return i18n.Error("validators.projectNameLengthErrorExt")
	}
	if !projectNameRegex.MatchString(name) {
		return i18n.Error("validators.projectNameValidationErrorExt")
	}
	return nil
}

func validateProjectNameInternal(name string) error {
	if strings.HasPrefix(strings.ToLower(name), customerPrefix) {
		return i18n.Error("validators.projectNameCustomerPrefixError")
	}
	if len(name) > maxNameLength || strings.HasSuffix(strings.ToLower(name), "component") {
		return i18n.Error("validators.projectNameLengthErrorInt")
	}
	if !projectNameRegex.MatchString(name) {
		return i18n.Error("validators.projectNameValidationErrorInt")
	}
	return nil
}

// ValidateDuplicateProjectName rejects a name already used by a directory in destinationPath.
func ValidateDuplicateProjectName(name, destinationPath string) error {
	if destinationPath == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(destinationPath, name)); err == nil {
		return i18n.Error("validators.projectDuplicateName", "name", name)
	}
	return nil
}

// ValidateNamespaceAdp checks the namespace of a new app variant. In the
// customer layer the namespace must be "customer.<projectName>".
func ValidateNamespaceAdp(namespace, projectName string, isCustomerBase bool) error {
	if err := ValidateEmptyString(namespace); err != nil {
		return err
	}
	if !isCustomerBase {
		if strings.HasPrefix(strings.ToLower(namespace), customerPrefix+".") {
			return i18n.Error("validators.namespaceCustomerPrefixError")
		}
		if !projectNameRegex.MatchString(namespace) {
			return i18n.Error("validators.namespaceValidationError")
		}
		return nil
	}

	if !strings.HasPrefix(namespace, customerPrefix+".") {
		return i18n.Error("validators.namespaceHasNoCustomerPrefix")
	}
	rest := strings.TrimPrefix(namespace, customerPrefix+".")
	if rest == "" {
		return i18n.Error("validators.namespaceEmptyAfterPrefix")
	}
	if len(namespace) > maxNameLength || strings.HasSuffix(strings.ToLower(namespace), "component") {
		return i18n.Error("validators.namespaceLengthError")
	}
	if !projectNameRegex.MatchString(rest) {
		return i18n.Error("validators.namespaceValidationError")
	}
	if projectName != "" && namespace != customerPrefix+"."+projectName {
		return i18n.Error("validators.differentNamespaceThanProjectName")
	}
	return nil
}

// ValidateJSON accepts well formed JSON.
func ValidateJSON(value string) error {
	if !json.Valid([]byte(value)) {
		return i18n.Error("validators.invalidJson")
	}
	return nil
}

// ValidateSpecialChars accepts letters, digits and _ $ . -
func ValidateSpecialChars(value string) error {
	if !specialCharsRegex.MatchString(value) {
		return i18n.Error("validators.invalidCharacters")
	}
	return nil
}

// IsDataSourceURI reports whether uri looks like "/path/to/service/".
func IsDataSourceURI(uri string) bool {
	return dataSourceURIRegex.MatchString(uri)
}

// HasCustomerPrefix reports whether value starts with "customer".
func HasCustomerPrefix(value string) bool {
	return strings.HasPrefix(strings.ToLower(value), customerPrefix)
}

// HasContentDuplication rejects value when it is already used as property in existing.
func HasContentDuplication(value, property string, existing []map[string]any) error {
	for _, item := range existing {
		if v, ok := item[property].(string); ok && v == value {
			return i18n.Error("validators.contentDuplication", "property", property, "value", value)
		}
	}
	return nil
}

// ValidateDuplicate rejects lists that contain the same value twice.
func ValidateDuplicate(values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return i18n.Error("validators.duplicateValue", "value", v)
		}
		seen[v] = true
	}
	return nil
}
