package validators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/fadp-go/internal/core/i18n"
)

func assertMessage(t *testing.T, key string, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, i18n.T(key), err.Error())
}

func TestValidateEmptyString(t *testing.T) {
	assert.NoError(t, ValidateEmptyString("value"))
	assertMessage(t, "validators.inputCannotBeEmpty", ValidateEmptyString("   "))
}

func TestValidateClient(t *testing.T) {
	assert.NoError(t, ValidateClient(""))
	assert.NoError(t, ValidateClient("100"))
	assertMessage(t, "validators.invalidClient", ValidateClient("1000"))
	assertMessage(t, "validators.invalidClient", ValidateClient("ab1"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://host:44300"))
	assert.Error(t, ValidateURL("host"))
	assert.Error(t, ValidateURL(""))
}

func TestValidateProjectName_Customer(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateProjectName("app.variant1", dir, true))
	assertMessage(t, "validators.inputCannotBeEmpty", ValidateProjectName("", dir, true))
	assertMessage(t, "validators.projectNameUppercaseError", ValidateProjectName("App", dir, true))
	assertMessage(t, "validators.projectNameLengthErrorExt", ValidateProjectName("mycomponent", dir, true))
	assertMessage(t, "validators.projectNameValidationErrorExt", ValidateProjectName("1app", dir, true))
	assertMessage(t, "validators.projectNameValidationErrorExt", ValidateProjectName("app..x", dir, true))
}

func TestValidateProjectName_Vendor(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateProjectName("app.variant", dir, false))
	assertMessage(t, "validators.projectNameCustomerPrefixError", ValidateProjectName("customer.app", dir, false))
	assertMessage(t, "validators.projectNameValidationErrorInt", ValidateProjectName("app-x", dir, false))
}

func TestValidateProjectName_Duplicate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "app.variant1"), 0755))

	err := ValidateProjectName("app.variant1", dir, true)
	require.Error(t, err)
	assert.Equal(t, i18n.T("validators.projectDuplicateName", "name", "app.variant1"), err.Error())
	assert.NoError(t, ValidateDuplicateProjectName("app.variant1", ""))
}

func TestValidateNamespaceAdp(t *testing.T) {
	assert.NoError(t, ValidateNamespaceAdp("customer.app.variant1", "app.variant1", true))
	assertMessage(t, "validators.inputCannotBeEmpty", ValidateNamespaceAdp("", "x", true))
	assertMessage(t, "validators.namespaceHasNoCustomerPrefix", ValidateNamespaceAdp("app.variant1", "app.variant1", true))
	assertMessage(t, "validators.namespaceEmptyAfterPrefix", ValidateNamespaceAdp("customer.", "", true))
	assertMessage(t, "validators.namespaceValidationError", ValidateNamespaceAdp("customer.A-b", "", true))
	assertMessage(t, "validators.differentNamespaceThanProjectName", ValidateNamespaceAdp("customer.other", "app.variant1", true))
	assertMessage(t, "validators.namespaceLengthError", ValidateNamespaceAdp("customer.mycomponent", "", true))

	assert.NoError(t, ValidateNamespaceAdp("app.variant1", "app.variant1", false))
	assertMessage(t, "validators.namespaceCustomerPrefixError", ValidateNamespaceAdp("customer.app", "app", false))
}

func TestValidateJSON(t *testing.T) {
	assert.NoError(t, ValidateJSON(`{"a":1}`))
	assertMessage(t, "validators.invalidJson", ValidateJSON(`{"a":`))
}

func TestValidateSpecialChars(t *testing.T) {
	assert.NoError(t, ValidateSpecialChars("model_1.main-$"))
	assertMessage(t, "validators.invalidCharacters", ValidateSpecialChars("model 1"))
}

func TestIsDataSourceURI(t *testing.T) {
	assert.True(t, IsDataSourceURI("/sap/opu/odata/sap/SALES_SRV/"))
	assert.False(t, IsDataSourceURI("/sap/opu/odata/sap/SALES_SRV"))
	assert.False(t, IsDataSourceURI("/sap/opu odata/"))
}

func TestHasCustomerPrefix(t *testing.T) {
	assert.True(t, HasCustomerPrefix("Customer.app"))
	assert.False(t, HasCustomerPrefix("app"))
}

func TestHasContentDuplication(t *testing.T) {
	existing := []map[string]any{{"modelId": "customer.main"}, {"modelId": "customer.other"}}
	assert.NoError(t, HasContentDuplication("customer.new", "modelId", existing))
	err := HasContentDuplication("customer.main", "modelId", existing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer.main")
}

func TestValidateDuplicate(t *testing.T) {
	assert.NoError(t, ValidateDuplicate([]string{"a", "b"}))
	assert.Error(t, ValidateDuplicate([]string{"a", "b", "a"}))
}
