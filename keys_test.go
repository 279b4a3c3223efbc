package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeToCamel(t *testing.T) {
	assert.Equal(t, "firstName", SnakeToCamel("first_name"))
	assert.Equal(t, "id", SnakeToCamel("id"))
}

func TestKebabToCamel(t *testing.T) {
	assert.Equal(t, "firstName", KebabToCamel("first-name"))
}

func TestScreamingToCamel(t *testing.T) {
	assert.Equal(t, "firstName", ScreamingToCamel("FIRST_NAME"))
}

func TestPascalToCamel(t *testing.T) {
	assert.Equal(t, "firstName", PascalToCamel("FirstName"))
	assert.Equal(t, "", PascalToCamel(""))
}

func TestCamelToSnakeHeader(t *testing.T) {
	assert.Equal(t, "first_name", CamelToSnakeHeader("firstName"))
	assert.Equal(t, "id", CamelToSnakeHeader("id"))
}

func TestCamelToKebabHeader(t *testing.T) {
	assert.Equal(t, "first-name", CamelToKebabHeader("firstName"))
}

func TestCamelToScreamingHeader(t *testing.T) {
	assert.Equal(t, "FIRST_NAME", CamelToScreamingHeader("firstName"))
}

func TestApplyKeyDecodeStrategy_Custom(t *testing.T) {
	strat := KeyDecodeCustomStrategy(func(s string) string { return "x_" + s })
	assert.Equal(t, "x_raw", ApplyKeyDecodeStrategy("raw", strat))
}

func TestApplyKeyEncodeStrategy_Default(t *testing.T) {
	assert.Equal(t, "firstName", ApplyKeyEncodeStrategy("firstName", KeyEncodeDefaultStrategy()))
}

func TestKeyRoundTrip_SnakeSymmetric(t *testing.T) {
	raw := "first_name"
	camel := ApplyKeyDecodeStrategy(raw, KeyDecodeSnakeStrategy())
	back := ApplyKeyEncodeStrategy(camel, KeyEncodeSnakeStrategy())
	assert.Equal(t, raw, back)
}
