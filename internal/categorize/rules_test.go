package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/insight-server/internal/finance"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRulesFile_Valid(t *testing.T) {
	path := writeRulesFile(t, `
[[rules]]
category = "coffee"
keywords = ["espresso", "latte"]
priority = 10

[[rules]]
category = "transport"
keywords = ["tram"]
priority = 9
`)

	rules, err := LoadRulesFile(path)

	assert.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, finance.CategoryCoffee, rules[0].Category)
	assert.Equal(t, []string{"espresso", "latte"}, rules[0].Keywords)
	assert.Equal(t, 10, rules[0].Priority)
}

func TestLoadRulesFile_UnknownCategory(t *testing.T) {
	path := writeRulesFile(t, `
[[rules]]
category = "spaceships"
keywords = ["rocket"]
priority = 5
`)

	_, err := LoadRulesFile(path)
	assert.Error(t, err)
}

func TestLoadRulesFile_Empty(t *testing.T) {
	path := writeRulesFile(t, "")

	_, err := LoadRulesFile(path)
	assert.Error(t, err)
}

func TestDefaultRules_CategoriesAreValid(t *testing.T) {
	for _, rule := range DefaultRules() {
		assert.True(t, rule.Category.Valid(), "category %q", rule.Category)
		assert.NotEmpty(t, rule.Keywords)
		assert.Positive(t, rule.Priority)
	}
}
