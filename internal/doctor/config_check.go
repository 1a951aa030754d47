package doctor

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/decimalog/internal/config"
	"github.com/thoreinstein/decimalog/pkg/fileutil"
)

// ConfigCheck validates the decimalog config file: YAML syntax, known keys
// and field values.
type ConfigCheck struct {
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check for the config file at path.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the config file check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	data, err := fileutil.ReadFileWithLimit(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Status = SeverityInfo
			result.Message = "no config file; defaults apply"
			result.FixHint = "decimalog config set level INFO"
			return result
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("read error: %v", err)
		return result
	}

	// Empty files are valid (no content to parse)
	if len(data) == 0 {
		result.Status = SeverityPass
		result.Message = "empty config file; defaults apply"
		return result
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("YAML syntax error: %v", err)
		return result
	}

	var unknown []string
	for key := range raw {
		if !config.IsKey(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("type error: %v", err)
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		problems := make([]string, 0, len(errs))
		for _, e := range errs {
			problems = append(problems, e.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid value(s)", len(errs))
		result.Details["errors"] = problems
		result.FixHint = "decimalog config set <key> <value>"
		return result
	}

	if len(unknown) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("unknown key(s) ignored: %v", unknown)
		result.Details["unknown_keys"] = unknown
		return result
	}

	result.Status = SeverityPass
	result.Message = "config file is valid"
	return result
}
