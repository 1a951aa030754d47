package doctor

import (
	"fmt"
	"os"
	"runtime"
)

// LogDirCheck validates that the log folder exists and is writable.
type LogDirCheck struct {
	DirFixer

	folder string
}

var (
	_ Check = (*LogDirCheck)(nil)
	_ Fixer = (*LogDirCheck)(nil)
)

// NewLogDirCheck creates a check for the given log folder.
func NewLogDirCheck(folder string) *LogDirCheck {
	return &LogDirCheck{folder: folder}
}

// Name returns the unique identifier for this check.
func (c *LogDirCheck) Name() string {
	return "log-folder"
}

// Category returns the grouping for this check.
func (c *LogDirCheck) Category() string {
	return "filesystem"
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fix         fixAction
	FixHint     string
}

// Run executes the log folder diagnostic check.
func (c *LogDirCheck) Run() *CheckResult {
	issues := c.checkDirectory(c.folder)
	c.setIssues(issues)
	return c.buildResult(issues)
}

// checkDirectory validates the folder path and permissions.
func (c *LogDirCheck) checkDirectory(path string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Setup creates the folder; report it so --fix can create it early.
		return []pathIssue{{
			Path:     path,
			Problem:  "log folder does not exist yet",
			Severity: SeverityInfo,
			Fix:      fixCreate,
			FixHint:  "mkdir -p " + path,
		}}
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}

	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Problem:  "expected directory but found file",
			Severity: SeverityError,
			FixHint:  "remove the file or pass --folder",
		}}
	}

	var issues []pathIssue

	// Check if directory is writable by creating a temp file
	if writable, err := isDirectoryWritable(path); err != nil || !writable {
		issues = append(issues, pathIssue{
			Path:        path,
			Problem:     "directory is not writable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+w " + path,
		})
	}

	// Unix permissions do not apply on Windows
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Problem:     "directory is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fix:         fixChmod,
			FixHint:     "chmod 755 " + path,
		})
	}

	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) (bool, error) {
	tmpFile, err := os.CreateTemp(path, ".decimalog-doctor-test-*")
	if err != nil {
		return false, err
	}

	// Clean up the test file
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	os.Remove(tmpPath)

	return true, nil
}

// buildResult reports the worst issue's severity; the first hint wins.
func (c *LogDirCheck) buildResult(issues []pathIssue) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  c.folder + " is writable",
		Details:  map[string]any{"path": c.folder},
	}
	if len(issues) == 0 {
		return result
	}

	details := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		result.Status = max(result.Status, issue.Severity)
		if result.FixHint == "" {
			result.FixHint = issue.FixHint
		}

		d := map[string]any{
			"path":     issue.Path,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			d["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			d["fix_hint"] = issue.FixHint
		}
		details = append(details, d)
	}

	result.Message = issues[0].Problem
	if len(issues) > 1 {
		result.Message = fmt.Sprintf("%d issues with %s", len(issues), c.folder)
	}
	result.Details["issue_count"] = len(issues)
	result.Details["issues"] = details
	result.Fixable = c.CanFix()
	return result
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
