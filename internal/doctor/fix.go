package doctor

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/decimalog/internal/paths"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a slice of FixResult indicating what was fixed or why it couldn't be fixed.
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool

	// Description explains what was fixed or why it couldn't be fixed.
	Description string

	// Error contains the error if the fix failed.
	Error error
}

// fixAction is the remediation available for a pathIssue.
type fixAction int

const (
	fixNone fixAction = iota
	fixCreate
	fixChmod
)

// logDirPerm matches the permission Setup uses for the log folder (rwxr-xr-x).
const logDirPerm os.FileMode = 0o755

// DirFixer creates missing log folders and tightens world-writable ones.
// It is embedded in LogDirCheck to provide fix capability.
type DirFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable issues.
func (f *DirFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// Fix attempts to fix all fixable issues.
// Returns a FixResult for each fixable issue.
func (f *DirFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if issue.Fix == fixNone {
			continue
		}
		results = append(results, f.fixIssue(issue))
	}
	return results
}

// fixIssue attempts to fix a single issue.
func (f *DirFixer) fixIssue(issue pathIssue) FixResult {
	result := FixResult{
		Path: issue.Path,
	}

	switch issue.Fix {
	case fixCreate:
		if err := paths.EnsureDir(issue.Path, logDirPerm); err != nil {
			result.Description = fmt.Sprintf("failed to create directory: %v", err)
			result.Error = errors.Wrapf(err, "mkdir %s", issue.Path)
			return result
		}
		result.Description = fmt.Sprintf("created with mode %04o", logDirPerm)
	case fixChmod:
		if err := os.Chmod(issue.Path, logDirPerm); err != nil {
			result.Description = fmt.Sprintf("failed to chmod %04o: %v", logDirPerm, err)
			result.Error = errors.Wrapf(err, "chmod %04o %s", logDirPerm, issue.Path)
			return result
		}
		result.Description = fmt.Sprintf("chmod %04o", logDirPerm)
	default:
		result.Description = "no automatic fix"
		result.Error = errors.Newf("cannot fix: %s", issue.Problem)
		return result
	}

	result.Fixed = true
	return result
}

// setIssues stores the issues found by the check for later fixing.
func (f *DirFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

// CountFixable returns the number of fixable issues.
func (f *DirFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fix != fixNone {
			count++
		}
	}
	return count
}
