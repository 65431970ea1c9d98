package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ExepackError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("configuration file not found: %s", path)).
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ExepackError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Workflow errors

func SourceMissing(path string) *ExepackError {
	return New(CategorySource, SeverityFatal, fmt.Sprintf("entry script not found: %s", path)).
		WithContext("path", path)
}

func ToolInstallFailed(tool string, cause error) *ExepackError {
	return Wrap(cause, CategoryTool, SeverityFatal, "packaging tool installation failed").
		WithContext("tool", tool)
}

func DepsInstallFailed(packages []string, cause error) *ExepackError {
	return Wrap(cause, CategoryDeps, SeverityFatal, "dependency installation failed").
		WithContext("packages", packages)
}

func SpecWriteFailed(path string, cause error) *ExepackError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "spec file generation failed").
		WithContext("path", path)
}

func PackagingFailed(cause error) *ExepackError {
	return Wrap(cause, CategoryPackaging, SeverityFatal, "packaging tool execution failed")
}

func ArtifactMissing(path string) *ExepackError {
	return New(CategoryPackaging, SeverityFatal, fmt.Sprintf("expected output artifact not found: %s", path)).
		WithContext("path", path)
}

func CleanupFailed(path string, cause error) *ExepackError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "cleanup failed").
		WithContext("path", path)
}
