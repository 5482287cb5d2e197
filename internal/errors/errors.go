// Package errors provides typed errors for promptsmith.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigNotFound      ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid       ErrorCode = "CONFIG_INVALID"
	ErrTemplateNotFound    ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrRenderFailed        ErrorCode = "RENDER_FAILED"
	ErrTokenizerFailed     ErrorCode = "TOKENIZER_FAILED"
	ErrAnthropicAuthFailed ErrorCode = "ANTHROPIC_AUTH_FAILED"
	ErrReviewFailed        ErrorCode = "REVIEW_FAILED"
)

// PromptsmithError represents a typed error with user-friendly hints.
type PromptsmithError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *PromptsmithError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PromptsmithError) Unwrap() error {
	return e.Cause
}

// New creates a new PromptsmithError.
func New(code ErrorCode, message, hint string) *PromptsmithError {
	return &PromptsmithError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new PromptsmithError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *PromptsmithError {
	return &PromptsmithError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigNotFound returns an error for missing config file.
func ConfigNotFound(path string) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Create a config at ~/.config/promptsmith/config.yaml",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/promptsmith/config.yaml",
	}
}

// TemplateNotFound returns an error for an unregistered template name.
func TemplateNotFound(name string) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrTemplateNotFound,
		Message: fmt.Sprintf("template not found: %s", name),
		Hint:    "Run `promptsmith templates` to list registered templates",
	}
}

// RenderFailed returns an error for a placeholder with no matching variable.
func RenderFailed(template, placeholder string) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrRenderFailed,
		Message: fmt.Sprintf("template %q: no variable for placeholder {{%s}}", template, placeholder),
		Hint:    "Pass the missing value with --var " + placeholder + "=<value>",
	}
}

// TokenizerFailed returns an error for tokenizer initialization failures.
func TokenizerFailed(encoding string, cause error) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrTokenizerFailed,
		Message: fmt.Sprintf("failed to load tokenizer encoding %q", encoding),
		Hint:    "Set TIKTOKEN_CACHE_DIR for offline use, or switch to the built-in estimator",
		Cause:   cause,
	}
}

// AnthropicAuthFailed returns an error for a missing API key.
func AnthropicAuthFailed() *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrAnthropicAuthFailed,
		Message: "Anthropic API key not found",
		Hint:    "Set the ANTHROPIC_API_KEY environment variable",
	}
}

// ReviewFailed returns an error for a failed prompt review call.
func ReviewFailed(message string, cause error) *PromptsmithError {
	return &PromptsmithError{
		Code:    ErrReviewFailed,
		Message: message,
		Cause:   cause,
	}
}
