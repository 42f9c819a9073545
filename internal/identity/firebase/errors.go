package firebase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Provider error codes, in the client SDK's auth/* namespace
const (
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeUserDisabled      = "auth/user-disabled"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodeMissingPassword   = "auth/missing-password"
	CodeNetworkFailed     = "auth/network-request-failed"
	CodeInternal          = "auth/internal-error"
)

// restCodes maps REST error messages onto auth/* codes
var restCodes = map[string]string{
	"EMAIL_NOT_FOUND":             CodeUserNotFound,
	"INVALID_PASSWORD":            CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   CodeInvalidCredential,
	"INVALID_EMAIL":               CodeInvalidEmail,
	"EMAIL_EXISTS":                CodeEmailInUse,
	"WEAK_PASSWORD":               CodeWeakPassword,
	"USER_DISABLED":               CodeUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": CodeTooManyRequests,
	"MISSING_PASSWORD":            CodeMissingPassword,
}

// parseError converts a REST error body into a domain.AuthError.
// Messages look like "WEAK_PASSWORD : Password should be at least 6 characters".
func parseError(body []byte) *domain.AuthError {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error.Message == "" {
		return &domain.AuthError{Code: CodeInternal, Message: rawMessage(CodeInternal)}
	}

	restCode, detail, _ := strings.Cut(resp.Error.Message, ":")
	restCode = strings.TrimSpace(restCode)
	detail = strings.TrimSpace(detail)

	code, ok := restCodes[restCode]
	if !ok {
		code = "auth/" + strings.ReplaceAll(strings.ToLower(restCode), "_", "-")
	}

	msg := rawMessage(code)
	if detail != "" {
		msg = fmt.Sprintf("Firebase: %s (%s).", detail, code)
	}
	return &domain.AuthError{Code: code, Message: msg}
}

// rawMessage renders a code the way the provider SDK does
func rawMessage(code string) string {
	return fmt.Sprintf("Firebase: Error (%s).", code)
}
