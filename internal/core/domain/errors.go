package domain

// Error is a domain failure with a stable machine-readable code. The codes
// are part of the wire contract and must not be renamed.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unknown-user and wrong-password both collapse to ErrInvalidCredentials so
// callers cannot enumerate usernames. Likewise every token failure collapses
// to ErrInvalidToken so validation internals never leak.
var (
	ErrUserExists         = &Error{Code: "USER_ALREADY_EXISTS", Message: "user already exists"}
	ErrInvalidCredentials = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid username or password"}
	ErrAccessDenied       = &Error{Code: "ACCESS_DENIED", Message: "access denied: insufficient privileges"}
	ErrInvalidInput       = &Error{Code: "INVALID_INPUT_VALUE", Message: "invalid input value"}
	ErrInvalidToken       = &Error{Code: "INVALID_TOKEN", Message: "invalid token"}
	ErrInvalidAdminKey    = &Error{Code: "INVALID_ADMIN_KEY", Message: "invalid admin key"}
	ErrUserNotFound       = &Error{Code: "USER_NOT_FOUND", Message: "user not found"}
)
