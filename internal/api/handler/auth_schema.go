package handler

// dataResponse is the success envelope wrapping every 2xx payload.
type dataResponse struct {
	Data any `json:"data"`
}

// errorResponse mirrors the envelope rendered by the central error handler.
// Declared here so the swagger annotations can reference it.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Request types ---

type signUpRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required"`
}

type adminSignUpRequest struct {
	Username string `json:"username"  validate:"required"`
	Password string `json:"password"  validate:"required"`
	Nickname string `json:"nickname"  validate:"required"`
	AdminKey string `json:"admin_key" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type roleResponse struct {
	Role string `json:"role"`
}

type userResponse struct {
	Username string         `json:"username"`
	Nickname string         `json:"nickname"`
	Roles    []roleResponse `json:"roles"`
}

type loginResponse struct {
	Token string `json:"token"`
}
