package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

type AuthHandler struct {
	directory usecase.UserDirectory
	secret    string
}

func NewAuthHandler(directory usecase.UserDirectory, secret string) *AuthHandler {
	return &AuthHandler{directory: directory, secret: secret}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account. The directory is first-come-first-served
// on usernames.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	if err := h.directory.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			httpx.JSONError(w, http.StatusBadRequest, "Username already registered")
			return
		}
		httpx.JSONInternalError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"msg": "User registered successfully"})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token implements the password login flow: form-encoded credentials in,
// a 30-minute bearer token out. Unknown username and wrong password
// produce the same 401.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	if err := h.directory.VerifyCredentials(r.Context(), username, password); err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			httpx.JSONUnauthorized(w, "Incorrect username or password")
			return
		}
		httpx.JSONInternalError(w)
		return
	}

	token, err := auth.GenerateToken(h.secret, username, auth.AccessTokenTTL)
	if err != nil {
		httpx.JSONInternalError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
