package api

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sunbonsys/backend/internal/auth"
	"github.com/sunbonsys/backend/internal/store"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginHandler authenticates the admin and returns a bearer token.
//
// Order matters: the throttle is consulted before credentials so a client
// over the limit learns nothing about whether its guesses were right, and
// unknown emails burn a bcrypt comparison so the 401 takes about as long
// either way.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ReasonValidation)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, ReasonValidation)
		return
	}

	if !api.throttle.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, ReasonRateLimited)
		return
	}

	account, err := api.store.GetAdminByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.BurnPasswordCheck(req.Password)
			writeError(w, http.StatusUnauthorized, ReasonInvalidCredentials)
			return
		}
		log.Printf("Login failed to read admin account: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	if !auth.VerifyPassword(req.Password, account.PasswordHash) {
		writeError(w, http.StatusUnauthorized, ReasonInvalidCredentials)
		return
	}

	token, err := api.tokens.Issue(account)
	if err != nil {
		log.Printf("Login failed to issue token: %v", err)
		writeError(w, http.StatusInternalServerError, ReasonStorage)
		return
	}

	// Fire-and-forget: the login response does not wait on this write, and a
	// failure is logged rather than surfaced.
	go func(id int64) {
		if err := api.store.TouchAdminLogin(id, time.Now().UTC()); err != nil {
			log.Printf("Failed to record last login for account %d: %v", id, err)
		}
	}(account.ID)

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		User: LoginUser{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
		},
	})
}

// clientKey identifies the client for throttling. RealIP middleware has
// already resolved forwarded headers into RemoteAddr.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
