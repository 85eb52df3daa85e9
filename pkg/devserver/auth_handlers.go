package devserver

import (
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/api"
	"github.com/phoenixvc/mystira-client/pkg/httputil"
	"github.com/phoenixvc/mystira-client/pkg/logging"
)

type signupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type signinRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// handleSignup creates a verification challenge for a new account. The
// plain code comes back in debug_code so local clients can complete the
// flow without a mailbox.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEmail(req.Email) {
		httputil.WriteError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	code, expiresAt, err := s.auth.CreateChallenge(req.Email, req.DisplayName, true)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.ComponentInfo(logging.ComponentAuth, "Signup challenge created",
		zap.String("email", req.Email),
		zap.String("device", httputil.ExtractDeviceHeader(r)))

	httputil.WriteJSON(w, http.StatusOK, api.CodeChallenge{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Delivery:  "email",
		ExpiresAt: expiresAt,
		DebugCode: code,
	})
}

// handleSignin creates a verification challenge for an existing account
func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validEmail(req.Email) {
		httputil.WriteError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	code, expiresAt, err := s.auth.CreateChallenge(req.Email, "", false)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "no account for that email")
		return
	}

	s.logger.ComponentInfo(logging.ComponentAuth, "Signin challenge created",
		zap.String("email", req.Email),
		zap.String("device", httputil.ExtractDeviceHeader(r)))

	httputil.WriteJSON(w, http.StatusOK, api.CodeChallenge{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Delivery:  "email",
		ExpiresAt: expiresAt,
		DebugCode: code,
	})
}

// handleVerify exchanges a verification code for a token pair
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" {
		httputil.WriteError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	pair, err := s.auth.Verify(req.Email, req.Code)
	if err != nil {
		s.logger.ComponentWarn(logging.ComponentAuth, "Verification failed",
			zap.String("email", req.Email), zap.Error(err))
		httputil.WriteError(w, http.StatusUnauthorized, "verification failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pair)
}

// handleRefresh rotates a refresh token into a fresh pair
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := s.auth.Refresh(req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pair)
}

// handleLogout revokes a refresh token. Revoking an unknown token still
// succeeds so logout is idempotent.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.auth.Revoke(req.RefreshToken)
	httputil.WriteOK(w, nil)
}

func validEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
