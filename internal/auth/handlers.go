package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"simple-calculator/internal/db"
	"simple-calculator/internal/logger"
)

// Credentials - тело запросов регистрации и входа
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register обрабатывает POST /api/v1/register
func Register(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password must not be empty", http.StatusBadRequest)
		return
	}

	_, err := db.CreateUser(req.Login, req.Password)
	if err != nil {
		if err == db.ErrUserAlreadyExists {
			http.Error(w, "User with this login already exists", http.StatusConflict)
			return
		}
		logger.LogERROR(fmt.Sprintf("Failed to create user %q: %v", req.Login, err))
		http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	logger.LogINFO(fmt.Sprintf("Registered user %q", req.Login))
	w.WriteHeader(http.StatusOK)
}

// Login обрабатывает POST /api/v1/login и возвращает JWT токен
func Login(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := db.AuthenticateUser(req.Login, req.Password)
	if err != nil {
		if err == db.ErrUserNotFound || err == db.ErrInvalidCredentials {
			http.Error(w, "Invalid login or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Authentication failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		http.Error(w, "Failed to create token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TokenResponse{Token: token})
}
