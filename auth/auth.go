// Package auth is the mocked login surface: any non-empty credentials
// succeed and yield a bearer token. There are no password checks and no
// per-user authorization anywhere behind it.
package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"brewhouse/globals"
	"brewhouse/kv"
	"brewhouse/loyalty"
	"brewhouse/middleware"
	"brewhouse/models"
	"brewhouse/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 24 * time.Hour

// The original demo hardwires one admin login.
const adminEmail = "admin@coffee.com"

type Handler struct {
	KV kv.Store
}

func NewHandler(store kv.Store) *Handler {
	return &Handler{KV: store}
}

func issueToken(account models.Account) (string, error) {
	claims := middleware.Claims{
		Username: account.Name,
		UserID:   account.ID,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account := models.Account{
		ID:    "1",
		Name:  "Coffee Lover",
		Email: input.Email,
		Phone: "+1 (555) 123-4567",
		Role:  models.RoleCustomer,
	}
	if input.Email == adminEmail {
		account.ID = "admin-1"
		account.Name = "Admin User"
		account.Role = models.RoleAdmin
	}

	// Fold in the persisted balance; a gateway failure reads as zero.
	points, err := loyalty.LoadBalance(r.Context(), h.KV, account.ID)
	if err != nil {
		log.Printf("auth: failed to load balance for %s: %v", account.ID, err)
	}
	account.LoyaltyPoints = points

	tokenString, err := issueToken(account)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": tokenString,
		"user":  account,
		"tier":  loyalty.TierFor(account.LoyaltyPoints),
	})
}

// Register handles POST /auth/register. Accounts are not persisted; the
// profile lives in the token and the loyalty balance in the KV store.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	account := models.Account{
		ID:    strconv.FormatInt(time.Now().UnixNano(), 10),
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Role:  models.RoleCustomer,
	}

	tokenString, err := issueToken(account)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token": tokenString,
		"user":  account,
		"tier":  loyalty.TierFor(0),
	})
}
