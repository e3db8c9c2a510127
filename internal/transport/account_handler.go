package transport

import (
	"net/http"

	"barwy-shop/internal/middleware"
	"barwy-shop/internal/models"
	"barwy-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgUnauthorized = "Необхідна авторизація"

// AccountHandler handles HTTP requests for accounts and tokens
type AccountHandler struct {
	accounts service.AccountService
	logger   *zap.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// RegisterRoutes registers all account routes
func (h *AccountHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/account", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.Profile)
		})
	})
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var vm models.RegisterVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Registration decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.accounts.Register(r.Context(), vm), http.StatusCreated)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var vm models.LoginVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Login decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.accounts.Login(r.Context(), vm), 0)
}

func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var vm models.RefreshVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Refresh decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.accounts.Refresh(r.Context(), vm), 0)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserUUID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var vm models.RefreshVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.accounts.Logout(r.Context(), userID, vm.RefreshToken), 0)
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserUUID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	respond(w, h.accounts.Profile(r.Context(), userID), 0)
}
