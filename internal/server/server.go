// Package server exposes the splitledger services over a JSON HTTP API.
// It is thin plumbing: handlers decode and validate requests, call one
// service operation, and map the result or domain error onto the response.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/export"
	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

// Server holds the services behind the HTTP API.
type Server struct {
	users    *service.UserService
	expenses *service.ExpenseService
	balances *service.BalanceService
	jwt      *auth.JWTManager
}

// New creates a Server over the given services.
func New(users *service.UserService, expenses *service.ExpenseService, balances *service.BalanceService, jwt *auth.JWTManager) *Server {
	return &Server{
		users:    users,
		expenses: expenses,
		balances: balances,
		jwt:      jwt,
	}
}

// Handler builds the route table. Everything except registration, login,
// health, and metrics requires a bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(s.jwt)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.Handle("GET /users/{id}", requireAuth(http.HandlerFunc(s.handleGetUser)))
	mux.Handle("POST /expenses", requireAuth(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /expenses/{userId}", requireAuth(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("GET /balance/{userId}", requireAuth(http.HandlerFunc(s.handleBalanceSheet)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(mux))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	// The authenticated caller is the expense creator.
	expense, err := s.expenses.CreateExpense(r.Context(), req.toInput(middleware.GetUserID(r.Context())))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ExpensesByCreator(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (s *Server) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.balances.BalanceSheet(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="balance_sheet.csv"`)
		if err := export.WriteCSV(w, sheet); err != nil {
			writeError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balanceSheet": sheet})
}
