package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/groom-scheduler/internal/auth"
	"github.com/example/groom-scheduler/internal/booking"
	"github.com/example/groom-scheduler/internal/salon"
)

//go:embed templates/*.html static/*
var fs embed.FS

// RecordLister supplies the staff dashboard with committed bookings.
type RecordLister interface {
	ListRecent(ctx context.Context, limit int) ([]booking.BookingRecord, error)
}

// Server exposes the two scheduling operations as a JSON API, plus an
// optional staff dashboard when Auth and Records are both wired.
type Server struct {
	Booking *booking.Service
	Auth    *auth.Store
	Records RecordLister
	Log     *zap.Logger
}

type tmplData struct {
	Title string
	User  int64

	Flash    string
	Bookings []booking.BookingRecord
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(fs)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/bookings", s.handleBooking)

	if s.Auth != nil && s.Records != nil {
		mux.HandleFunc("/login", s.handleLogin)
		mux.HandleFunc("/logout", s.handleLogout)
		mux.Handle("/", s.Auth.RequireAuth(http.HandlerFunc(s.handleHome)))
	}

	return mux
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errorKind maps a failed operation onto an HTTP status and a stable kind
// string, so callers can tell a full slot from a closed day without parsing
// messages.
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, salon.ErrMalformedDate):
		return http.StatusBadRequest, "malformed_date"
	case errors.Is(err, salon.ErrInvalidTime):
		return http.StatusUnprocessableEntity, "invalid_time"
	case errors.Is(err, salon.ErrClosedDay):
		return http.StatusConflict, "closed_day"
	case errors.Is(err, salon.ErrSlotFull):
		return http.StatusConflict, "slot_full"
	}
	return http.StatusBadRequest, "bad_request"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req booking.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body", Kind: "bad_request"})
		return
	}

	resp, err := s.Booking.Availability(r.Context(), req)
	if err != nil {
		status, kind := errorKind(err)
		writeJSON(w, status, apiError{Error: err.Error(), Kind: kind})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req booking.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body", Kind: "bad_request"})
		return
	}

	rec, err := s.Booking.Commit(r.Context(), req)
	if err != nil {
		status, kind := errorKind(err)
		writeJSON(w, status, apiError{Error: err.Error(), Kind: kind})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	recs, err := s.Records.ListRecent(r.Context(), 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "templates/bookings.html", tmplData{
		Title:    "Bookings",
		User:     uid,
		Bookings: recs,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "templates/login.html", tmplData{Title: "Login"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		id, err := s.Auth.Authenticate(r.Context(), username, password)
		if err != nil {
			s.render(w, "templates/login.html", tmplData{Title: "Login", Flash: "Invalid username/password"})
			return
		}
		if err := s.Auth.SetSession(w, r, id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.ParseFS(fs,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
