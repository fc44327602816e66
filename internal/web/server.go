// Package web is the presentation layer: server-rendered pages over the
// availability and booking services. No domain logic lives here.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/campsite/internal/auth"
	"github.com/example/campsite/internal/booking"
	"github.com/example/campsite/internal/domain/camping"
	"github.com/example/campsite/internal/postgres"
	"github.com/example/campsite/internal/search"
)

//go:embed templates/*.html static/*
var fs embed.FS

type Server struct {
	Auth    *auth.Store
	Store   *postgres.Store
	Search  *search.Service
	Booking *booking.Service
	Log     *slog.Logger
}

type searchForm struct {
	ParkID       int64
	CampgroundID int64
	Occupancy    int
	Accessible   bool
	RVLength     int
	Utilities    bool
	Arrival      string
	Departure    string
}

type tmplData struct {
	Title string
	User  int64
	Flash string

	Parks        []camping.Park
	Park         camping.Park
	Campgrounds  []camping.Campground
	Upcoming     []camping.Reservation
	Form         searchForm
	Results      []search.Result
	Reservations []camping.Reservation
	Confirmation booking.Confirmation
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(fs)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/logout", s.handleLogout)

	mux.Handle("/", s.Auth.RequireAuth(http.HandlerFunc(s.handleParks)))
	mux.Handle("/park", s.Auth.RequireAuth(http.HandlerFunc(s.handlePark)))
	mux.Handle("/availability", s.Auth.RequireAuth(http.HandlerFunc(s.handleAvailability)))
	mux.Handle("/book", s.Auth.RequireAuth(http.HandlerFunc(s.handleBook)))
	mux.Handle("/history", s.Auth.RequireAuth(http.HandlerFunc(s.handleHistory)))

	return mux
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

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "templates/register.html", tmplData{Title: "Register"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || len(password) < 8 {
			s.render(w, "templates/register.html", tmplData{Title: "Register", Flash: "Username required; password must be at least 8 characters"})
			return
		}
		id, err := s.Auth.CreateUser(r.Context(), username, password)
		if err != nil {
			s.Log.Error("register failed", "err", err)
			s.render(w, "templates/register.html", tmplData{Title: "Register", Flash: "Could not create user"})
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

func (s *Server) handleParks(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	parks, err := s.Store.ListParks(r.Context())
	if err != nil {
		s.serverError(w, "list parks", err)
		return
	}
	s.render(w, "templates/parks.html", tmplData{Title: "Parks", User: uid, Parks: parks})
}

func (s *Server) handlePark(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	parkID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid park id", http.StatusBadRequest)
		return
	}
	park, err := s.Store.GetPark(r.Context(), parkID)
	if errors.Is(err, camping.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "get park", err)
		return
	}
	camps, err := s.Store.ListCampgrounds(r.Context(), parkID)
	if err != nil {
		s.serverError(w, "list campgrounds", err)
		return
	}
	upcoming, err := s.Store.ListUpcomingParkReservations(r.Context(), parkID, time.Now())
	if err != nil {
		s.serverError(w, "list upcoming reservations", err)
		return
	}
	s.render(w, "templates/park.html", tmplData{
		Title: park.Name, User: uid,
		Park: park, Campgrounds: camps, Upcoming: upcoming,
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	if r.Method == http.MethodGet {
		form := searchForm{Occupancy: 1}
		form.ParkID, _ = strconv.ParseInt(r.URL.Query().Get("park_id"), 10, 64)
		form.CampgroundID, _ = strconv.ParseInt(r.URL.Query().Get("campground_id"), 10, 64)
		s.render(w, "templates/availability.html", tmplData{Title: "Search Availability", User: uid, Form: form})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := searchForm{
		Occupancy:  atoiDefault(r.FormValue("occupancy"), 1),
		Accessible: r.FormValue("accessible") != "",
		RVLength:   atoiDefault(r.FormValue("rv_length"), 0),
		Utilities:  r.FormValue("utilities") != "",
		Arrival:    strings.TrimSpace(r.FormValue("arrival")),
		Departure:  strings.TrimSpace(r.FormValue("departure")),
	}
	form.ParkID, _ = strconv.ParseInt(r.FormValue("park_id"), 10, 64)
	form.CampgroundID, _ = strconv.ParseInt(r.FormValue("campground_id"), 10, 64)

	arrival, err1 := parseDate(form.Arrival)
	departure, err2 := parseDate(form.Departure)
	if err1 != nil || err2 != nil {
		s.render(w, "templates/availability.html", tmplData{
			Title: "Search Availability", User: uid, Form: form,
			Flash: "Dates must be in YYYY-MM-DD form",
		})
		return
	}

	req := camping.AvailabilityRequest{
		Occupancy:  form.Occupancy,
		Accessible: form.Accessible,
		RVLength:   form.RVLength,
		Utilities:  form.Utilities,
		Arrival:    arrival,
		Departure:  departure,
	}

	var results []search.Result
	var err error
	switch {
	case form.CampgroundID != 0:
		results, err = s.Search.Campground(r.Context(), form.CampgroundID, req)
	case form.ParkID != 0:
		results, err = s.Search.Park(r.Context(), form.ParkID, req)
	default:
		s.render(w, "templates/availability.html", tmplData{
			Title: "Search Availability", User: uid, Form: form,
			Flash: "Pick a park or a campground to search",
		})
		return
	}
	if err != nil {
		flash := "Search failed"
		switch {
		case errors.Is(err, camping.ErrInvalidRange):
			flash = "Departure must be after arrival"
		case errors.Is(err, camping.ErrNotFound):
			http.NotFound(w, r)
			return
		default:
			s.Log.Error("availability search failed", "err", err)
		}
		s.render(w, "templates/availability.html", tmplData{
			Title: "Search Availability", User: uid, Form: form, Flash: flash,
		})
		return
	}

	data := tmplData{Title: "Available Sites", User: uid, Form: form, Results: results}
	if len(results) == 0 {
		data.Flash = "No matching sites; try different dates or criteria"
	}
	s.render(w, "templates/results.html", data)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	siteID, err := strconv.ParseInt(r.FormValue("site_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	arrival, err1 := parseDate(r.FormValue("arrival"))
	departure, err2 := parseDate(r.FormValue("departure"))
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid dates", http.StatusBadRequest)
		return
	}

	conf, err := s.Booking.Book(r.Context(), uid, siteID, name, arrival, departure)
	if err != nil {
		data := tmplData{Title: "Booking Failed", User: uid}
		switch {
		case errors.Is(err, camping.ErrConflict):
			data.Flash = "That site was just reserved for those dates; please search again"
		case errors.Is(err, camping.ErrInvalidRange):
			data.Flash = "Arrival must be in the future and before departure"
		case errors.Is(err, camping.ErrNotFound):
			http.NotFound(w, r)
			return
		default:
			s.Log.Error("booking failed", "site_id", siteID, "err", err)
			data.Flash = "Booking failed; your selection was not reserved. Please try again"
		}
		s.render(w, "templates/booked.html", data)
		return
	}

	s.Log.Info("reservation created", "reservation_id", conf.ReservationID, "site_id", siteID, "user_id", uid)
	s.render(w, "templates/booked.html", tmplData{Title: "Reservation Confirmed", User: uid, Confirmation: conf})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	reservations, err := s.Store.ListUserReservations(r.Context(), uid)
	if err != nil {
		s.serverError(w, "list user reservations", err)
		return
	}
	s.render(w, "templates/history.html", tmplData{Title: "Your Reservations", User: uid, Reservations: reservations})
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	s.Log.Error(what, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func parseDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(v))
}

func atoiDefault(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

var tmplFuncs = template.FuncMap{
	"dollars": camping.FormatCents,
	"day":     func(t time.Time) string { return t.Format("2006-01-02") },
}

func (s *Server) render(w http.ResponseWriter, name string, data tmplData) {
	t, err := template.New("base.html").Funcs(tmplFuncs).ParseFS(fs, "templates/base.html", name)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.Log.Error("render failed", "template", name, "err", err)
	}
}

func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
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
	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
