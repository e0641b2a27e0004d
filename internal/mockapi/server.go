package mockapi

import (
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"ustat/internal/domain"
)

// DefaultAccessTTL is the lifetime of issued access tokens.
const DefaultAccessTTL = 15 * time.Minute

// Options configures a Server. The zero value is usable.
type Options struct {
	AccessTTL time.Duration
	// RotateRefresh issues a new refresh token on every refresh and
	// invalidates the old one.
	RotateRefresh bool
	Secret        []byte
	Logger        logrus.FieldLogger
	Now           func() time.Time
}

type account struct {
	user     domain.User
	password string
}

// Server is the fake backend. It implements http.Handler.
type Server struct {
	mu sync.Mutex

	secret []byte
	ttl    time.Duration
	rotate bool
	now    func() time.Time
	log    logrus.FieldLogger
	router chi.Router

	accounts map[string]*account // by email
	live     map[string]string   // access token id -> email
	refresh  map[string]string   // refresh token -> email
	resets   map[string]string   // reset token -> email

	failRefresh  bool
	refreshCalls int

	posts    []domain.Post
	packages []domain.Package
	subs     map[string]*domain.Subscription
	methods  map[string][]domain.PaymentMethod
	invoices map[string][]domain.Invoice
}

// New returns a Server seeded with blog posts and packages but no accounts.
func New(opts Options) *Server {
	s := &Server{
		secret:   opts.Secret,
		ttl:      opts.AccessTTL,
		rotate:   opts.RotateRefresh,
		now:      opts.Now,
		log:      opts.Logger,
		accounts: make(map[string]*account),
		live:     make(map[string]string),
		refresh:  make(map[string]string),
		resets:   make(map[string]string),
		posts:    seedPosts(),
		packages: seedPackages(),
		subs:     make(map[string]*domain.Subscription),
		methods:  make(map[string][]domain.PaymentMethod),
		invoices: make(map[string][]domain.Invoice),
	}
	if len(s.secret) == 0 {
		s.secret = make([]byte, 32)
		_, _ = rand.Read(s.secret)
	}
	if s.ttl <= 0 {
		s.ttl = DefaultAccessTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/register", s.register)
		r.Post("/forgot-password", s.forgotPassword)
		r.Post("/reset-password", s.resetPassword)
		r.Post("/refresh", s.refreshToken)
		r.Post("/logout", s.logout)
	})

	r.Get("/blog/posts", s.listPosts)
	r.Get("/blog/posts/{id}", s.getPost)
	r.Get("/subscription/packages", s.listPackages)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/user/profile", s.profile)
		r.Put("/user/profile", s.updateProfile)
		r.Put("/user/password", s.changePassword)

		r.Get("/subscription/user", s.currentSubscription)
		r.Post("/subscription/subscribe", s.subscribe)
		r.Post("/subscription/cancel", s.cancelSubscription)

		r.Get("/payment/methods", s.listMethods)
		r.Post("/payment/methods", s.addMethod)
		r.Delete("/payment/methods/{id}", s.deleteMethod)
		r.Get("/payment/history", s.history)
	})

	r.Route("/calculations", func(r chi.Router) {
		r.Post("/infaz-hesaplama", s.calcInfaz)
		r.Post("/vekalet-ucreti/konusu-para-olan", s.calcVekaletMonetary)
		r.Post("/vekalet-ucreti/konusu-para-olmayan", s.calcVekaletCourt)
		r.Post("/dosya-masrafi", s.calcHarcGider)
		r.Post("/maas-hesaplama", s.calcMaas)
		r.Post("/iscilik-alacaklari", s.calcIscilik)
		r.Post("/trafik-kazasi", s.calcTrafik)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "not found")
	})
	return r
}

// AddUser creates an account directly, bypassing registration.
func (s *Server) AddUser(u domain.User, password string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(u, password)
}

// ExpireAccessTokens revokes every access token issued so far. Refresh
// tokens stay valid.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.live)
}

// FailRefresh makes /auth/refresh reject every request while on.
func (s *Server) FailRefresh(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRefresh = on
}

// RefreshCalls reports how many refresh requests were received.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// ResetToken returns the last password reset token mailed to email.
func (s *Server) ResetToken(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, e := range s.resets {
		if e == email {
			return tok, true
		}
	}
	return "", false
}
