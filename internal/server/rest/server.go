// Package rest exposes the collection tracker over a JSON HTTP API.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/logging"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/services"
	"golang.org/x/time/rate"
)

// UserAPI is the account surface used by the handlers.
type UserAPI interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Validate(token string) (string, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, username, email *string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// CollectionAPI is the collection surface used by the handlers.
type CollectionAPI interface {
	AddCard(ctx context.Context, userID string, in services.AddCardInput) (*models.CollectionItem, error)
	UpdateItem(ctx context.Context, userID string, itemID int64, in services.UpdateItemInput) (*models.CollectionItem, error)
	RemoveItem(ctx context.Context, userID string, itemID int64) error
	ListCollection(ctx context.Context, userID string) ([]*models.CollectionItem, error)
	Stats(ctx context.Context, userID string) (*models.CollectionStats, error)
	OwnsCard(ctx context.Context, userID, cardID, variant string) (bool, error)
}

// CatalogAPI is the card lookup surface used by the handlers.
type CatalogAPI interface {
	GetCard(ctx context.Context, id string) (*catalog.Card, error)
	SearchCards(ctx context.Context, name string) ([]catalog.CardBrief, error)
}

// Options carries the HTTP-facing settings of the server.
type Options struct {
	Address            string
	SecureCookie       bool
	LoginRatePerMinute int
	LoginBurst         int
	// Debug exposes internal error messages in 500 responses.
	Debug bool
}

type RESTServer struct {
	opts       Options
	logger     logging.Logger
	users      UserAPI
	collection CollectionAPI
	catalog    CatalogAPI
	limiter    *IPRateLimiter
	metrics    *Metrics
	engine     *gin.Engine
}

func NewRESTServer(opts Options, l logging.Logger, us UserAPI, cs CollectionAPI, cat CatalogAPI) *RESTServer {
	perMinute := opts.LoginRatePerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := opts.LoginBurst
	if burst <= 0 {
		burst = 5
	}

	s := &RESTServer{
		opts:       opts,
		logger:     l.With("module", "rest_server"),
		users:      us,
		collection: cs,
		catalog:    cat,
		limiter:    NewIPRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
		metrics:    NewMetrics(),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured router.
func (s *RESTServer) Handler() http.Handler {
	return s.engine
}

func (s *RESTServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.loginRateLimit(), s.login)
		authGroup.POST("/logout", s.logout)
		authGroup.GET("/me", s.requireSession(), s.me)
	}

	usersGroup := r.Group("/users", s.requireSession())
	{
		usersGroup.GET("/profile", s.getProfile)
		usersGroup.PUT("/profile", s.updateProfile)
		usersGroup.DELETE("/profile", s.deleteAccount)
		usersGroup.PUT("/password", s.changePassword)
	}

	collectionGroup := r.Group("/collection", s.requireSession())
	{
		collectionGroup.POST("", s.addCard)
		collectionGroup.GET("", s.listCollection)
		collectionGroup.GET("/stats", s.stats)
		collectionGroup.GET("/owns", s.ownsCard)
		collectionGroup.PUT("/:id", s.updateItem)
		collectionGroup.DELETE("/:id", s.removeItem)
	}

	cardsGroup := r.Group("/cards")
	{
		cardsGroup.GET("", s.searchCards)
		cardsGroup.GET("/:id", s.getCard)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. If the
// listener fails, Run returns its error and the shutdown goroutine exits.
func (s *RESTServer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
