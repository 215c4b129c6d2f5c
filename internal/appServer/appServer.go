package appServer

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sakurairo-fans/anime-img-api/config"
	mongorepo "github.com/sakurairo-fans/anime-img-api/internal/database/mongodb"
	pgrepo "github.com/sakurairo-fans/anime-img-api/internal/database/postgres"
	"github.com/sakurairo-fans/anime-img-api/internal/service"
	"github.com/sakurairo-fans/anime-img-api/internal/transport"
	"github.com/sakurairo-fans/anime-img-api/pkg/mongodb"
	"github.com/sakurairo-fans/anime-img-api/pkg/postgres"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Relational backend: pool opened and pinged at boot, missing binding
	// is a configuration error and fatal here.
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Document backend: session is created lazily on the first v2 request.
	sessions := mongodb.NewProvider(cfg.Mongo.URI)
	defer sessions.Close(context.Background())

	// Initialize repositories
	animeRepo := pgrepo.NewImageRepository(db)
	pixivRepo := mongorepo.NewPixivRepository(sessions, cfg.Mongo.Database, cfg.Mongo.Collection)

	// Initialize services
	imageService := service.NewImageService(animeRepo, cfg.Buckets.General, cfg.Buckets.Restricted)
	pixivService := service.NewPixivService(pixivRepo, cfg.Proxy.RawHost, cfg.Proxy.DefaultMirror)

	// Initialize handlers
	imageHandler := transport.NewImageHandler(imageService, pixivService, cfg.Server.Debug)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(imageHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
