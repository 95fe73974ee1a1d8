package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campusanon/config"
	"campusanon/internal/handler"
	"campusanon/internal/pkg"
	"campusanon/internal/repository/mysql"
	"campusanon/internal/repository/redis"
	"campusanon/internal/router"
	"campusanon/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := pkg.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := mysql.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	if err := mysql.Migrate(db); err != nil {
		return err
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		return err
	}
	defer redis.Close()

	producer, err := pkg.NewKafkaProducer(cfg.Kafka)
	if err != nil {
		return err
	}
	defer producer.Close()

	mailer := pkg.NewMailer(cfg.Mail, log)

	// repositories
	users := &mysql.UserRepository{DB: db}
	otps := &mysql.OTPRepository{DB: db}
	communities := &mysql.CommunityRepository{DB: db}
	members := &mysql.CommunityMemberRepository{DB: db}
	posts := &mysql.PostRepository{DB: db}
	comments := &mysql.CommentRepository{DB: db}
	likes := &mysql.PostLikeRepository{DB: db}
	reports := &mysql.ReportRepository{DB: db}
	notifications := &mysql.NotificationRepository{DB: db}
	rateLimits := &mysql.RateLimitRepository{DB: db}
	outbox := &mysql.OutboxRepository{DB: db}
	sessions := &redis.SessionRepository{}

	// the global community must exist before any signup
	if _, err := communities.EnsureGlobal(context.Background()); err != nil {
		return err
	}

	// services
	tokens := pkg.NewJWTManager(&cfg.Auth)
	limiter := service.NewRateLimitService(rateLimits)
	authSvc := service.NewAuthService(otps, users, communities, members, notifications, sessions, mailer, tokens, cfg.App.CollegeDomain, log)
	communitySvc := service.NewCommunityService(communities, members)
	postSvc := service.NewPostService(posts, communities, users, limiter)
	commentSvc := service.NewCommentService(comments, posts, users, limiter, notifications, log)
	likeSvc := service.NewPostLikeService(likes, posts, users, notifications, log)
	moderationSvc := service.NewModerationService(reports, posts, comments, users, sessions, limiter, log)
	notificationSvc := service.NewNotificationService(notifications)

	relayer := service.NewAuditRelayer(outbox, service.KafkaSender(producer), log)
	relayCtx, stopRelayer := context.WithCancel(context.Background())
	go relayer.Run(relayCtx)

	engine := router.New(router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Community:     handler.NewCommunityHandler(communitySvc),
		Post:          handler.NewPostHandler(postSvc),
		Comment:       handler.NewCommentHandler(commentSvc),
		PostLike:      handler.NewPostLikeHandler(likeSvc),
		Moderation:    handler.NewModerationHandler(moderationSvc),
		Admin:         handler.NewAdminHandler(moderationSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
	}, tokens, sessions)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopRelayer()
		mailer.Close()
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}

	// drain background work after the listener stops
	stopRelayer()
	mailer.Close()

	log.Info("server stopped")
	return nil
}
