package guestchat

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"example.com/guestchat/core"
	"example.com/guestchat/pkg/router"
)

type App struct {
	config  *Config
	context context.Context
	server  *http.Server
	logger  *slog.Logger
	router  *router.Router

	exit chan int

	roomStore    core.RoomStore
	messageStore core.MessageStore

	roomHandler    *RoomHandler
	messageHandler *MessageHandler

	cleanupFuncs []func(context.Context)
}

func New(ctx context.Context, config *Config) *App {
	app := &App{
		exit: make(chan int),
	}
	if ctx == nil {
		ctx, _ = signal.NotifyContext(
			context.Background(),
			syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	}
	app.context = ctx

	if config == nil {
		var err error
		config, err = LoadConfig()
		if err != nil {
			failed(1, "failed to load config: %v\n", err)
		}
	}
	if err := config.Validate(); err != nil {
		failed(1, FormatValidationErrors(err))
	}
	app.config = config

	app.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}))

	roomStore := core.NewMemoryRoomStore()
	if app.config.Seed {
		roomStore.Seed(core.DefaultRooms()...)
	}
	app.roomStore = roomStore
	app.messageStore = core.NewMemoryMessageStore()

	app.roomHandler = NewRoomHandler(app.roomStore)
	app.messageHandler = NewMessageHandler(app.messageStore)

	app.router = router.New(router.WithLogger(app.logger))

	app.router.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	api := router.New(router.WithLogger(app.logger))
	api.RegisterErrorMapper(core.ErrRoomNotFound, func(err error) router.Error {
		return router.NewJsonError(http.StatusNotFound, "Room not found")
	})
	api.RegisterErrorMapper(core.ErrMessageNotFound, func(err error) router.Error {
		return router.NewJsonError(http.StatusNotFound, "Message not found")
	})

	api.Get("/rooms", app.roomHandler.ListRoomsHandler)
	api.Post("/rooms", app.roomHandler.CreateRoomHandler)
	api.Delete("/rooms", app.roomHandler.DeleteRoomHandler)

	api.Get("/messages", app.messageHandler.ListMessagesHandler)
	api.Post("/messages", app.messageHandler.PostMessageHandler)
	api.Delete("/messages", app.messageHandler.DeleteMessageHandler)

	app.router.Mount("/api", api)

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", app.config.Hostname, app.config.Port),
		Handler: app.router.Router,
		BaseContext: func(listener net.Listener) context.Context {
			return app.context
		},
	}

	return app
}

// Handler returns the root HTTP handler of the app.
// It lets tests serve the app from an httptest server.
func (app *App) Handler() http.Handler {
	return app.router.Router
}

func (app *App) Start() {
	app.AddCleanupFunc(func(ctx context.Context) {
		app.server.Shutdown(ctx)
	})

	// listen for shutdown signal
	go func() {
		<-app.context.Done()
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		var wg sync.WaitGroup

		for _, f := range app.cleanupFuncs {
			wg.Add(1)
			go func(f func(context.Context)) {
				defer wg.Done()
				f(closeCtx)
			}(f)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			app.logger.Info("app shutdown gracefully")
			app.exit <- 0
		case <-closeCtx.Done():
			app.logger.Info("app shutdown timed out")
			app.exit <- 1
		}
	}()

	app.logger.Info(fmt.Sprintf("app running on: %s:%d", app.config.Hostname, app.config.Port))

	err := app.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		failed(1, "server error: %v\n", err)
	}

	code := <-app.exit
	if code != 0 {
		failed(code, "app exit with code: %d\n", code)
	} else {
		os.Exit(code)
	}
}

func (app *App) AddCleanupFunc(f func(context.Context)) {
	app.cleanupFuncs = append(app.cleanupFuncs, f)
}

func failed(code int, s string, args ...interface{}) {
	fmt.Printf(s, args...)
	os.Exit(code)
}
