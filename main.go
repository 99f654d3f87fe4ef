// Command fiverow starts the five-in-a-row game server.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config and sessions directories, debug logging,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/omok-games/fiverow/api"
	"github.com/omok-games/fiverow/game/config"
	"github.com/omok-games/fiverow/game/service"
	"github.com/omok-games/fiverow/game/session"
	"github.com/omok-games/fiverow/transport/mcp"
	"github.com/omok-games/fiverow/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Five in a Row Server"
)

// serverOptions collects the flag values both modes consume.
type serverOptions struct {
	Host        string
	Port        int
	ConfigDir   string
	SessionsDir string
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "fiverow",
		Usage:   "five-in-a-row game server with REST, WebSocket, and MCP transports",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "Directory for persisted sessions",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("debug"))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, optionsFrom(cmd))
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServe(ctx, optionsFrom(cmd))
				},
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "Run the MCP stdio server, reusing an external API or starting an internal one",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(optionsFrom(cmd))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func optionsFrom(cmd *cli.Command) serverOptions {
	return serverOptions{
		Host:        cmd.String("host"),
		Port:        int(cmd.Int("port")),
		ConfigDir:   cmd.String("config-dir"),
		SessionsDir: cmd.String("sessions-dir"),
		Ngrok:       cmd.Bool("ngrok"),
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
	}
}

func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. If ngrok is enabled it also provisions a public tunnel.
func runServe(ctx context.Context, opts serverOptions) error {
	gameService, err := initializeServices(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Str("addr", addr).Msgf("%s v%s listening", AppName, Version)
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, opts, mainRouter)
		}()
	}

	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// mcpHTTPHandler exposes the MCP server over plain HTTP POST.
func mcpHTTPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

func runNgrokTunnel(ctx context.Context, opts serverOptions, handler http.Handler) {
	if opts.NgrokAuth == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Info().Msg("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.Info().Str("domain", opts.NgrokDomain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuth))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().Str("url", ngrokURL).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service.
// It also starts background routines to prune stale sessions and keep
// memory in sync with the sessions directory.
func initializeServices(opts serverOptions) (service.GameService, error) {
	configManager, err := config.NewManager(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(opts.SessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Warn().Err(err).Msg("failed to load persisted sessions")
	}

	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(sessionManager)
	go filesystemSyncRoutine(sessionManager, persistence)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
		}
	}
}

// filesystemSyncRoutine prunes sessions from memory when their files are
// deleted out from under the server.
func filesystemSyncRoutine(manager *session.Manager, persistence session.Persistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		pruned := 0
		for _, sess := range manager.List() {
			if !persistence.Exists(sess.ID) {
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
				}
			}
		}

		if pruned > 0 {
			log.Info().Int("pruned", pruned).Msg("filesystem sync pruned orphaned sessions")
		}
	}
}

// runStdioMCP runs an MCP stdio server. It reuses an external API at
// http://localhost:8080 when one is up; otherwise it starts a minimal
// internal HTTP API on a random loopback port and targets that.
func runStdioMCP(opts serverOptions) error {
	var baseURL string

	externalURL := fmt.Sprintf("http://%s:%d", opts.Host, opts.Port)
	log.Info().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		log.Info().Msg("no external API server found, starting internal HTTP server")

		gameService, err := initializeServices(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Info().Str("addr", internalAddr).Msg("internal HTTP server for MCP stdio")

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		// Give the listener a moment before the first stdio request.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Info().Str("base_url", baseURL).Msg("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
