// Package main is the Pagehound CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pagehound/pagehound/internal/cli"
	"github.com/pagehound/pagehound/internal/config"
	"github.com/pagehound/pagehound/internal/embedding"
	"github.com/pagehound/pagehound/internal/ingest"
	"github.com/pagehound/pagehound/internal/keyword"
	"github.com/pagehound/pagehound/internal/models"
	"github.com/pagehound/pagehound/internal/search"
	"github.com/pagehound/pagehound/internal/server"
	"github.com/pagehound/pagehound/internal/storage"
	"github.com/pagehound/pagehound/internal/vector"
	"github.com/pagehound/pagehound/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/pagehound/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "pagehound server" from the project dir uses the
// project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "ingest":
		runIngest()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("pagehound version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *ingest.Watcher
	if cfg.Ingest.WatchDirectory != "" {
		watchSvc = ingest.NewWatcher(cfg.Ingest.WatchDirectory, components.Ingester, cfg.Ingest.RemoveAfterIngest, logger)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start capture watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Engine,
		components.Ingester,
		components.Storage,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Storage.DenseSnapshotPath != "" {
		if ix := components.Engine.DenseIndex(); ix != nil {
			if err := ix.Save(cfg.Storage.DenseSnapshotPath); err != nil {
				logger.Warn("dense index save failed", zap.String("path", cfg.Storage.DenseSnapshotPath), zap.Error(err))
			}
		}
	}
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: pagehound search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Results are pages, grouped by URL; each page carries the chunks that matched.
  • --dense-weight and --sparse-weight tune the balance between semantic and
    keyword relevance (any positive ratio; they are normalized to sum to 1).
  • --limit controls how many pages are returned.

Examples:
  pagehound search machine learning
  pagehound search "machine learning"               # same as above
  pagehound search --dense-weight 1 --sparse-weight 0 neural networks
  pagehound search --limit 20 your query
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "pagehound search query
// -limit 20" would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8484", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 10, "number of pages")
	denseWeight := fs.Float64("dense-weight", 0, "semantic weight (0 = configured default)")
	sparseWeight := fs.Float64("sparse-weight", 0, "keyword weight (0 = configured default)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{
		Query:        queryStr,
		Limit:        *limit,
		DenseWeight:  *denseWeight,
		SparseWeight: *sparseWeight,
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (avoids Bleve/SQLite lock conflict).
		response, err := searchViaHTTP(*serverURL, searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Engine.Search(context.Background(), searchQuery)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8484", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pagehound ingest [flags] <capture-file.json>")
		os.Exit(1)
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read capture file: %v\n", err)
		os.Exit(1)
	}
	var batch models.ChunkBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		fmt.Printf("Capture file is not a valid chunk batch: %v\n", err)
		os.Exit(1)
	}

	if *serverURL != "" {
		resp, err := http.Post(*serverURL+"/api/v1/chunks", "application/json", bytes.NewReader(data))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Ingest failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Ingested %d chunk(s) from %s\n", len(batch.Chunks), path)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	n, err := components.Ingester.IngestChunks(context.Background(), batch.Chunks)
	if err != nil {
		fmt.Printf("Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d chunk(s) from %s\n", n, path)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8484", "server URL (empty = use direct storage)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: pagehound delete [flags] <page-url>")
		os.Exit(1)
	}
	pageURL := fs.Arg(0)

	if *serverURL != "" {
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/pages?url="+url.QueryEscape(pageURL), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Delete failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Page deleted: %s\n", pageURL)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	n, err := components.Ingester.DeletePage(context.Background(), pageURL)
	if err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Page deleted: %s (%d chunks)\n", pageURL, n)
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	EmbeddingProvider   string  `json:"embedding_provider,omitempty"`
	EmbeddingDimensions int     `json:"embedding_dimensions,omitempty"`
	DenseWeight         float64 `json:"dense_weight,omitempty"`
	SparseWeight        float64 `json:"sparse_weight,omitempty"`
	DatabasePath        string  `json:"database_path,omitempty"`
	BleveIndexPath      string  `json:"bleve_index_path,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Pages          int64                 `json:"pages"`
	Chunks         int64                 `json:"chunks"`
	DenseIndexSize int                   `json:"dense_index_size"`
	DiskUsageBytes *int64                `json:"disk_usage_bytes,omitempty"`
	Config         *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8484", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		pageCount, err := components.Storage.CountPages(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count pages failed: %v\n", err)
			os.Exit(1)
		}
		chunkCount, err := components.Storage.CountChunks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count chunks failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Pages:          pageCount,
			Chunks:         chunkCount,
			DenseIndexSize: components.Engine.DenseIndexSize(),
			Config: &statusConfigResponse{
				EmbeddingProvider:   cfg.Embedding.Provider,
				EmbeddingDimensions: cfg.Embedding.Dimensions,
				DenseWeight:         cfg.Search.DenseWeight,
				SparseWeight:        cfg.Search.SparseWeight,
				DatabasePath:        cfg.Storage.DatabasePath,
				BleveIndexPath:      cfg.Storage.BleveIndexPath,
			},
		}
		diskBytes, err := storage.DiskUsageBytes(cfg.Storage.DatabasePath, cfg.Storage.BleveIndexPath, cfg.Storage.DenseSnapshotPath)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("pages:              %d   # count of indexed pages\n", status.Pages)
		fmt.Printf("chunks:             %d   # count of text chunks\n", status.Chunks)
		fmt.Printf("dense_index_size:   %d   # count of vectors in semantic index\n", status.DenseIndexSize)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d   # storage + indices on disk\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("embedding_provider: %s\n", status.Config.EmbeddingProvider)
			if status.Config.EmbeddingDimensions > 0 {
				fmt.Printf("embedding_dims:     %d\n", status.Config.EmbeddingDimensions)
			}
			fmt.Printf("dense_weight:       %.2f\n", status.Config.DenseWeight)
			fmt.Printf("sparse_weight:      %.2f\n", status.Config.SparseWeight)
			if status.Config.DatabasePath != "" {
				fmt.Printf("database_path:      %s\n", status.Config.DatabasePath)
			}
			if status.Config.BleveIndexPath != "" {
				fmt.Printf("bleve_index_path:   %s\n", status.Config.BleveIndexPath)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Store
	Embedder embedding.Embedder
	Sparse   keyword.Index
	Engine   *search.Engine
	Ingester *ingest.Ingester
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Sparse != nil {
		_ = c.Sparse.Close()
	}
}

func newEmbedder(cfg *config.Config, logger *zap.Logger) embedding.Embedder {
	switch cfg.Embedding.Provider {
	case "onnx":
		embedder, err := embedding.NewONNXEmbedder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err == nil {
			return embedder
		}
		logger.Warn("onnx embedder unavailable, falling back to mock", zap.Error(err))
	case "openai":
		apiKey := os.Getenv(cfg.Embedding.APIKeyEnv)
		embedder, err := embedding.NewOpenAIEmbedder(
			apiKey,
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			cfg.Embedding.Dimensions,
			cfg.Embedding.CacheSize,
		)
		if err == nil {
			return embedder
		}
		logger.Warn("openai embedder unavailable, falling back to mock", zap.Error(err))
	}
	return embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	embedder := newEmbedder(cfg, logger)

	keywordIndex, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	dims := cfg.Embedding.Dimensions
	denseIndex, err := vector.LoadIndex(cfg.Storage.DenseSnapshotPath, dims)
	if err != nil {
		logger.Warn("dense snapshot load skipped, rebuilding from store",
			zap.String("path", cfg.Storage.DenseSnapshotPath), zap.Error(err))
		denseIndex = nil
	}
	if denseIndex == nil {
		chunks, err := store.ListChunks(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load chunks: %w", err)
		}
		denseIndex, err = vector.BuildIndex(dims, chunks)
		if err != nil {
			return nil, fmt.Errorf("failed to build dense index: %w", err)
		}
	}
	logger.Info("dense index initialized", zap.Int("vectors", denseIndex.Size()), zap.Int("dimensions", dims))

	engine := search.NewEngine(store, embedder, denseIndex, keywordIndex, &cfg.Search, logger)

	ingOpts := []ingest.IngesterOption{}
	if cfg.Storage.DenseSnapshotPath != "" {
		ingOpts = append(ingOpts, ingest.WithSnapshotPath(cfg.Storage.DenseSnapshotPath))
	}
	ingester := ingest.NewIngester(store, embedder, keywordIndex, engine, dims, logger, ingOpts...)

	return &Components{
		Storage:  store,
		Embedder: embedder,
		Sparse:   keywordIndex,
		Engine:   engine,
		Ingester: ingester,
	}, nil
}

func printUsage() {
	fmt.Println(`pagehound - Local hybrid search over captured web pages

Usage:
  pagehound server [flags]           Start the HTTP server
  pagehound search [flags] <query>   Search captured pages
  pagehound ingest [flags] <file>    Ingest a capture file (JSON chunk batch)
  pagehound delete [flags] <url>     Delete a page and its chunks
  pagehound status [flags]           Show engine/storage/index status
  pagehound version                  Show version
  pagehound help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/pagehound/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string         Config file path (for direct storage mode)
  --server string         Server URL (default: http://localhost:8484). Use empty (--server "") to use direct storage when server is not running.
  --limit int             Number of pages (default: 10)
  --dense-weight float    Semantic weight (0 = configured default)
  --sparse-weight float   Keyword weight (0 = configured default)
  --output string         Output format: text or json (default: text)

Ingest Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8484)

Delete Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8484)

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8484)
  --output string    Output format: text or json (default: text)

Examples:
  pagehound server
  pagehound search "machine learning notes"
  pagehound search --output json "query"   # structured JSON for other apps
  pagehound ingest capture.json
  pagehound delete https://example.com/article
  pagehound status
  pagehound status --output json`)
}
