package main

import (
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/logger"
	"github.com/yumyai/synbrowser/pkg/db"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/handler"
	"github.com/yumyai/synbrowser/pkg/render"
)

func main() {

	VERSION := "0.1.0"

	// Try load env
	dotenvErr := godotenv.Load()

	levelName, _ := util.Getenv("SYNBROWSER_LOG_LEVEL", "info")
	level, levelErr := logger.ParseLevel(levelName)
	if levelErr != nil {
		level = zapcore.InfoLevel
	}
	if err := logger.InitLogger(level); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}
	if levelErr != nil {
		logger.Warn("Invalid SYNBROWSER_LOG_LEVEL, using info", zap.Error(levelErr))
	}

	dataDir, ok := util.Getenv("SYNBROWSER_DATA", "./data")
	if !ok {
		logger.Warn("No local environment (SYNBROWSER_DATA), using default value (./data)")
	}
	dbPath, _ := util.Getenv("SYNBROWSER_DB", filepath.Join(dataDir, "db/synteny.db"))
	speciesDir, _ := util.Getenv("SYNBROWSER_SPECIES", filepath.Join(dataDir, "species"))
	addr, _ := util.Getenv("SYNBROWSER_ADDR", "0.0.0.0:8080")

	if !util.DirExists(speciesDir) {
		logger.Fatal("Species config directory not found", zap.String("dir", speciesDir))
	}
	species, err := genome.LoadSpeciesDir(speciesDir)
	if err != nil {
		logger.Fatal("Cannot read species config", zap.Error(err))
	}

	// Connect to db
	store, err := db.Open(dbPath)
	if err != nil {
		logger.Fatal("Cannot open database", zap.String("DB_LOC", dbPath), zap.Error(err))
	}
	defer store.Close()

	dbctx := &handler.DBContext{
		DB:      store,
		Species: species,
		Colors:  render.ChromosomeColors(),
		Logger:  logger.L(),
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open database on", zap.String("DB_LOC", dbPath))
	logger.Info("Species loaded", zap.Int("count", len(species)))

	logger.Info("Server starting on " + addr + "...")
	httpErr := http.ListenAndServe(addr, handler.NewRouter(dbctx))
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}
