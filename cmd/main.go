package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"CourierReconSaas/internal/appmanager"
	"CourierReconSaas/internal/config"
	"CourierReconSaas/internal/predict"
)

// InitDB loads DB config from env vars
func InitDB() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	connStr := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		user, pass, host, port, name,
	)
	return sql.Open("postgres", connStr)
}

func main() {
	// Load .env for local dev
	_ = godotenv.Load("../.env")

	// Auth user store
	db, err := InitDB()
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	appmanager.SetDB(db)

	// pgx pool for best-effort audit rows; audits are skipped when it is
	// unavailable, the pipeline runs either way.
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"),
	)
	if pool, err := pgxpool.New(context.Background(), dsn); err != nil {
		log.Println("audit pool unavailable:", err)
	} else {
		appmanager.SetPgxPool(pool)
	}

	// Charge predictor: loaded once, read-only afterward. Missing or broken
	// artifacts leave predictions unconfigured, never crash the process.
	if model, err := predict.Load(config.ModelPath); err != nil {
		log.Printf("model load failed (%s): %v", config.ModelPath, err)
	} else {
		log.Println("loaded charge predictor:", config.ModelPath)
		appmanager.SetModel(model)
	}

	manager := appmanager.NewAppManager()

	// Load service configs from YAML
	servicesCfg, err := appmanager.LoadServiceSequence("../services.yaml")
	if err != nil {
		log.Fatal("failed to load service sequence:", err)
	}

	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		log.Fatal("failed to start:", err)
	}

	// Graceful shutdown handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if err := manager.StopAll(); err != nil {
		log.Fatal("failed to stop:", err)
	}
}
