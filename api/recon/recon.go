package recon

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourierReconSaas/api"
	"CourierReconSaas/internal/config"
	"CourierReconSaas/internal/predict"
	"CourierReconSaas/internal/resultstore"
)

// StartReconService runs the reconciliation HTTP service. All routes except
// the health check sit behind the session middleware.
func StartReconService(pool *pgxpool.Pool, store resultstore.Store, adapter *predict.Adapter) {
	ensureAuditSchema(pool)

	router := mux.NewRouter()
	router.Handle("/recon/reconcile", api.SessionMiddleware(ReconcileHandler(pool, store, adapter))).Methods("POST")
	router.Handle("/recon/download", api.SessionMiddleware(DownloadHandler(pool, store))).Methods("GET")
	router.HandleFunc("/recon/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Recon Service is healthy"))
	}).Methods("GET")

	log.Println("Recon Service started on", config.ReconAddr)
	if err := http.ListenAndServe(config.ReconAddr, router); err != nil {
		log.Fatalf("Recon Service failed: %v", err)
	}
}
