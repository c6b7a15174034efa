package recon

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"CourierReconSaas/internal/predict"
	"CourierReconSaas/internal/resultstore"
	"CourierReconSaas/internal/serviceiface"
)

type ReconService struct {
	config  map[string]interface{}
	pool    *pgxpool.Pool
	store   resultstore.Store
	adapter *predict.Adapter
}

func NewReconService(cfg map[string]interface{}, pool *pgxpool.Pool, store resultstore.Store, adapter *predict.Adapter) serviceiface.Service {
	return &ReconService{config: cfg, pool: pool, store: store, adapter: adapter}
}

func (s *ReconService) Name() string {
	return "recon"
}

func (s *ReconService) Start() error {
	go StartReconService(s.pool, s.store, s.adapter)
	return nil
}

func (s *ReconService) Stop() error {
	return nil
}
