package config

const (
	// Service ports. The gateway is the only public listener; the recon
	// service sits behind its reverse proxy.
	GatewayAddr = ":8081"
	ReconAddr   = ":7143"
	ReconTarget = "http://localhost:7143"

	// Process-private storage area and the single-slot export artifact.
	InstanceDir    = "./instance"
	ResultFileName = "result_output.xlsx"

	// Charge predictor artifact, loaded once at startup.
	ModelPath = "./models/charge_predictor.yaml"

	// Presentation bounds.
	FilePreviewRows   = 10
	MergedPreviewRows = 50
	PredictionPreview = 3
	TopDeliveryZones  = 10

	// Upload limits.
	MaxUploadBytes = 32 << 20
)
