package dto

type PredictionResponse struct {
	Prediction float64                `json:"prediction"`
	Currency   string                 `json:"currency"`
	Features   map[string]interface{} `json:"features"`
	Overrides  map[string]interface{} `json:"overrides"`
}

type ResolveResponse struct {
	Features  map[string]interface{} `json:"features"`
	Overrides map[string]interface{} `json:"overrides"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	ModelPath    string `json:"model_path"`
	DataPath     string `json:"data_path"`
	Target       string `json:"target"`
	FeatureCount int    `json:"feature_count"`
}
