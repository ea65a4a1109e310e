package respond

type PredictRespond struct {
	Prediction      string `json:"prediction"`
	InputLength     int    `json:"input_length"`
	GeneratedLength int    `json:"generated_length"`
}

type ServiceInfoRespond struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
