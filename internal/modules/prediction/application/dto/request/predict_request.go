package request

// PredictRequest POST /predict 请求体
//
// 字段使用指针以区分"缺失"与"零值"。
type PredictRequest struct {
	Text      *string `json:"text"`
	MaxLength *LaxInt `json:"max_length"`
}
