package dto

// PredictResponse 预测响应
type PredictResponse struct {
	Prediction     string `json:"prediction"`
	Recommendation string `json:"recommendation"`
	ReferenceLink  string `json:"reference_link"`
	ProductHint    string `json:"product_hint"`
	ImgPath        string `json:"img_path"`
}

// PictureInfo 图片信息
type PictureInfo struct {
	ID         uint   `json:"id"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

// DashboardResponse dashboard响应
type DashboardResponse struct {
	User     UserInfo      `json:"user"`
	Pictures []PictureInfo `json:"pictures"`
}
