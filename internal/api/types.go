// Package api はHTTPレスポンス/リクエストのDTOを定義します。
package api

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
}

// PostCompaniesResponse defines model for PostCompaniesResponse.
type PostCompaniesResponse struct {
	PostID     uint  `json:"post_id"`
	CompanyIDs []int `json:"company_ids"`
}

// ReplacePostCompaniesRequest defines model for ReplacePostCompaniesRequest.
type ReplacePostCompaniesRequest struct {
	CompanyIDs []int `json:"company_ids"`
}
