package models

// APIResponse wraps every successful response.
type APIResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data"`
	Timestamp  string `json:"timestamp"`
}

// APIError is the error envelope: {success:false, statusCode, message,
// error, timestamp, path}.
type APIError struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}
