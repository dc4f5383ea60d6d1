package http

// APIResponse is the envelope every JSON endpoint writes.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"name"`
	Message string                 `json:"message,omitempty" example:"name is required"`
	Params  map[string]interface{} `json:"params,omitempty"`

	tag   string
	param string
}

// ValidationErrors indexes the English messages by field.
func ValidationErrors(errs []ValidationError) map[string]string {
	return Localize(errs, EnglishMessages, nil)
}
