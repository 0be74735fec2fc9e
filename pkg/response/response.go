package response

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func Error(message string, errs []ValidationError) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}

// PartialFailure reports a failure that still produced data the caller needs.
func PartialFailure(message string, data interface{}) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}
