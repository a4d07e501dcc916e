// Package response provides the JSON envelopes used at the HTTP boundary.
package response

type ErrorBody struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Error(code, message string, details interface{}) ErrorBody {
	return ErrorBody{
		Status:  "error",
		Code:    code,
		Message: message,
		Details: details,
	}
}

type SuccessBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) SuccessBody {
	return SuccessBody{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}
