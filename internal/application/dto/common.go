package dto

// Response envoltorio común de todas las respuestas: {success, data|error, message}.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail construye una respuesta de error.
func Fail(code, message string) Response {
	return Response{Success: false, Error: message, Code: code}
}
