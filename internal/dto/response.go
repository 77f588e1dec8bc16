package dto

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Message(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}
