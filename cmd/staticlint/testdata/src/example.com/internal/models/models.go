package models

type Envelope struct {
	StatusCode int
	Data       string
	Message    string
	Success    bool
}

func NewEnvelope(statusCode int, data, message string) Envelope {
	return Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
