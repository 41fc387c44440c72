package requests

type EmailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

type SMSPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
	ApiKey  string `json:"apiKey,omitempty"`
}
