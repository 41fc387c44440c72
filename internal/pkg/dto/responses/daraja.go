package responses

type DarajaOAuth struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type DarajaSTKPush struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode,omitempty"`
	ErrorMessage        string `json:"errorMessage,omitempty"`
}

// Accepted reports whether the provider accepted the push for processing.
func (r *DarajaSTKPush) Accepted() bool {
	return r.ResponseCode == "0"
}

// Message is the human readable reason returned by the provider.
func (r *DarajaSTKPush) Message() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.CustomerMessage != "":
		return r.CustomerMessage
	default:
		return r.ResponseDescription
	}
}

type DarajaSTKQuery struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
	ErrorCode           string `json:"errorCode,omitempty"`
	ErrorMessage        string `json:"errorMessage,omitempty"`
}

type DarajaCallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
