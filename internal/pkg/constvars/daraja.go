package constvars

const (
	DarajaOAuthPath           = "/oauth/v1/generate?grant_type=client_credentials"
	DarajaSTKPushPath         = "/mpesa/stkpush/v1/processrequest"
	DarajaSTKQueryPath        = "/mpesa/stkpushquery/v1/query"
	DarajaTimestampLayout     = "20060102150405"
	DarajaTransactionType     = "CustomerPayBillOnline"
	DarajaTransactionDesc     = "Consultation Payment"
	DarajaResponseCodeSuccess = "0"
	DarajaCallbackAckDesc     = "Accepted"
)
