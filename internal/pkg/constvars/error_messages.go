package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"required_without":  "is required when %s is not present",
	"email":             "must be a valid email",
	"min":               "must be at least %s characters long",
	"max":               "maximum at %s characters long",
	"len":               "must be %s characters long",
	"numeric":           "must be a number",
	"oneof":             "must be one of [%s]",
	"uuid":              "must be a valid UUID",
	"url":               "must be a valid URL",
	"password":          "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"phone_number":      "must be an international phone number without '+', e.g. 254712345678",
	"otp_channel":       "must be either 'email' or 'phone'",
	"signup_role":       "must be either 'patient' or 'doctor'",
	"approval_decision": "must be either 'approved' or 'rejected'",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"oneof":            true,
	"required_without": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientPhoneAlreadyExists            = "phone number already used"
	ErrClientInvalidCredentials            = "invalid email or password"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientOTPInvalidOrExpired           = "the verification code is invalid or has expired"
	ErrClientTooManyOTPRequests            = "too many verification code requests, please try again later"
	ErrClientMissingEvidence               = "a qualification evidence file or evidence URL is required"
	ErrClientFileTooLarge                  = "the uploaded file is too large"
	ErrClientPaymentGatewayUnavailable     = "the payment provider is unavailable, please try again later"
	ErrClientPaymentNotPending             = "this appointment has no pending payment"
	ErrClientPaymentInProgress             = "a payment request for this appointment is already in progress"
	ErrClientAdministratorExists           = "an administrator already exists"
	ErrClientTooManyRequests               = "Too many requests, you are temporarily blocked."
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm    = "cannot parse multipart form"
	ErrDevURLParamIDValidationFailed  = "url param '%s' validation failed"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevServerProcess               = "server failed to process the request"
	ErrDevFailedToHashPassword        = "failed to hash password"
	ErrDevEmailAlreadyExists          = "email already exists"
	ErrDevPhoneAlreadyExists          = "phone already exists"
	ErrDevInvalidCredentials          = "invalid credentials"
	ErrDevAuthTokenMissing            = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired   = "authorization token invalid or expired"
	ErrDevAuthTokenRevoked            = "authorization token revoked"
	ErrDevAuthGenerateToken           = "failed to generate token"
	ErrDevAuthSubjectNotFound         = "token subject does not exist"
	ErrDevRoleNotAllowed              = "role '%s' is not allowed to perform '%s'"
	ErrDevResourceNotFound            = "%s not found"
	ErrDevOTPInvalidOrExpired         = "no outstanding, unexpired passcode matched"
	ErrDevOTPGenerate                 = "failed to generate passcode"
	ErrDevOTPIssueLimitReached        = "passcode issue limit reached for %s"
	ErrDevMissingEvidence             = "neither evidence file nor evidence url supplied"
	ErrDevFileTooLarge                = "uploaded file exceeds %d MB"
	ErrDevPaymentGateway              = "payment gateway unreachable or failed: %s"
	ErrDevPaymentDeclined             = "payment gateway declined the request with code %s"
	ErrDevPaymentNotPending           = "payment status is '%s', expected 'pending'"
	ErrDevPaymentLockNotAcquired      = "payment lock for appointment %s is held"
	ErrDevAdministratorExists         = "bootstrap refused, %d administrator(s) already exist"
	ErrDevDBFailedToFindData          = "failed to find data in postgres"
	ErrDevDBFailedToInsertData        = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData        = "failed to update data in postgres"
	ErrDevDBFailedToIterateDataset    = "failed to iterate postgres dataset"
	ErrDevDBFailedToBeginTransaction  = "failed to begin postgres transaction"
	ErrDevDBFailedToCommitTransaction = "failed to commit postgres transaction"
	ErrDevDBFailedToFindDocument      = "failed to find document in mongodb"
	ErrDevDBFailedToInsertDocument    = "failed to insert document into mongodb"
	ErrDevDBFailedToIterateDocuments  = "failed to iterate mongodb documents"
	ErrDevDBFailedToUpdateDocument    = "failed to update document in mongodb"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data into redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisIncrementValue         = "failed to increment value in redis"
	ErrDevRedisUnlock                 = "failed to release redis lock"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
	ErrDevMinioFailedToGetObject      = "failed to get object from bucket %s"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue %s"
	ErrDevCreateHTTPRequest           = "failed to create http request"
	ErrDevSendHTTPRequest             = "failed to send http request"
	ErrDevSMTPSendEmail               = "failed to send email through %s"
)
