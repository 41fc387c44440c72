package config

type InternalConfig struct {
	App     App
	JWT     AppJWT
	OTP     AppOTP
	Payment AppPayment
	Daraja  AppDaraja
	SMS     AppSMS
	Mailer  AppMailer
	Minio   AppMinio
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	OTPMaxRequestsPerMinute    int
	OTPBlockTimeInMinutes      int
	RequestBodyLimitInMegabyte int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppOTP struct {
	Length               int
	ExpiredTimeInMinutes int
	// MaxIssuePerWindow caps how many codes one identity can request per
	// ExpiredTimeInMinutes window. Zero disables the cap.
	MaxIssuePerWindow int
}

// Payment confirmation modes.
const (
	PaymentConfirmationOptimistic = "optimistic"
	PaymentConfirmationCallback   = "callback"
)

type AppPayment struct {
	ConsultationFee int64
	// ConfirmationMode is either "optimistic" (an accepted push marks the
	// appointment paid immediately) or "callback" (paid only after the
	// provider confirms settlement).
	ConfirmationMode         string
	ReconcileCronSpec        string
	ReconcileAfterInMinutes  int
	PaymentLockTimeInSeconds int
}

func (p AppPayment) IsOptimistic() bool {
	return p.ConfirmationMode != PaymentConfirmationCallback
}

type AppDaraja struct {
	BaseUrl                 string
	ConsumerKey             string
	ConsumerSecret          string
	Passkey                 string
	Shortcode               string
	CallbackURL             string
	CallbackToken           string
	AccountReference        string
	RequestTimeoutInSeconds int
	MaxRetries              int
	RetryBackoffInMillis    int
}

type AppSMS struct {
	ApiUrl string
	ApiKey string
}

type AppMailer struct {
	EmailSender   string
	MailerQueue   string
	SMSQueue      string
	SendTimeoutMs int
}

type AppMinio struct {
	BucketName                string
	EvidenceMaxUploadSizeInMB int64
}
