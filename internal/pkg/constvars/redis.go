package constvars

const (
	RedisKeyRevokedTokenFormat   = "auth:revoked:%s"
	RedisKeyLimiterWindowFormat  = "%s:%s:%d"
	RedisKeyDarajaAccessToken    = "daraja:access_token"
	RedisKeyPaymentLockFormat    = "lock:payment:%s"
	RedisKeyReconcileLeaderLock  = "lock:payment:reconciler"
	RedisDarajaTokenSafetyMargin = 60
)
