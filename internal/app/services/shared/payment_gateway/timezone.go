package payment_gateway

import "time"

// Daraja timestamps are East Africa Time.
var nairobi = func() *time.Location {
	location, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		return time.FixedZone("EAT", 3*60*60)
	}
	return location
}()
