package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentCallback is the audit copy of a provider notification, stored as received.
type PaymentCallback struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	CheckoutRequestID string             `bson:"checkoutRequestId,omitempty"`
	ResultCode        *int               `bson:"resultCode,omitempty"`
	ResultDesc        string             `bson:"resultDesc,omitempty"`
	Payload           primitive.M        `bson:"payload"`
	Reconciled        bool               `bson:"reconciled"`
	ReceivedAt        time.Time          `bson:"receivedAt"`
}
