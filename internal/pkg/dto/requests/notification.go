package requests

type CreateNotification struct {
	TargetUserID *string `json:"target_user_id" validate:"omitempty,uuid"`
	Message      string  `json:"message" validate:"required,max=1000"`
	Category     string  `json:"category" validate:"omitempty,max=50"`
}
