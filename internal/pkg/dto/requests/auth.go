package requests

type Signup struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required,phone_number"`
	Password  string  `json:"password" validate:"required,password"`
	Role      string  `json:"role" validate:"omitempty,signup_role"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
	Gender    *string `json:"gender" validate:"omitempty,max=20"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendOTP struct {
	Email   string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone   string `json:"phone" validate:"required_without=Email,omitempty,phone_number"`
	Channel string `json:"channel" validate:"required,otp_channel"`
}

type VerifyOTP struct {
	Email   string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone   string `json:"phone" validate:"required_without=Email,omitempty,phone_number"`
	Channel string `json:"channel" validate:"required,otp_channel"`
	Code    string `json:"code" validate:"required,numeric,min=4,max=10"`
}

type BootstrapAdministrator struct {
	Name     *string `validate:"omitempty,max=100"`
	Email    string  `validate:"required,email"`
	Phone    string  `validate:"required,phone_number"`
	Password string  `validate:"required,password"`
}
