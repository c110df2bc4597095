package request

type SendOTPRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Mobile     string `json:"mobile" validate:"required,min=10,max=15"`
	Address    string `json:"address" validate:"required"`
	Role       string `json:"role" validate:"required"`
	EnteredOTP string `json:"enteredOtp" validate:"required,len=6"`
}

type LoginRequest struct {
	// Email carries the identifier: an email address or a mobile number
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}
