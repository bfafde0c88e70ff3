package validator

// LoginRequest is the admin login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ContentRequest carries the editable attributes of a content record. The
// same shape serves create (multipart form) and update (JSON), and the same
// per-type required-field rules apply to both: exclusive items need
// title/description/price/quote, every other type needs the academic
// fields.
type ContentRequest struct {
	ContentType string `json:"contentType" form:"contentType" validate:"required,oneof=notes exclusive assignments tests"`

	Department string `json:"department" form:"department" validate:"required_unless=ContentType exclusive"`
	Semester   string `json:"semester" form:"semester" validate:"required_unless=ContentType exclusive"`
	Subject    string `json:"subject" form:"subject" validate:"required_unless=ContentType exclusive"`
	Topic      string `json:"topic" form:"topic" validate:"required_unless=ContentType exclusive"`
	Professor  string `json:"professor" form:"professor" validate:"required_unless=ContentType exclusive"`

	Title       string `json:"title" form:"title" validate:"required_if=ContentType exclusive"`
	Description string `json:"description" form:"description" validate:"required_if=ContentType exclusive"`
	Price       string `json:"price" form:"price" validate:"required_if=ContentType exclusive"`
	Quote       string `json:"quote" form:"quote" validate:"required_if=ContentType exclusive"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}
