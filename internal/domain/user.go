package domain

type Role string

const (
	RoleRequester Role = "requester"
	RoleVolunteer Role = "volunteer"
)

type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
	// Reputation is a derived average maintained by the profile/rating
	// read paths; this service only reads it.
	Reputation  float64 `json:"reputation"`
	DeviceToken string  `json:"-"`
	CreatedOn   string  `json:"created_on"`
}
