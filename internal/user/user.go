package user

// User is a registered account. Password holds the bcrypt hash and is
// stripped from API responses by sanitizeUser.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DisplayName is the seller name shown on listing detail views.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
