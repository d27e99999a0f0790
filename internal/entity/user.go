package entity

type User struct {
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never serialized
}
