package user

type (
	ID   int64
	User struct {
		ID    ID
		Name  string
		Email string
	}
	Users []*User
)

// Clone returns a copy that does not alias u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
