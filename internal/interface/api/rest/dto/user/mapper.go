package user

import (
	"users-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:    int64(uDomain.ID),
		Name:  uDomain.Name,
		Email: uDomain.Email,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) user.User {
	return user.User{
		Name:  uRequest.Name,
		Email: uRequest.Email,
	}
}

func UpdateToDomainUser(id user.ID, uRequest UpdateRequest) user.User {
	return user.User{
		ID:    id,
		Name:  uRequest.Name,
		Email: uRequest.Email,
	}
}
