package main

import (
	"context"

	"github.com/arisha-glich/class-gecko-backend/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	nu := user.NewUser{Name: name, Email: email, Password: pwd, Role: user.RoleBusiness}
	if isAdmin {
		nu.Role = user.RoleAdmin
	}
	nu.Clean()
	if err := cli.validate.Struct(nu); err != nil {
		return err
	}
	if err := user.CheckPasswordSimilarity(pwd, nu.Name, nu.Email); err != nil {
		return err
	}

	usr, err := cli.usrSvc.AddUser(context.Background(), nu)
	if err != nil {
		return err
	}
	logger.Infof("user %s <%s> saved with role %s", usr.ID, usr.Email, usr.Role)
	return nil
}
