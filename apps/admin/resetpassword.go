package main

import (
	"context"

	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := cli.validate.Var(pwd, "pwdminlen,pwdnospace"); err != nil {
		return err
	}
	if err := user.CheckPasswordSimilarity(pwd, usr.Name.String, usr.Email); err != nil {
		return err
	}
	return cli.usrSvc.ResetPassword(ctx, email, pwd)
}
