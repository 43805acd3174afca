package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	db         *gorm.DB
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                           - run a goose command (up, down, status, redo...)")
	fmt.Println("  createdb                                         - create the application user & database")
	fmt.Println("  adduser -email EMAIL -name NAME [-admin]         - create or update a user")
	fmt.Println("  resetpassword -email EMAIL                       - reset user's password")
	fmt.Println("  createsession -email EMAIL [-ttl DURATION]       - issue a session token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant the ADMIN role (BUSINESS otherwise).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	createSessionCmd := flag.NewFlagSet("createsession", flag.ContinueOnError)
	createSessionEmail := createSessionCmd.String("email", "", "The user's email.")
	createSessionTTL := createSessionCmd.Duration("ttl", 24*time.Hour, "How long the session lasts.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "createdb":
		return cli.createDB()
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, pwd, *addUserAdmin)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "createsession":
		if err := createSessionCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createSessionEmail == "" || *createSessionTTL <= 0 {
			createSessionCmd.Usage()
			return errHelp
		}
		return cli.createSession(*createSessionEmail, *createSessionTTL)
	default:
		cli.printUsage()
		return errHelp
	}
}

// describe translates validation errors field by field.
func (cli *commandLine) describe(err error) string {
	var vErrs validator.ValidationErrors
	var fErrs *core.ValidationError
	msg := ""
	switch {
	case errors.As(err, &vErrs):
		for field, text := range vErrs.Translate(cli.translator) {
			msg += fmt.Sprintf("\n  %s: %s", field, text)
		}
	case errors.As(err, &fErrs):
		for _, fErr := range fErrs.Fields {
			msg += fmt.Sprintf("\n  %s: %s", fErr.Field, fErr.Error)
		}
	default:
		msg = err.Error()
	}
	return msg
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
