package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/storage/database/gormrepos"
	"github.com/arisha-glich/class-gecko-backend/tests"
)

func setup(t *testing.T) *commandLine {
	db := testutil.PrepareDB(t)
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)

	return &commandLine{
		conf:       core.Conf,
		db:         db,
		usrSvc:     user.NewService(gormrepos.NewUserRepository(db)),
		validate:   validate,
		translator: translator,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantDescr  string // part of the described error
	pwd        string
}

func (tt cliTest) check(t *testing.T, cli *commandLine, err error) {
	t.Helper()
	switch {
	case tt.wantDescr != "":
		require.Error(t, err)
		assert.Contains(t, cli.describe(err), tt.wantDescr)
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, errors.Cause(err))
	case tt.wantErrStr != "":
		require.Error(t, err)
		assert.Equal(t, tt.wantErrStr, err.Error())
	default:
		assert.NoError(t, err)
	}
}

func mockPassword(pwd string) {
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate without subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "adduser without args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser without name", args: []string{"adduser", "-email", "a@test.cd"}, wantErr: errHelp},
		{name: "adduser unknown flag", args: []string{"adduser", "-username", "lol"}, wantErrStr: "flag provided but not defined: -username"},
		{name: "resetpassword without args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "createsession without args", args: []string{"createsession"}, wantErr: errHelp},
		{name: "createsession negative ttl", args: []string{"createsession", "-email", "a@test.cd", "-ttl", "-1h"}, wantErr: errHelp},
	}
	mockPassword("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var gotCommand string
	gooseRunFunc = func(ctx context.Context, db *gorm.DB, command string, args ...string) error {
		gotCommand = command
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "waitlist", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCommand = ""
			tt.check(t, cli, cli.run(append([]string{"admin"}, tt.args...)))
			if len(tt.args) > 1 {
				assert.Equal(t, tt.args[1], gotCommand)
			}
		})
	}
}

func Test_commandLine_createDB(t *testing.T) {
	cli := setup(t)

	var calls int
	createDBFunc = func(conf *core.Config) error {
		calls++
		if conf.Database.Name == "" {
			return errors.New("no database name")
		}
		return nil
	}

	require.NoError(t, cli.run([]string{"admin", "createdb"}))
	assert.Equal(t, 1, calls)

	assert.False(t, needsDB([]string{"admin", "createdb"}))
	assert.True(t, needsDB([]string{"admin", "migrate", "up"}))
	assert.False(t, needsDB([]string{"admin"}))
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	tests := []cliTest{
		{name: "no password", args: []string{"adduser", "-email", "boss@test.cd", "-name", "Boss"}, wantErr: errHelp},
		{name: "short password", args: []string{"adduser", "-email", "boss@test.cd", "-name", "Boss"}, pwd: "lol", wantDescr: "password must be at least 8 characters"},
		{name: "invalid email", args: []string{"adduser", "-email", "boss", "-name", "Boss"}, pwd: "Sup3rS3cret!", wantDescr: "email"},
		{name: "password like the email", args: []string{"adduser", "-email", "boss@test.cd", "-name", "Boss"}, pwd: "boss@test.cd1", wantDescr: "password: password cannot be similar to user attributes"},
		{name: "create business", args: []string{"adduser", "-email", " Boss@Test.cd ", "-name", "Boss"}, pwd: "Sup3rS3cret!"},
		{name: "promote to admin", args: []string{"adduser", "-email", "boss@test.cd", "-name", "Big Boss", "-admin"}, pwd: "An0therS3cret!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(tt.pwd)
			tt.check(t, cli, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, "boss@test.cd")
	require.NoError(t, err)
	assert.Equal(t, "Big Boss", usr.Name.String)
	assert.Equal(t, user.RoleAdmin, usr.Role)
	assert.True(t, usr.EmailVerified)
	assert.NoError(t, usr.CheckPassword("An0therS3cret!"))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, cli.db, "User", "awe@test.cd", user.RoleBusiness, "Sup3rS3cret!")

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, pwd: "N3wS3cret!", wantErr: user.ErrNotFound},
		{name: "password with spaces", args: []string{"resetpassword", "-email", usr.Email}, pwd: "new secret pwd", wantDescr: "password must not contain whitespace"},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, pwd: "N3wS3cret!"},
		{name: "reset with mixed case email", args: []string{"resetpassword", "-email", "AWE@test.cd"}, pwd: "L4stS3cret!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(tt.pwd)
			err := cli.run(append([]string{"admin"}, tt.args...))
			tt.check(t, cli, err)
			if err != nil {
				return
			}
			refreshedUsr, err := cli.usrSvc.GetByID(context.Background(), usr.ID)
			require.NoError(t, err)
			if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
				t.Error("failed to update new password")
			}
			assert.NoError(t, refreshedUsr.CheckPassword(tt.pwd))
		})
	}
}

func Test_commandLine_createSession(t *testing.T) {
	cli := setup(t)
	testutil.CreateUser(t, cli.db, "User", "awe@test.cd", user.RoleBusiness)

	tests := []cliTest{
		{name: "user not found", args: []string{"createsession", "-email", "lol@test.cd"}, wantErr: user.ErrNotFound},
		{name: "default ttl", args: []string{"createsession", "-email", "awe@test.cd"}},
		{name: "custom ttl", args: []string{"createsession", "-email", "awe@test.cd", "-ttl", "30m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	var sessions []user.Session
	require.NoError(t, cli.db.Order("expires_at ASC").Find(&sessions).Error)
	require.Len(t, sessions, 2)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), sessions[0].ExpiresAt, time.Minute)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), sessions[1].ExpiresAt, time.Minute)

	usr, err := cli.usrSvc.Authenticate(context.Background(), sessions[1].Token)
	require.NoError(t, err)
	assert.Equal(t, "awe@test.cd", usr.Email)
}
