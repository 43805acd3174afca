package main

import (
	"context"
	"fmt"
	"time"
)

// createSession prints a session token, usable as the session cookie or a Bearer token.
func (cli *commandLine) createSession(email string, ttl time.Duration) error {
	sess, err := cli.usrSvc.CreateSession(context.Background(), email, ttl)
	if err != nil {
		return err
	}
	fmt.Println(sess.Token)
	logger.Infof("session expires at %s", sess.ExpiresAt.Format(time.RFC3339))
	return nil
}
