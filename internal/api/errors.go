package api

import "errors"

// The server reports auth and registration failures in-band, by omitting the
// field a success would carry. These sentinels are what those shapes map to.
var (
	// ErrBadCredentials means the login response carried no access token.
	ErrBadCredentials = errors.New("authentication failed")

	// ErrNoUser means the identity response carried no user object; the
	// token is invalid or expired.
	ErrNoUser = errors.New("no user in identity response")

	// ErrRegisterFailed means the registration response did not confirm
	// success.
	ErrRegisterFailed = errors.New("registration failed")
)
