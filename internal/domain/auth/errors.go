package auth

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("Username atau Kata Sandi salah. Silakan coba lagi.")
	ErrInvalidToken       = errors.New("invalid or missing token")
)

// RoleMismatchError means the account exists but its sheet role does not grant
// the requested login mode. The sheet's role text travels with the error so
// the client can point the user at the right tab.
type RoleMismatchError struct {
	ActualRole    string
	RequestedMode string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf(
		"Login Gagal: Akun ditemukan, tetapi akses ditolak. Di sistem status Anda %q, bukan %q.",
		e.ActualRole, e.RequestedMode,
	)
}
