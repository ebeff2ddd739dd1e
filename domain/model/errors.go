package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTransportRejected = errors.New("account API rejected command")
	ErrCommandNotAllowed = errors.New("command not allowed")
	ErrInventory         = errors.New("account inventory unavailable")
	ErrZoneDump          = errors.New("zone dump failed")
	ErrZoneVerification  = errors.New("zone record verification failed")
	ErrZoneRecordMissing = errors.New("zone record not found")
	ErrDomainConflict    = errors.New("domain bound to more than one account")
	ErrRunNotFound       = errors.New("run not found")
)

// CommandError describes a failed account API invocation.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Reason   string // API metadata.reason when the call returned result=0
	Err      error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command %q", e.Command)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " exited %d", e.ExitCode)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	if e.Err != nil && e.Reason == "" && e.Stderr == "" {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }
