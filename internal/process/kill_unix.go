//go:build !windows

// Package process terminates the browser launched for PDF output together
// with its helper processes.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Non-positive PIDs are ignored: -0 and -(-n) would target the caller's
// group or an unrelated process.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
