//go:build windows

package mpv

import (
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"time"
)

func setSysProcAttr(*exec.Cmd) {}

// mpv listens on a named pipe on Windows, which net cannot dial.
func dialIPC(context.Context, string) (net.Conn, error) {
	return nil, errors.New("mpv ipc is not supported on windows")
}

func terminatePID(pid int, _ time.Duration) error {
	if pid <= 0 {
		return nil
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return p.Kill()
}
