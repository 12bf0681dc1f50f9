// Package process implements subprocess management for the linter and editor helpers.
package process

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("process")

// An Executor handles starting, running and monitoring subprocesses.
type Executor struct {
	processes map[*exec.Cmd]struct{}
	mutex     sync.Mutex
}

// New returns a new Executor.
func New() *Executor {
	return &Executor{
		processes: map[*exec.Cmd]struct{}{},
	}
}

// ExecCommand creates (but does not start) an external command.
// We set a process group on it so that any children it spawns die with it.
func (e *Executor) ExecCommand(command string, args ...string) *exec.Cmd {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.processes[cmd] = struct{}{}
	return cmd
}

// Exec runs an external command to completion with no time limit.
// It returns the stdout, combined stdout and stderr, and any error that occurred.
func (e *Executor) Exec(dir string, stdin io.Reader, argv []string) ([]byte, []byte, error) {
	return e.ExecWithTimeout(dir, stdin, 0, argv)
}

// ExecWithTimeout runs an external command, killing it if the given timeout
// expires first. A zero or negative timeout means wait forever, which mirrors
// how the editor invokes us: one synchronous run per editor action.
// It returns the stdout, combined stdout and stderr, and any error that occurred.
func (e *Executor) ExecWithTimeout(dir string, stdin io.Reader, timeout time.Duration, argv []string) ([]byte, []byte, error) {
	cmd := e.ExecCommand(argv[0], argv[1:]...)
	defer e.removeProcess(cmd)
	cmd.Dir = dir
	cmd.Stdin = stdin

	var out bytes.Buffer
	var outerr safeBuffer
	cmd.Stdout = io.MultiWriter(&out, &outerr)
	cmd.Stderr = &outerr

	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	ch := make(chan error, 1)
	go runCommand(cmd, ch)
	var err error
	if timeout <= 0 {
		err = <-ch
	} else {
		select {
		case err = <-ch:
			// Do nothing.
		case <-time.After(timeout):
			e.KillProcess(cmd)
			err = fmt.Errorf("Timeout exceeded: %s", outerr.String())
		}
	}
	return out.Bytes(), outerr.Bytes(), err
}

// runCommand runs a command and signals on the given channel when it's done.
func runCommand(cmd *exec.Cmd, ch chan error) {
	ch <- cmd.Wait()
}

// KillProcess kills a process, attempting to send it a SIGTERM first followed
// by a SIGKILL shortly after if it hasn't exited.
func (e *Executor) KillProcess(cmd *exec.Cmd) {
	success := killProcess(cmd, syscall.SIGTERM, 30*time.Millisecond)
	if !killProcess(cmd, syscall.SIGKILL, time.Second) && !success {
		log.Error("Failed to kill inferior process")
	}
	e.removeProcess(cmd)
}

func (e *Executor) removeProcess(cmd *exec.Cmd) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.processes, cmd)
}

// killProcess implements the two-step killing of processes with a SIGTERM and
// a SIGKILL if that's unsuccessful. It returns true if the process exited
// within the timeout.
func killProcess(cmd *exec.Cmd, sig syscall.Signal, timeout time.Duration) bool {
	if cmd.Process == nil {
		log.Debug("Not terminating process, it seems to have not started yet")
		return false
	}
	log.Debug("Sending signal %s to -%d", sig, cmd.Process.Pid)
	syscall.Kill(-cmd.Process.Pid, sig) // Kill the group - we always set one in ExecCommand.
	ch := make(chan error, 1)
	go runCommand(cmd, ch)
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// A safeBuffer is cheap protection around a bytes.Buffer that two output
// streams may write to concurrently.
type safeBuffer struct {
	buf   bytes.Buffer
	mutex sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Bytes() []byte {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Bytes()
}

func (b *safeBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}
