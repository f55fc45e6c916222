// Package supervisor owns zero-or-one live external process per tool. Two
// independent instances, one for the mirroring tool and one for the webcam
// tool, never share state: starting or stopping one has no effect on the
// other.
package supervisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/process"
)

const (
	// DefaultGracePeriod bounds how long Stop waits between the graceful
	// termination request and the forceful kill.
	DefaultGracePeriod = 3 * time.Second

	// DefaultTailLimit is how many output lines are retained for crash events.
	DefaultTailLimit = 25

	maxLineBytes = 1024 * 1024
)

// Resolver resolves an executable name to an absolute path.
type Resolver func(ctx context.Context, executable string) (string, error)

// Option configures a supervisor.
type Option func(*Supervisor)

// WithGracePeriod overrides the stop-escalation grace period.
func WithGracePeriod(grace time.Duration) Option {
	return func(supervisor *Supervisor) {
		if grace > 0 {
			supervisor.grace = grace
		}
	}
}

// WithTailLimit overrides how many output lines crash events carry.
func WithTailLimit(limit int) Option {
	return func(supervisor *Supervisor) {
		if limit > 0 {
			supervisor.tailLimit = limit
		}
	}
}

// WithSessionLogs mirrors process output to per-session log files below dir.
func WithSessionLogs(fs afero.Fs, dir string) Option {
	return func(supervisor *Supervisor) {
		supervisor.fs = fs
		supervisor.logDir = dir
	}
}

// WithExecutableResolver overrides how the command's executable is located.
func WithExecutableResolver(resolve Resolver) Option {
	return func(supervisor *Supervisor) {
		supervisor.resolve = resolve
	}
}

// Supervisor manages the lifecycle of one tool's external process: spawn,
// asynchronous output streaming, exit detection and graceful stop with
// bounded escalation.
type Supervisor struct {
	tool      launcher.ToolKind
	journal   *launcher.Journal
	fs        afero.Fs
	logDir    string
	grace     time.Duration
	tailLimit int
	resolve   Resolver

	mu            sync.Mutex
	state         launcher.ProcessState
	cmd           *exec.Cmd
	handle        launcher.ProcessHandle
	stopRequested bool
	tail          *tailBuffer
	done          chan struct{}
	closers       []io.Closer
}

// New creates an idle supervisor for the given tool. Events are appended to
// the shared journal.
func New(tool launcher.ToolKind, journal *launcher.Journal, opts ...Option) *Supervisor {
	supervisor := &Supervisor{
		tool:      tool,
		journal:   journal,
		grace:     DefaultGracePeriod,
		tailLimit: DefaultTailLimit,
		state:     launcher.StateIdle,
		resolve: func(ctx context.Context, executable string) (string, error) {
			return process.LookupExecutable(ctx, []string{executable})
		},
	}

	for _, opt := range opts {
		opt(supervisor)
	}

	return supervisor
}

// Tool returns the tool the supervisor owns.
func (supervisor *Supervisor) Tool() launcher.ToolKind {
	return supervisor.tool
}

// State returns the current lifecycle state.
func (supervisor *Supervisor) State() launcher.ProcessState {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	return supervisor.state
}

// Handle returns a snapshot of the owned process, or false when idle.
func (supervisor *Supervisor) Handle() (launcher.ProcessHandle, bool) {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if supervisor.state == launcher.StateIdle {
		return launcher.ProcessHandle{}, false
	}

	handle := supervisor.handle
	handle.State = supervisor.state

	return handle, true
}

// Start spawns the built command and begins streaming its output. Fails with
// *launcher.AlreadyRunningError unless the supervisor is idle.
func (supervisor *Supervisor) Start(ctx context.Context, spec launcher.CommandSpec) error {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if supervisor.state != launcher.StateIdle {
		return &launcher.AlreadyRunningError{Tool: supervisor.tool, State: supervisor.state}
	}

	path, err := supervisor.resolve(ctx, spec.Executable)
	if err != nil {
		return fmt.Errorf("resolve %s executable: %w", spec.Executable, err)
	}

	supervisor.state = launcher.StateStarting
	supervisor.emit(slog.LevelInfo, fmt.Sprintf("starting: %s", spec.Preview()))

	cmd := exec.Command(path, spec.Args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		supervisor.state = launcher.StateIdle
		return fmt.Errorf("capture %s stdout: %w", supervisor.tool, err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		supervisor.state = launcher.StateIdle
		return fmt.Errorf("capture %s stderr: %w", supervisor.tool, err)
	}

	session := launcher.NewSessionID()

	stdoutLog, stderrLog, err := supervisor.openSessionLogs(session)
	if err != nil {
		supervisor.state = launcher.StateIdle
		return err
	}

	if err := cmd.Start(); err != nil {
		supervisor.state = launcher.StateIdle
		supervisor.closeSessionLogs()
		supervisor.emit(slog.LevelError, fmt.Sprintf("start failed: %v", err))
		return fmt.Errorf("start %s: %w", supervisor.tool, err)
	}

	supervisor.cmd = cmd
	supervisor.stopRequested = false
	supervisor.tail = newTailBuffer(supervisor.tailLimit)
	supervisor.done = make(chan struct{})
	supervisor.handle = launcher.ProcessHandle{
		Tool:       supervisor.tool,
		Session:    session,
		Executable: path,
		PID:        cmd.Process.Pid,
		StartedAt:  time.Now(),
		State:      launcher.StateRunning,
	}

	// Neither tool reports readiness; a successful spawn is "running".
	supervisor.state = launcher.StateRunning
	supervisor.emit(slog.LevelInfo, fmt.Sprintf("running (pid %d)", cmd.Process.Pid))

	var readers sync.WaitGroup
	readers.Add(2)
	go supervisor.stream(stdout, stdoutLog, &readers)
	go supervisor.stream(stderr, stderrLog, &readers)
	go supervisor.supervise(cmd, &readers, supervisor.done)

	return nil
}

// Stop requests graceful termination and escalates to a kill after the grace
// period. Fails with *launcher.NotRunningError when idle; calling it on an
// already stopped or crashed session is a no-op. Safe from any goroutine.
func (supervisor *Supervisor) Stop(ctx context.Context) error {
	supervisor.mu.Lock()

	switch supervisor.state {
	case launcher.StateIdle:
		supervisor.mu.Unlock()
		return &launcher.NotRunningError{Tool: supervisor.tool}

	case launcher.StateStopped, launcher.StateCrashed:
		supervisor.mu.Unlock()
		return nil

	case launcher.StateStopping:
		done := supervisor.done
		supervisor.mu.Unlock()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	supervisor.state = launcher.StateStopping
	supervisor.stopRequested = true
	supervisor.handle.State = launcher.StateStopping
	proc := supervisor.cmd.Process
	done := supervisor.done
	supervisor.mu.Unlock()

	supervisor.emit(slog.LevelInfo, "stopping")
	_ = proc.Signal(syscall.SIGTERM)

	timer := time.NewTimer(supervisor.grace)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		_ = proc.Kill()
		return ctx.Err()
	case <-timer.C:
		supervisor.emit(slog.LevelWarn, fmt.Sprintf("no exit within %s, killing", supervisor.grace))
		_ = proc.Kill()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until the current session ends. Returns immediately when no
// session is live.
func (supervisor *Supervisor) Wait(ctx context.Context) error {
	supervisor.mu.Lock()
	done := supervisor.done
	state := supervisor.state
	supervisor.mu.Unlock()

	if done == nil || state.IsTerminal() {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Acknowledge returns a terminal supervisor to idle so a new session can be
// started.
func (supervisor *Supervisor) Acknowledge() error {
	supervisor.mu.Lock()
	defer supervisor.mu.Unlock()

	if !supervisor.state.IsTerminal() {
		return fmt.Errorf("%s: cannot acknowledge state %s", supervisor.tool, supervisor.state)
	}

	supervisor.state = launcher.StateIdle
	supervisor.cmd = nil
	supervisor.handle = launcher.ProcessHandle{}
	supervisor.stopRequested = false
	supervisor.tail = nil
	supervisor.done = nil

	return nil
}

func (supervisor *Supervisor) stream(pipe io.Reader, sessionLog io.Writer, readers *sync.WaitGroup) {
	defer readers.Done()

	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()

		if sessionLog != nil {
			_, _ = fmt.Fprintln(sessionLog, line)
		}

		supervisor.mu.Lock()
		if supervisor.tail != nil {
			supervisor.tail.Append(line)
		}
		supervisor.handle.LastLine = line
		supervisor.mu.Unlock()

		supervisor.emit(slog.LevelInfo, line)
	}
}

func (supervisor *Supervisor) supervise(cmd *exec.Cmd, readers *sync.WaitGroup, done chan struct{}) {
	// Pipes must be drained before Wait reclaims them.
	readers.Wait()
	waitErr := cmd.Wait()

	supervisor.mu.Lock()

	final := launcher.StateStopped
	exitCode := 0

	if waitErr != nil {
		exitCode = -1

		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		if !supervisor.stopRequested {
			final = launcher.StateCrashed
		}
	}

	supervisor.state = final
	supervisor.handle.State = final
	supervisor.handle.ExitCode = &exitCode

	var tailLines []string
	if supervisor.tail != nil {
		tailLines = supervisor.tail.Lines()
	}

	supervisor.closeSessionLogs()
	supervisor.mu.Unlock()

	switch final {
	case launcher.StateCrashed:
		message := fmt.Sprintf("crashed (exit code %d)", exitCode)
		if len(tailLines) > 0 {
			message += "; last output:\n" + strings.Join(tailLines, "\n")
		}
		supervisor.emit(slog.LevelError, message)
	default:
		supervisor.emit(slog.LevelInfo, fmt.Sprintf("stopped (exit code %d)", exitCode))
	}

	close(done)
}

func (supervisor *Supervisor) openSessionLogs(session launcher.SessionID) (io.Writer, io.Writer, error) {
	if supervisor.fs == nil || supervisor.logDir == "" {
		return nil, nil, nil
	}

	dir := filepath.Join(supervisor.logDir, string(supervisor.tool), string(session))
	if err := supervisor.fs.MkdirAll(dir, 0750); err != nil {
		return nil, nil, fmt.Errorf("create session log directory: %w", err)
	}

	stdoutLog, err := supervisor.fs.Create(filepath.Join(dir, "stdout.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("create stdout log: %w", err)
	}
	supervisor.closers = append(supervisor.closers, stdoutLog)

	stderrLog, err := supervisor.fs.Create(filepath.Join(dir, "stderr.log"))
	if err != nil {
		supervisor.closeSessionLogs()
		return nil, nil, fmt.Errorf("create stderr log: %w", err)
	}
	supervisor.closers = append(supervisor.closers, stderrLog)

	return stdoutLog, stderrLog, nil
}

func (supervisor *Supervisor) closeSessionLogs() {
	for _, closer := range supervisor.closers {
		_ = closer.Close()
	}
	supervisor.closers = nil
}

func (supervisor *Supervisor) emit(level slog.Level, message string) {
	supervisor.journal.Append(launcher.LogEvent{
		Source:  "supervisor:" + string(supervisor.tool),
		Level:   level,
		Message: message,
	})
}
