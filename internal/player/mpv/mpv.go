// Package mpv drives an mpv process over its JSON IPC socket and exposes it
// as a player.MediaElement.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/utils"
)

var (
	// ErrClosed is returned once the IPC connection is gone.
	ErrClosed = errors.New("mpv connection closed")
	// ErrNotFound is returned when the mpv binary cannot be located.
	ErrNotFound = errors.New("mpv binary not found")
)

const (
	defaultStartupTimeout = 5 * time.Second
	commandTimeout        = 5 * time.Second
	terminateGrace        = 2 * time.Second
	eventBuffer           = 64
)

// Options configures the mpv process.
type Options struct {
	Binary         string
	SocketDir      string
	StartupTimeout time.Duration
	Logger         zerolog.Logger
}

// Player is a player.MediaElement backed by mpv.
type Player struct {
	cmd    *exec.Cmd
	socket string
	conn   net.Conn
	logger zerolog.Logger

	writeMu sync.Mutex

	mu       sync.Mutex
	nextID   int
	pending  map[int]chan reply
	loaded   bool
	coreIdle bool
	starting chan error
	closed   bool

	events chan player.Event
	done   chan struct{}
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Start launches mpv in idle audio-only mode and connects to its IPC socket.
func Start(ctx context.Context, opts Options) (*Player, error) {
	bin := opts.Binary
	if bin == "" {
		bin = "mpv"
	}

	path, err := lookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("Start: %w: %w", ErrNotFound, err)
	}

	dir := opts.SocketDir
	if dir == "" {
		dir = os.TempDir()
	}

	suffix, err := utils.RandomString()
	if err != nil {
		return nil, fmt.Errorf("Start: %w", err)
	}
	socket := filepath.Join(dir, "pixelwave-"+suffix+".sock")

	cmd := exec.Command(path, buildArgs(socket)...)
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("Start: failed to start mpv: %w", err)
	}

	timeout := opts.StartupTimeout
	if timeout <= 0 {
		timeout = defaultStartupTimeout
	}

	conn, err := dialSocket(ctx, socket, timeout)
	if err != nil {
		_ = terminatePID(cmd.Process.Pid, terminateGrace)
		_ = cmd.Wait()
		_ = os.Remove(socket)
		return nil, fmt.Errorf("Start: %w", err)
	}

	p := newPlayer(conn, opts.Logger)
	p.cmd = cmd
	p.socket = socket

	go func() {
		err := cmd.Wait()
		p.logger.Debug().Str("Method", "Wait").AnErr("Exit", err).Msg("mpv exited")
	}()

	if err := p.observe(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("Start: %w", err)
	}

	p.logger.Debug().Str("Method", "Start").Str("Socket", socket).Int("PID", cmd.Process.Pid).Msg("mpv ready")

	return p, nil
}

func buildArgs(socket string) []string {
	return []string{
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--no-config",
		"--input-ipc-server=" + socket,
		"--cache=yes",
		"--demuxer-max-bytes=4MiB",
	}
}

func dialSocket(ctx context.Context, socket string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		conn, err := dialIPC(ctx, socket)
		if err == nil {
			return conn, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dialSocket %s: %w", socket, err)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func newPlayer(conn net.Conn, logger zerolog.Logger) *Player {
	p := &Player{
		conn:     conn,
		logger:   logger,
		pending:  make(map[int]chan reply),
		coreIdle: true,
		events:   make(chan player.Event, eventBuffer),
		done:     make(chan struct{}),
	}

	go p.readLoop()

	return p
}

func (p *Player) observe() error {
	if _, err := p.command("observe_property", observePause, "pause"); err != nil {
		return err
	}
	if _, err := p.command("observe_property", observeCoreIdle, "core-idle"); err != nil {
		return err
	}
	return nil
}

func (p *Player) command(args ...any) (any, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	p.nextID++
	id := p.nextID
	ch := make(chan reply, 1)
	p.pending[id] = ch
	p.mu.Unlock()

	b, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		p.forget(id)
		return nil, fmt.Errorf("command %v: %w", args[0], err)
	}
	b = append(b, '\n')

	p.writeMu.Lock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(commandTimeout))
	_, err = p.conn.Write(b)
	p.writeMu.Unlock()
	if err != nil {
		p.forget(id)
		return nil, fmt.Errorf("command %v: %w", args[0], err)
	}

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("command %v: %w", args[0], r.err)
		}
		return r.data, nil
	case <-p.done:
		return nil, fmt.Errorf("command %v: %w", args[0], ErrClosed)
	case <-time.After(commandTimeout):
		p.forget(id)
		return nil, fmt.Errorf("command %v: timed out", args[0])
	}
}

func (p *Player) forget(id int) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}

func (p *Player) readLoop() {
	defer func() {
		p.mu.Lock()
		p.closed = true
		if p.starting != nil {
			p.starting <- ErrClosed
			p.starting = nil
		}
		p.mu.Unlock()
		close(p.done)
		close(p.events)
	}()

	scanner := bufio.NewScanner(p.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		msg, err := decodeMessage(scanner.Bytes())
		if err != nil {
			p.logger.Debug().Str("Method", "readLoop").Err(err).Msg("undecodable ipc line")
			continue
		}

		if msg.isReply() {
			p.resolve(msg)
			continue
		}

		p.handle(msg)
	}

	if err := scanner.Err(); err != nil {
		p.logger.Debug().Str("Method", "readLoop").Err(err).Msg("ipc read stopped")
	}
}

func (p *Player) resolve(msg message) {
	p.mu.Lock()
	ch, ok := p.pending[msg.RequestID]
	delete(p.pending, msg.RequestID)
	p.mu.Unlock()

	if !ok {
		return
	}

	if msg.Error != "success" {
		ch <- reply{err: errors.New(msg.Error)}
		return
	}
	ch <- reply{data: msg.Data}
}

func (p *Player) handle(msg message) {
	if msg.Event == "property-change" && msg.Name == "core-idle" {
		idle, ok := msg.Data.(bool)
		if !ok {
			return
		}
		p.mu.Lock()
		p.coreIdle = idle
		if !idle {
			p.finishStart(nil)
		}
		p.mu.Unlock()
		return
	}

	if msg.Event == "end-file" && msg.Reason == "error" {
		p.mu.Lock()
		p.finishStart(msg.fileError())
		p.mu.Unlock()
	}

	ev, ok := msg.toEvent()
	if !ok {
		return
	}

	select {
	case p.events <- ev:
	default:
		p.logger.Warn().Str("Method", "handle").Str("Event", ev.Kind.String()).Msg("event dropped, consumer too slow")
	}
}

// finishStart resolves a pending Play. Callers hold p.mu.
func (p *Player) finishStart(err error) {
	if p.starting == nil {
		return
	}
	p.starting <- err
	p.starting = nil
}

// SetSource loads url paused so that Play decides when audio starts.
func (p *Player) SetSource(url string) error {
	if _, err := p.command("set_property", "pause", true); err != nil {
		return fmt.Errorf("SetSource: %w", err)
	}
	if _, err := p.command("loadfile", url, "replace"); err != nil {
		return fmt.Errorf("SetSource: %w", err)
	}

	p.mu.Lock()
	p.loaded = true
	p.coreIdle = true
	p.mu.Unlock()

	return nil
}

// Play unpauses and waits until mpv reports that audio is flowing.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return player.ErrNoSource
	}
	if p.starting != nil {
		// A newer start replaces the older waiter.
		p.starting <- context.Canceled
	}
	started := make(chan error, 1)
	p.starting = started
	p.mu.Unlock()

	if _, err := p.command("set_property", "pause", false); err != nil {
		p.dropStart(started)
		return fmt.Errorf("Play: %w", err)
	}

	p.mu.Lock()
	if !p.coreIdle {
		p.finishStart(nil)
	}
	p.mu.Unlock()

	select {
	case err := <-started:
		if err != nil {
			return fmt.Errorf("Play: %w", err)
		}
		return nil
	case <-ctx.Done():
		if p.dropStart(started) {
			// mpv keeps buffering after the unpause; a late start must stay silent.
			if _, err := p.command("set_property", "pause", true); err != nil {
				p.logger.Warn().Str("Method", "Play").Err(err).Msg("re-pause after start timeout")
			}
		}
		return fmt.Errorf("Play: %w", ctx.Err())
	}
}

// dropStart forgets ch and reports whether it was still the pending start.
func (p *Player) dropStart(ch chan error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.starting != ch {
		return false
	}
	p.starting = nil
	return true
}

// Pause pauses playback.
func (p *Player) Pause() error {
	if _, err := p.command("set_property", "pause", true); err != nil {
		return fmt.Errorf("Pause: %w", err)
	}
	return nil
}

// Stop halts playback and clears the playlist, leaving mpv idle.
func (p *Player) Stop() error {
	p.mu.Lock()
	p.loaded = false
	p.coreIdle = true
	p.finishStart(player.ErrNoSource)
	p.mu.Unlock()

	if _, err := p.command("stop"); err != nil {
		return fmt.Errorf("Stop: %w", err)
	}
	return nil
}

// SetVolume maps v in [0,1] to mpv's 0-100 scale.
func (p *Player) SetVolume(v float64) error {
	if _, err := p.command("set_property", "volume", v*100); err != nil {
		return fmt.Errorf("SetVolume: %w", err)
	}
	return nil
}

// Events returns the channel of native playback signals. It is closed once
// the IPC connection is gone.
func (p *Player) Events() <-chan player.Event {
	return p.events
}

// Close asks mpv to quit, then makes sure the process is gone.
func (p *Player) Close() error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if !closed {
		_, _ = p.command("quit")
	}
	_ = p.conn.Close()

	var err error
	if p.cmd != nil && p.cmd.Process != nil {
		err = terminatePID(p.cmd.Process.Pid, terminateGrace)
	}
	if p.socket != "" {
		_ = os.Remove(p.socket)
	}

	return err
}
