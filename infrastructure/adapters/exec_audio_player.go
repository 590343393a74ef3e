package adapters

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
)

// playerBinaries are tried in order; the first one found on PATH wins.
var playerBinaries = []string{"afplay", "mpg123", "mpv", "ffplay"}

type execAudioPlayer struct {
	logger outbound.LoggerPort
	binary string
}

// NewExecAudioPlayer returns an audio player that shells out to a local
// command-line player. It fails when no known player binary is installed.
func NewExecAudioPlayer(logger outbound.LoggerPort) (outbound.AudioPlayerPort, error) {
	binary, err := findPlayerBinary()
	if err != nil {
		return nil, err
	}
	return &execAudioPlayer{
		logger: logger,
		binary: binary,
	}, nil
}

func findPlayerBinary() (string, error) {
	for _, candidate := range playerBinaries {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no audio player found, install one of: afplay, mpg123, mpv, ffplay")
}

func (p *execAudioPlayer) Play(audio []byte) (outbound.AudioHandle, error) {
	file, err := os.CreateTemp("", "tts-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := file.Write(audio); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return nil, fmt.Errorf("failed to close audio file: %w", err)
	}

	handle := &execAudioHandle{
		logger:   p.logger,
		binary:   p.binary,
		filePath: file.Name(),
		done:     make(chan error, 1),
	}
	if err := handle.start(); err != nil {
		handle.Release()
		return nil, err
	}
	return handle, nil
}

// execAudioHandle wraps one player process over one temp file. Pausing
// stops the process; the file stays on disk until Release so a rewound
// handle can be restarted.
type execAudioHandle struct {
	logger   outbound.LoggerPort
	binary   string
	filePath string
	done     chan error

	mu       sync.Mutex
	cmd      *exec.Cmd
	stopped  bool
	released bool
}

func (h *execAudioHandle) start() error {
	args := []string{h.filePath}
	if filepath.Base(h.binary) == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", h.filePath}
	}

	cmd := exec.Command(h.binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start audio player: %w", err)
	}

	h.mu.Lock()
	h.cmd = cmd
	h.mu.Unlock()

	go func() {
		err := cmd.Wait()

		h.mu.Lock()
		stopped := h.stopped
		h.mu.Unlock()

		if stopped {
			// Completion caused by Pause, not a playback failure.
			h.done <- nil
		} else {
			h.done <- err
		}
		close(h.done)
	}()

	return nil
}

func (h *execAudioHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || h.cmd == nil || h.cmd.Process == nil {
		return
	}
	h.stopped = true
	if err := h.cmd.Process.Kill(); err != nil {
		h.logger.Error(err, "failed to stop audio player process")
	}
}

func (h *execAudioHandle) Rewind() {
	// Playback always starts from the beginning of the file; there is no
	// position to reset for a stopped process.
}

func (h *execAudioHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.mu.Unlock()

	h.Pause()
	if err := os.Remove(h.filePath); err != nil && !os.IsNotExist(err) {
		h.logger.Error(err, "failed to remove audio file")
	}
}

func (h *execAudioHandle) Done() <-chan error {
	return h.done
}
