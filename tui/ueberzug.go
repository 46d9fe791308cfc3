package tui

import (
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// ErrUeberzugNotFound means thumbnails cannot be rendered on this system.
var ErrUeberzugNotFound = errors.New("ueberzug not found in PATH")

const previewIdentifier = "preview"

// Ueberzug renders images into the terminal through an `ueberzug layer`
// child process driven with JSON actions over stdin.
type Ueberzug struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	mu    sync.Mutex
}

type ueberzugAction struct {
	Action           string  `json:"action"`
	Identifier       string  `json:"identifier"`
	Path             string  `json:"path,omitempty"`
	X                int     `json:"x"`
	Y                int     `json:"y"`
	Width            int     `json:"width,omitempty"`
	Scaler           string  `json:"scaler,omitempty"`
	ScalingPositionX float64 `json:"scaling_position_x,omitempty"`
	ScalingPositionY float64 `json:"scaling_position_y,omitempty"`
}

func NewUeberzug() (*Ueberzug, error) {
	if _, err := exec.LookPath("ueberzug"); err != nil {
		return nil, ErrUeberzugNotFound
	}

	cmd := exec.Command("ueberzug", "layer", "--silent")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &Ueberzug{
		cmd:   cmd,
		stdin: stdin,
		enc:   json.NewEncoder(stdin),
	}, nil
}

// Add places the image at column x spanning width columns, scaled to fit.
func (u *Ueberzug) Add(path string, x, width int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enc.Encode(ueberzugAction{
		Action:           "add",
		Identifier:       previewIdentifier,
		Path:             path,
		X:                x,
		Y:                0,
		Width:            width,
		Scaler:           "contain",
		ScalingPositionX: 0.5,
		ScalingPositionY: 0.5,
	})
}

// Remove clears the current image.
func (u *Ueberzug) Remove() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enc.Encode(ueberzugAction{
		Action:     "remove",
		Identifier: previewIdentifier,
	})
}

// Close removes any visible image and waits for the child to exit.
func (u *Ueberzug) Close() error {
	u.Remove()
	u.stdin.Close()
	return u.cmd.Wait()
}
