// Package player launches the external media player on selected videos.
package player

import (
	"context"
	"os"
	"os/exec"
)

// Player runs an external media player process and waits for it to exit.
type Player struct {
	Command string
	Args    []string
}

func New() *Player {
	return &Player{
		Command: "mpv",
		Args:    []string{"--fullscreen"},
	}
}

// Play opens the given URLs in the player, attached to the terminal, and
// blocks until the player exits.
func (p *Player) Play(ctx context.Context, urls ...string) error {
	args := append(append([]string{}, p.Args...), urls...)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
