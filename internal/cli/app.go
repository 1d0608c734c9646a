// Package cli implements the headless login, logout and whoami commands.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmarkovs/codetutor/internal/session"
)

// SessionController is the slice of the session controller the headless
// commands need. Satisfied by *session.Controller.
type SessionController interface {
	RestoreSession(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, username, password, confirm string) error
	Logout(ctx context.Context)
	Authenticated() bool
	ErrorText() string
	Cache() *session.Cache
}

// App wires the controller to terminal prompts and output.
type App struct {
	ctrl   SessionController
	reader *bufio.Reader
	out    io.Writer
}

// NewApp constructs a headless command runner reading from stdin.
func NewApp(ctrl SessionController) *App {
	return &App{ctrl: ctrl, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}
