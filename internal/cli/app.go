// Package cli implements the dashboard command line on top of the state layer.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/remote"
	"github.com/micro-ha/smarthome-dashboard/internal/syncstate"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("usage")

// Backend is the part of the remote client used directly by commands that
// bypass the local state.
type Backend interface {
	ResetPassword(ctx context.Context, username, email, newPassword string) (remote.Ack, error)
	GetDevices(ctx context.Context) ([]remote.DeviceRecord, error)
	Dashboard(ctx context.Context) (remote.Dashboard, error)
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// App dispatches subcommands.
type App struct {
	state    *syncstate.Service
	backend  Backend
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	commands map[string]command
}

func New(state *syncstate.Service, backend Backend, out, errOut io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{state: state, backend: backend, out: out, errOut: errOut, logger: logger}
	a.commands = map[string]command{
		"login":            {"login -email EMAIL -password PASSWORD", a.login},
		"register":         {"register -email EMAIL -password PASSWORD [-name NAME]", a.register},
		"logout":           {"logout", a.logout},
		"passwd":           {"passwd -old OLD -new NEW", a.passwd},
		"reset-password":   {"reset-password -username NAME -email EMAIL -new NEW", a.resetPassword},
		"delete-account":   {"delete-account -yes", a.deleteAccount},
		"profile":          {"profile [set -first F -last L -email E -phone P -address A -plan PLAN]", a.profile},
		"show":             {"show [VIEW] [-device ID] [-room ID] [-category ID]", a.show},
		"views":            {"views", a.views},
		"devices":          {"devices [-active]", a.devices},
		"toggle":           {"toggle DEVICE_ID", a.toggle},
		"set":              {"set DEVICE_ID PROPERTY VALUE", a.set},
		"update-device":    {"update-device DEVICE_ID [-name N] [-room R] [-category C] [-status on|off]", a.updateDevice},
		"add-device":       {"add-device -name N -type T -room R [-category C] [-on]", a.addDevice},
		"remove-device":    {"remove-device DEVICE_ID", a.removeDevice},
		"fav":              {"fav DEVICE_ID", a.favourite},
		"favourites":       {"favourites", a.favourites},
		"rooms":            {"rooms", a.rooms},
		"add-room":         {"add-room -name N [-icon I] [-color C]", a.addRoom},
		"rename-room":      {"rename-room ROOM_ID -name N", a.renameRoom},
		"remove-room":      {"remove-room ROOM_ID", a.removeRoom},
		"scene":            {"scene list | add -name N [-icon I] -step ID:on|off ... | run ID | rm ID", a.scene},
		"automation":       {"automation list | add -name N -trigger T -value V -device ID -action A | toggle ID | rm ID", a.automation},
		"history":          {"history [-type T] [-range all|today|week|month] [-search S] | clear -yes | export [-format json|yaml] [-out FILE]", a.history},
		"remote-devices":   {"remote-devices", a.remoteDevices},
		"remote-dashboard": {"remote-dashboard", a.remoteDashboard},
	}
	return a
}

// Run executes one command line.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.printUsage()
		return nil
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	a.logger.Debug("running command", "command", args[0])
	if err := cmd.run(ctx, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(a.errOut, "usage: dashboard %s\n", cmd.usage)
		}
		return err
	}
	return nil
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(a.errOut, "usage: dashboard COMMAND [ARGS]")
	fmt.Fprintln(a.errOut)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse parses flags that may follow positional arguments and returns the
// positional arguments.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	positional := []string{}
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func exactArgs(args []string, n int, what string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s", ErrUsage, what)
	}
	return nil
}

func required(values map[string]string) error {
	missing := []string{}
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing %s", ErrUsage, strings.Join(missing, ", "))
}
