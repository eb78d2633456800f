// Package console is a line-oriented TCP debug terminal (spec §4.12): the
// GUI translation layer's stand-in per spec.md §1's Non-goals ("no UI...
// [components] appear only as named collaborators") — a minimal text
// console lets an operator drive the core without building the real GUI.
//
// Grounded on the teacher's terminal package (terminal.go, commands.go,
// init.go, event_bus_commands.go): a CommandRegistry populated via
// init(), one goroutine per accepted connection, a bufio.Scanner reading
// newline-delimited commands.
package console

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"dspc/core"
	"dspc/eventbus"
	"dspc/logging"
)

// CommandContext is the state one connection's command handlers operate
// against. The teacher's terminal.CommandContext is missing the
// EventBus/Subscriber fields that terminal.go actually constructs it
// with — a real inconsistency in the teacher tree (DESIGN.md). Console's
// CommandContext carries both from the start.
type CommandContext struct {
	Conn       net.Conn
	Core       *core.ProtocolCore
	EventBus   eventbus.EventBus
	Subscriber *eventbus.Subscriber
	Cancel     context.CancelFunc
}

// Reply writes a line to the connection, appending a newline.
func (ctx *CommandContext) Reply(format string, args ...interface{}) {
	fmt.Fprintf(ctx.Conn, format+"\n", args...)
}

// CommandFunc implements one registered command.
type CommandFunc func(ctx *CommandContext, args []string) error

// CommandInfo is one registered command's metadata plus handler.
type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Handler     CommandFunc
}

// Registry holds every registered command, keyed by name.
type Registry struct {
	commands map[string]*CommandInfo
}

// DefaultRegistry is populated by each command file's init().
var DefaultRegistry = &Registry{commands: make(map[string]*CommandInfo)}

// Register installs a command under name. Re-registering the same name
// replaces the prior handler, matching the teacher's plain map-assign
// semantics (no registry-level duplicate detection here, unlike the
// adapter registry, since commands are all first-party and wired once at
// package-init time).
func Register(name, description, usage string, handler CommandFunc) {
	DefaultRegistry.commands[name] = &CommandInfo{Name: name, Description: description, Usage: usage, Handler: handler}
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (*CommandInfo, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns every registered command.
func (r *Registry) List() []*CommandInfo {
	out := make([]*CommandInfo, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	return out
}

// Execute runs the named command against ctx.
func (r *Registry) Execute(ctx *CommandContext, name string, args []string) error {
	cmd, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmd.Handler(ctx, args)
}

// errExit signals a clean session-ending command (exit/quit).
var errExit = fmt.Errorf("exit")

// Start runs the TCP console listener on addr until ctx is canceled.
// Grounded on terminal.Start: an accept loop handing each connection to
// its own goroutine, shutting down the listener on ctx.Done().
func Start(ctx context.Context, addr string, c *core.ProtocolCore, eb eventbus.EventBus, cancel context.CancelFunc) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("console: listen: %w", err)
	}
	defer listener.Close()

	logging.Print("console: listening on %s", addr)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					logging.Print("console: accept error: %v", err)
					continue
				}
			}
			go handleConnection(ctx, conn, c, eb, cancel)
		}
	}()

	<-ctx.Done()
	logging.Print("console: shutting down")
	return listener.Close()
}

func handleConnection(ctx context.Context, conn net.Conn, c *core.ProtocolCore, eb eventbus.EventBus, cancel context.CancelFunc) {
	defer conn.Close()

	cmdCtx := &CommandContext{
		Conn:       conn,
		Core:       c,
		EventBus:   eb,
		Subscriber: eventbus.NewSubscriber(),
		Cancel:     cancel,
	}

	fmt.Fprintln(conn, "=== Driver Station Console ===")
	fmt.Fprintln(conn, "Type 'help' for available commands.")
	fmt.Fprint(conn, "> ")

	scanner := bufio.NewScanner(conn)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(conn, "\nsession ended")
			return
		default:
		}

		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(conn, "> ")
			continue
		}

		fields := strings.Fields(line)
		name, args := fields[0], fields[1:]

		if err := DefaultRegistry.Execute(cmdCtx, name, args); err != nil {
			if err == errExit {
				return
			}
			fmt.Fprintf(conn, "error: %v\n", err)
		}

		fmt.Fprint(conn, "> ")
	}
}
