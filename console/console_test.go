package console

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"dspc/adapter/loopback"
	"dspc/clock"
	"dspc/core"
	"dspc/eventbus"
	"dspc/input"
)

func newTestConsole(t *testing.T) (net.Conn, *core.ProtocolCore) {
	t.Helper()
	a := loopback.New()
	fc := clock.NewFake()
	eb := eventbus.NewEventBus()
	agg := input.NewAggregator()

	c, err := core.New(a, eb, fc, agg)
	if err != nil {
		t.Fatalf("core.New: %v", err)
	}
	t.Cleanup(c.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c.Run(ctx)

	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close() })

	go handleConnection(ctx, serverConn, c, eb, cancel)

	reader := bufio.NewReader(clientConn)
	// Drain the welcome banner and prompt.
	readUntilPrompt(t, reader)

	return clientConn, c
}

func readUntilPrompt(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		sb.WriteByte(b)
		if strings.HasSuffix(sb.String(), "> ") {
			return sb.String()
		}
	}
}

func sendLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSetTeamCommandUpdatesCore(t *testing.T) {
	conn, c := newTestConsole(t)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	sendLine(t, conn, "set_team 3794")
	out := readUntilPrompt(t, reader)

	if !strings.Contains(out, "team set to 3794") {
		t.Fatalf("expected confirmation, got %q", out)
	}
	if c.Team() != 3794 {
		t.Fatalf("expected core team 3794, got %d", c.Team())
	}
}

func TestUnknownCommandReportsError(t *testing.T) {
	conn, _ := newTestConsole(t)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	sendLine(t, conn, "bogus")
	out := readUntilPrompt(t, reader)

	if !strings.Contains(out, "unknown command") {
		t.Fatalf("expected unknown command error, got %q", out)
	}
}

func TestModeCommandRejectsInvalidMode(t *testing.T) {
	conn, _ := newTestConsole(t)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	sendLine(t, conn, "mode warp_speed")
	out := readUntilPrompt(t, reader)

	if !strings.Contains(out, "unknown mode") {
		t.Fatalf("expected unknown mode error, got %q", out)
	}
}

func TestExitCommandClosesSession(t *testing.T) {
	conn, _ := newTestConsole(t)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	sendLine(t, conn, "exit")

	var sb strings.Builder
	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		sb.WriteByte(b)
	}
	if !strings.Contains(sb.String(), "goodbye") {
		t.Fatalf("expected goodbye message, got %q", sb.String())
	}
}
