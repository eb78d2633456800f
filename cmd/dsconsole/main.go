// Command dsconsole is the reference host process for a ProtocolCore
// (spec.md §6: "the core stays an embedded library; a host process wires
// it up"). It loads configuration, installs the requested wire-format
// adapter, and starts the HTTP admin surface, the debug console, and
// (if configured) MongoDB session telemetry, coordinating graceful
// shutdown on SIGINT/SIGTERM.
//
// Grounded on the teacher's roboserver/main.go: one context cancelled on
// a termination signal, a WaitGroup tracking each component's goroutine,
// a bounded shutdown timeout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"dspc/adapter"
	"dspc/clock"
	"dspc/config"
	"dspc/console"
	"dspc/core"
	"dspc/discovery"
	"dspc/eventbus"
	"dspc/httpapi"
	"dspc/input"
	"dspc/logging"
	"dspc/packetlog"
	"dspc/telemetry"

	_ "dspc/adapter/basicwire"
	_ "dspc/adapter/loopback"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	logging.Print("driver station protocol core starting")
	logging.Print("local interfaces: %v", discovery.LocalIPs())

	adapterName := envOr("ADAPTER", "basicwire")
	adapterImpl, ok := adapter.New(adapterName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown adapter %q (registered: %v)\n", adapterName, adapter.Names())
		os.Exit(1)
	}

	eb := eventbus.NewEventBus()
	agg := input.NewAggregator()
	clk := clock.New()

	c, err := core.New(adapterImpl, eb, clk, agg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build protocol core: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	// Run must start the actor loop before any caller-synchronous mutator
	// (SetTeam, SetEnabled, ...) is called — those block on the loop
	// goroutine draining c.commands, which Run is what launches.
	c.Run(ctx)
	c.SetTeam(cfg.Team)

	ring := packetlog.New(config.PacketCaptureRingLength)
	c.SetPacketObserver(func(direction, channel string, data []byte) {
		ring.Capture(packetlog.Direction(direction), packetlog.Channel(channel), data)
	})

	var tw *telemetry.Writer
	if cfg.MongoURI != "" {
		connectCtx, connectCancel := context.WithTimeout(ctx, config.RegisteringWaitTimeout)
		w, err := telemetry.Connect(connectCtx, cfg, sessionID())
		connectCancel()
		if err != nil {
			logging.Print("telemetry disabled: %v", err)
		} else {
			tw = w
		}
	}
	trend := telemetry.NewVoltageTrend()
	eb.Subscribe(core.EventVoltageChanged, eventbus.NewSubscriber(), func(event eventbus.Event) {
		_, v := c.Voltage()
		trend.Add(v)
		tw.Record("voltage_sample", map[string]interface{}{"voltage": event.GetData()})
	})
	eb.Subscribe(core.EventCommStatusChanged, eventbus.NewSubscriber(), func(event eventbus.Event) {
		tw.Record("comm_status", map[string]interface{}{"status": event.GetData()})
	})
	eb.Subscribe(core.EventEStopFired, eventbus.NewSubscriber(), func(event eventbus.Event) {
		tw.Record("e_stop", map[string]interface{}{"stop": event.GetData()})
	})
	eb.Subscribe(core.EventTeamChanged, eventbus.NewSubscriber(), func(event eventbus.Event) {
		tw.Record("team_changed", map[string]interface{}{"team": event.GetData()})
	})

	c.Start()

	var wg sync.WaitGroup

	httpSrv := httpapi.New(c, eb, ring, tw, trend)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpSrv.ListenAndServe(ctx, ":"+cfg.HTTPPort); err != nil {
			logging.Print("httpapi exited: %v", err)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := console.Start(ctx, ":"+cfg.ConsolePort, c, eb, cancel); err != nil {
			logging.Print("console exited: %v", err)
			cancel()
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logging.Print("context cancelled, shutting down")
	case <-sigs:
		logging.Print("received termination signal, shutting down")
	}
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Print("all components shut down gracefully")
	case <-time.After(10 * time.Second):
		logging.Print("timeout waiting for shutdown, forcing exit")
	}

	if tw != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		tw.Close(closeCtx)
		closeCancel()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sessionID() string {
	return fmt.Sprintf("session-%d", time.Now().UnixNano())
}
