package console

import (
	"fmt"
	"strconv"

	"dspc/core"
	"dspc/eventbus"
)

func init() {
	Register("status", "Show the current session status", "status", statusCommand)
	Register("set_team", "Set the team number", "set_team <n>", setTeamCommand)
	Register("set_enabled", "Enable or disable the robot", "set_enabled <true|false>", setEnabledCommand)
	Register("estop", "Set or clear emergency stop", "estop <true|false>", estopCommand)
	Register("mode", "Set the control mode", "mode <teleop|auto|test>", modeCommand)
	Register("sweep", "Show the robot/radio IP candidates currently swept", "sweep", sweepCommand)
	Register("subscribe", "Subscribe this session to an event type", "subscribe <event_type>", subscribeCommand)
	Register("unsubscribe", "Unsubscribe this session from an event type", "unsubscribe <event_type>", unsubscribeCommand)
	Register("help", "Show available commands", "help [command]", helpCommand)
	Register("exit", "Close this console session", "exit", exitCommand)
	Register("quit", "Close this console session", "quit", exitCommand)
}

func statusCommand(ctx *CommandContext, args []string) error {
	c := ctx.Core
	voltageStr, _ := c.Voltage()
	ctx.Reply("team=%d alliance=%s control_mode=%s enabled=%v e_stop=%v",
		c.Team(), c.Alliance(), c.ControlMode(), c.Enabled(), c.EmergencyStop())
	ctx.Reply("comm_status=%s robot_code=%v radio_connected=%v voltage=%s",
		c.CommStatus(), c.RobotCode(), c.RadioConnected(), voltageStr)
	ctx.Reply("sent_fms=%d sent_robot=%d", c.SentFMSPackets(), c.SentRobotPackets())
	return nil
}

func setTeamCommand(ctx *CommandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: set_team <n>")
	}
	team, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid team number: %s", args[0])
	}
	ctx.Core.SetTeam(team)
	ctx.Reply("team set to %d", team)
	return nil
}

func setEnabledCommand(ctx *CommandContext, args []string) error {
	enabled, err := parseBoolArg(args, "set_enabled")
	if err != nil {
		return err
	}
	ctx.Core.SetEnabled(enabled)
	ctx.Reply("enabled set to %v", enabled)
	return nil
}

func estopCommand(ctx *CommandContext, args []string) error {
	stop, err := parseBoolArg(args, "estop")
	if err != nil {
		return err
	}
	ctx.Core.SetEmergencyStop(stop)
	ctx.Reply("emergency_stop set to %v", stop)
	return nil
}

func modeCommand(ctx *CommandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mode <teleop|auto|test>")
	}
	var mode core.ControlMode
	switch args[0] {
	case "teleop":
		mode = core.Teleop
	case "auto", "autonomous":
		mode = core.Autonomous
	case "test":
		mode = core.Test
	default:
		return fmt.Errorf("unknown mode: %s (want teleop|auto|test)", args[0])
	}
	ctx.Core.SetControlMode(mode)
	ctx.Reply("control_mode set to %s", mode)
	return nil
}

func sweepCommand(ctx *CommandContext, args []string) error {
	ctx.Reply("robot_ips=%v", ctx.Core.RobotIPs())
	ctx.Reply("radio_ips=%v", ctx.Core.RadioIPs())
	ctx.Reply("interface_count=%d", ctx.Core.InterfaceCount())
	return nil
}

func subscribeCommand(ctx *CommandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: subscribe <event_type>")
	}
	eventType := args[0]
	ctx.EventBus.Subscribe(eventType, ctx.Subscriber, func(event eventbus.Event) {
		fmt.Fprintf(ctx.Conn, "\nevent %s: %v\n", event.GetType(), event.GetData())
	})
	ctx.Reply("subscribed to %s", eventType)
	return nil
}

func unsubscribeCommand(ctx *CommandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: unsubscribe <event_type>")
	}
	ctx.EventBus.Unsubscribe(args[0], ctx.Subscriber)
	ctx.Reply("unsubscribed from %s", args[0])
	return nil
}

func helpCommand(ctx *CommandContext, args []string) error {
	if len(args) == 0 {
		ctx.Reply("available commands:")
		for _, cmd := range DefaultRegistry.List() {
			ctx.Reply("  %-12s - %s", cmd.Name, cmd.Description)
		}
		ctx.Reply("use 'help <command>' for detailed usage")
		return nil
	}
	cmd, ok := DefaultRegistry.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	ctx.Reply("%s: %s", cmd.Name, cmd.Description)
	ctx.Reply("usage: %s", cmd.Usage)
	return nil
}

func exitCommand(ctx *CommandContext, args []string) error {
	ctx.Reply("goodbye")
	return errExit
}

func parseBoolArg(args []string, usage string) (bool, error) {
	if len(args) < 1 {
		return false, fmt.Errorf("usage: %s <true|false>", usage)
	}
	switch args[0] {
	case "true", "1", "on":
		return true, nil
	case "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", args[0])
	}
}
