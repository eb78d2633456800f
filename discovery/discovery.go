// Package discovery enumerates live network interfaces and builds the
// candidate robot/radio address lists the socket manager sweeps, per
// spec §4.3. Grounded on the teacher's shared/utils.go GetLocalIPs, which
// only reports local addresses for display; DSPC extends the same
// interface-walk into full /24 candidate generation.
package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// StaticIP computes "{a}.{team/100}.{team%100}.{d}" (spec §6). Radio's
// static address is StaticIP(10, team, 1).
func StaticIP(a, team, d int) string {
	return fmt.Sprintf("%d.%d.%d.%d", a, team/100, team%100, d)
}

// Result is the outcome of one (re)generation pass.
type Result struct {
	RobotIPs       []string
	RadioIPs       []string
	InterfaceCount int
}

// Generate builds the robot/radio candidate lists for team, per spec
// §4.3: adapter extras first, then the fixed entries, then a /24 sweep
// of every Up+Running IPv4 interface.
func Generate(team int, extraRadioIPs, extraRobotIPs []string) Result {
	var res Result

	res.RadioIPs = append(res.RadioIPs, extraRadioIPs...)
	res.RadioIPs = append(res.RadioIPs, StaticIP(10, team, 1))

	res.RobotIPs = append(res.RobotIPs, extraRobotIPs...)
	res.RobotIPs = append(res.RobotIPs, "127.0.0.1")

	ifaces, err := net.Interfaces()
	if err != nil {
		return res
	}

	const upRunning = net.FlagUp | net.FlagRunning

	for _, iface := range ifaces {
		if iface.Flags&upRunning != upRunning {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		touchedInterface := false
		for _, addr := range addrs {
			ip := ipFromAddr(addr)
			if ip == nil || ip.To4() == nil || ip.String() == "127.0.0.1" {
				continue
			}

			base := subnetBase(ip.To4())
			for host := 1; host <= 254; host++ {
				res.RobotIPs = append(res.RobotIPs, fmt.Sprintf("%s.%d", base, host))
			}
			touchedInterface = true
		}

		if touchedInterface {
			res.InterfaceCount++
		}
	}

	return res
}

// LocalIPs returns the local IPv4 addresses DSPC is reachable on, for
// startup banners (the teacher's GetLocalIPs, carried verbatim).
func LocalIPs() []string {
	var ips []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return ips
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ip := ipFromAddr(addr)
			if ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}

	return ips
}

func ipFromAddr(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	default:
		return nil
	}
}

func subnetBase(ip4 net.IP) string {
	octets := strings.Split(ip4.String(), ".")
	if len(octets) != 4 {
		return ip4.String()
	}
	return strings.Join(octets[:3], ".")
}

// ParseTeamFromStaticIP is a small convenience inverse of StaticIP,
// returning the two team octets (e.g. 37 and 94 for "10.37.94.1").
// Nothing else in the module calls it; not used by any core invariant.
func ParseTeamFromStaticIP(ip string) (hi, lo int, ok bool) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(parts[1])
	l, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return h, l, true
}
