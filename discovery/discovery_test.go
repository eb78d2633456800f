package discovery

import "testing"

func TestStaticIP(t *testing.T) {
	cases := []struct {
		team int
		want string
	}{
		{3794, "10.37.94.1"},
		{118, "10.1.18.1"},
		{0, "10.0.0.1"},
	}
	for _, c := range cases {
		if got := StaticIP(10, c.team, 1); got != c.want {
			t.Errorf("StaticIP(10, %d, 1) = %q, want %q", c.team, got, c.want)
		}
	}
}

func TestGenerateAlwaysIncludesLoopbackAndRadioStatic(t *testing.T) {
	res := Generate(3794, nil, nil)

	foundLoopback := false
	for _, ip := range res.RobotIPs {
		if ip == "127.0.0.1" {
			foundLoopback = true
		}
	}
	if !foundLoopback {
		t.Error("expected robot_ips to contain 127.0.0.1 (P2)")
	}

	foundRadio := false
	for _, ip := range res.RadioIPs {
		if ip == "10.37.94.1" {
			foundRadio = true
		}
	}
	if !foundRadio {
		t.Error("expected radio_ips to contain the team's static address (P1)")
	}
}

func TestGeneratePrependsAdapterExtras(t *testing.T) {
	res := Generate(118, []string{"10.1.18.2"}, []string{"10.1.18.3"})

	if res.RadioIPs[0] != "10.1.18.2" {
		t.Errorf("expected extra radio ip first, got %v", res.RadioIPs)
	}
	if res.RobotIPs[0] != "10.1.18.3" {
		t.Errorf("expected extra robot ip first, got %v", res.RobotIPs)
	}
}
