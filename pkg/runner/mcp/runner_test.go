package mcp

import (
	"net"
	"testing"
)

func TestEndpointURL(t *testing.T) {
	for _, tc := range []struct {
		addr net.Addr
		path string
		want string
	}{
		{&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}, "/mcp", "http://127.0.0.1:8080/mcp"},
		{&net.TCPAddr{IP: net.IPv4zero, Port: 4242}, "habits", "http://127.0.0.1:4242/habits"},
		{&net.TCPAddr{IP: net.ParseIP("::1"), Port: 80}, "", "http://[::1]:80/mcp"},
	} {
		if got := EndpointURL(tc.addr, tc.path); got != tc.want {
			t.Fatalf("EndpointURL(%v, %q) = %q, want %q", tc.addr, tc.path, got, tc.want)
		}
	}
}
