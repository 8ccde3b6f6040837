package misc

import (
	"errors"
	"net"
)

// Nothing is the argument of rpc methods that need no input. gob refuses to
// encode structs without exported fields so it is not an empty struct.
type Nothing bool

// GetFreePort asks the kernel for an unused TCP port on localhost.
func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port

	if err = l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}

// GetLocalAddress returns the first IPv4 address of an up, non-loopback
// interface.
func GetLocalAddress() (string, error) {
	networkInterfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	for _, elt := range networkInterfaces {
		if elt.Flags&net.FlagLoopback != 0 || elt.Flags&net.FlagUp == 0 {
			continue
		}
		addresses, err := elt.Addrs()
		if err != nil {
			return "", err
		}
		for _, addr := range addresses {
			if ip, ok := addr.(*net.IPNet); ok {
				if ip4 := ip.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String(), nil
				}
			}
		}
	}

	return "", errors.New("no non-loopback interface with an IPv4 address")
}

// DisplayAddress turns a listen address such as ":8080" into one a person can
// open, filling in the host when the listener is bound to every interface.
func DisplayAddress(listenAddress string) string {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil || (host != "" && host != "0.0.0.0" && host != "::") {
		return listenAddress
	}
	local, err := GetLocalAddress()
	if err != nil {
		local = "localhost"
	}
	return net.JoinHostPort(local, port)
}
