// Package netinfo discovers how other machines on the LAN reach this server.
package netinfo

import (
	"encoding/base64"
	"fmt"
	"net"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"fileshare/internal/domain/apperr"
)

var ErrNoLANAddress = apperr.New(apperr.ErrNotFound, "no non-loopback IPv4 address found")

// LocalIPv4 returns the first non-loopback IPv4 address of an interface that is up.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsLinkLocalUnicast() {
				return ip4.String(), nil
			}
		}
	}
	return "", ErrNoLANAddress
}

// IsWildcard reports whether host binds every interface.
func IsWildcard(host string) bool {
	return host == "" || host == "0.0.0.0" || host == "::" || host == "[::]"
}

// ShareURL is the address other LAN devices should open. For wildcard hosts
// the LAN address is looked up with lookup.
func ShareURL(host string, port int, lookup func() (string, error)) (string, error) {
	if IsWildcard(host) {
		ip, err := lookup()
		if err != nil {
			return "", err
		}
		host = ip
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(port))), nil
}

const (
	DefaultQRSize = 256
	MaxQRSize     = 1024
)

// ClampQRSize maps a requested edge length into [1, MaxQRSize], with
// DefaultQRSize for non-positive input.
func ClampQRSize(size int) int {
	if size <= 0 {
		return DefaultQRSize
	}
	if size > MaxQRSize {
		return MaxQRSize
	}
	return size
}

// QRCodePNG encodes url as a PNG QR code. size is clamped by ClampQRSize.
func QRCodePNG(url string, size int) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, ClampQRSize(size))
}

// QRCodeDataURI returns the QR code for url as an inline image URI.
func QRCodeDataURI(url string) (string, error) {
	png, err := QRCodePNG(url, DefaultQRSize)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
