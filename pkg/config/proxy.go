package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ParseTrustedProxies turns IPs and CIDR ranges into prefixes. A bare IP
// becomes a /32 or /128 prefix. Every invalid entry is reported.
//
// Example:
//
//	prefixes, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.1"})
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	var (
		prefixes []netip.Prefix
		errs     []error
	)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			errs = append(errs, errors.New("trusted proxy cannot be empty"))
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid IP or CIDR %q", entry))
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return prefixes, nil
}
