// Package netplan computes the derived values a VPC topology needs before
// it can be declared: availability-zone lists, CIDR subdivision, and tag
// merging. It works on IPv4 blocks only, matching what the topology
// declares.
package netplan

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Subdivide splits block into count consecutive subnets, each newBits
// smaller than the parent. It is the render-time equivalent of the
// Fn::Cidr intrinsic: Subdivide("10.0.0.0/16", 8, 4) returns
// 10.0.0.0/24, 10.0.1.0/24, 10.0.2.0/24, 10.0.3.0/24.
func Subdivide(block string, newBits, count int) ([]string, error) {
	prefix, err := parseIPv4Prefix(block)
	if err != nil {
		return nil, err
	}
	if newBits <= 0 {
		return nil, fmt.Errorf("newBits must be positive, got %d", newBits)
	}
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}

	childLen := prefix.Bits() + newBits
	if childLen > 32 {
		return nil, fmt.Errorf("cannot split %s into /%d subnets", block, childLen)
	}
	if count > 1<<newBits {
		return nil, fmt.Errorf("%s only holds %d /%d subnets, need %d",
			block, 1<<newBits, childLen, count)
	}

	base := binary.BigEndian.Uint32(ipv4Bytes(prefix.Addr()))
	step := uint32(1) << (32 - childLen)

	subnets := make([]string, count)
	for i := 0; i < count; i++ {
		addr := base + uint32(i)*step
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], addr)
		subnets[i] = netip.PrefixFrom(netip.AddrFrom4(b), childLen).String()
	}
	return subnets, nil
}

// SubnetAt returns the index-th subnet of block at newBits extra prefix
// length. Equivalent to Subdivide(block, newBits, index+1)[index].
func SubnetAt(block string, newBits, index int) (string, error) {
	subnets, err := Subdivide(block, newBits, index+1)
	if err != nil {
		return "", err
	}
	return subnets[index], nil
}

// Contains reports whether inner is fully contained in outer.
func Contains(outer, inner string) (bool, error) {
	op, err := parseIPv4Prefix(outer)
	if err != nil {
		return false, err
	}
	ip, err := parseIPv4Prefix(inner)
	if err != nil {
		return false, err
	}
	if ip.Bits() < op.Bits() {
		return false, nil
	}
	return op.Contains(ip.Addr()), nil
}

// Overlaps reports whether two blocks share any addresses.
func Overlaps(a, b string) (bool, error) {
	ap, err := parseIPv4Prefix(a)
	if err != nil {
		return false, err
	}
	bp, err := parseIPv4Prefix(b)
	if err != nil {
		return false, err
	}
	return ap.Overlaps(bp), nil
}

func parseIPv4Prefix(block string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(block)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid CIDR %q: %w", block, err)
	}
	if !prefix.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("CIDR %q is not IPv4", block)
	}
	return prefix.Masked(), nil
}

func ipv4Bytes(addr netip.Addr) []byte {
	b := addr.As4()
	return b[:]
}
