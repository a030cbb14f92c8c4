// Package macaddr parses and canonicalizes the 48-bit MAC addresses used by
// classifier table entries, mirroring sppwk_convert_mac_str_to_int64 from
// the original cmd_runner.c.
package macaddr

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/google/gopacket/macs"
)

// ErrInvalidMAC is returned when the input string does not parse as a MAC.
var ErrInvalidMAC = fmt.Errorf("invalid MAC address")

// Parse converts a MAC address string ("00:11:22:33:44:55") into its 48-bit
// integer form plus the canonical lowercase colon-separated text form. A
// successfully parsed all-zero MAC yields 0, the same value the classifier
// attributes use to mean "unset".
func Parse(s string) (val uint64, canon string, err error) {
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return 0, "", ErrInvalidMAC
	}

	var buf [8]byte
	copy(buf[2:], hw)
	val = binary.BigEndian.Uint64(buf[:])

	return val, hw.String(), nil
}

// Format renders the 48-bit integer form back to canonical text.
func Format(val uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], val)
	hw := net.HardwareAddr(buf[2:])
	return hw.String()
}

// VendorHint returns the OUI prefix of val and whether gopacket's vendor
// table knows it; it does not return the vendor name. A lookup miss is
// reported as ok=false and is never a validation failure.
func VendorHint(val uint64) (prefix [3]byte, ok bool) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], val)
	prefix = [3]byte{buf[2], buf[3], buf[4]}
	_, ok = macs.ValidMACPrefixMap[prefix]
	return prefix, ok
}
