package vpc

// NormalizeProtocol converts the numeric IpProtocol of a security group rule
// to a readable name. "-1" means every protocol.
func NormalizeProtocol(protocol string) string {
	switch protocol {
	case "-1":
		return "all"
	case "6", "tcp":
		return "tcp"
	case "17", "udp":
		return "udp"
	case "1", "icmp":
		return "icmp"
	case "58", "icmpv6":
		return "icmpv6"
	default:
		return protocol
	}
}
