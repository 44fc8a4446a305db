package ec2

// Region is one entry of DescribeRegions.
type Region struct {
	Name        string
	OptInStatus string // opt-in-not-required, opted-in, not-opted-in
}

// Enabled reports whether the account can use the region.
func (r Region) Enabled() bool {
	return r.OptInStatus != "not-opted-in"
}
