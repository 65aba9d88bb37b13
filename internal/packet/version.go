package packet

// VersionSum totals the version field of p and every descendant. Pure
// traversal; shares Evaluate's concurrency properties.
func VersionSum(p *Packet) int {
	total := int(p.Version)
	for _, c := range p.Children {
		total += VersionSum(c)
	}
	return total
}
