package types

// Finding is a potential problem spotted in a reconstructed Dockerfile
type Finding struct {
	Severity    string // "critical", "high"
	Kind        string
	Message     string
	Instruction int // 1-based position in the generated instruction list
	Context     string
}
