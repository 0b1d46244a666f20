package models

// Agent is a named, reusable execution profile a task runs against.
type Agent struct {
	Name        string `json:"name"`
	HasClaudeMD bool   `json:"has_claude_md"`
}

// AgentsResponse is the wire shape of GET /agents.
type AgentsResponse struct {
	Agents []Agent `json:"agents"`
}
