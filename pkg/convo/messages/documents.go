package messages

import (
	"fmt"
	"strings"
)

// PlanDocument is the structured response of the one-shot plan operation.
type PlanDocument struct {
	Title   string     `json:"title"`
	Summary string     `json:"summary"`
	Steps   []PlanStep `json:"steps"`
}

// PlanStep is one step of a generated plan.
type PlanStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Files       []string `json:"files,omitempty"`
}

// Render formats the plan as markdown for display in the conversation log.
func (d *PlanDocument) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", d.Title, d.Summary)
	for i, step := range d.Steps {
		fmt.Fprintf(&b, "\n%d. **%s**: %s\n", i+1, step.Title, step.Description)
		for _, file := range step.Files {
			fmt.Fprintf(&b, "   - `%s`\n", file)
		}
	}

	return b.String()
}

// SpecDocument is the structured response of the one-shot spec operation.
type SpecDocument struct {
	Title        string            `json:"title"`
	Overview     string            `json:"overview"`
	Requirements []SpecRequirement `json:"requirements"`
}

// SpecRequirement is one requirement of a generated specification.
type SpecRequirement struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	AcceptanceCriteria []string `json:"acceptanceCriteria,omitempty"`
}

// Render formats the specification as markdown.
func (d *SpecDocument) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", d.Title, d.Overview)
	for _, req := range d.Requirements {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", req.Name, req.Description)
		for _, crit := range req.AcceptanceCriteria {
			fmt.Fprintf(&b, "- %s\n", crit)
		}
	}

	return b.String()
}
