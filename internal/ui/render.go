package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/workflow"
)

// RenderDropdown renders one category as a key/label table.
func RenderDropdown(title string, d workflow.Dropdown) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	if len(d) == 0 {
		b.WriteString("  " + dimStyle.Render("(no entries)") + "\n")
		return b.String()
	}

	for _, e := range d {
		label := e.Label
		switch e.Key {
		case workflow.ErrorKey:
			label = failedStyle.Render(crossMark + " " + label)
		case workflow.NoneKey:
			label = dimStyle.Render(label)
		}
		fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(e.Key), label)
	}
	return b.String()
}

// RenderTask renders a task record.
func RenderTask(task *inventory.ProvisionTask) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vpcprov task: " + task.ID))
	b.WriteString(" ")
	b.WriteString(phaseLabel(task.Phase))
	b.WriteString("\n")

	row := func(key, value string) {
		if value == "" {
			value = dimStyle.Render("-")
		}
		fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(key), value)
	}
	row("state", task.State)
	row("instance", task.InstanceRef)
	row("message", task.Message)
	if !task.UpdatedAt.IsZero() {
		row("updated", task.UpdatedAt.Format(time.RFC3339))
	}
	return b.String()
}

// RenderStatus renders the result of a single status check.
func RenderStatus(instanceID string, done bool, message string) string {
	mark := spinner
	style := warningStyle
	if done {
		mark = checkMark
		style = readyStyle
	} else if strings.HasPrefix(message, "Unknown server state") {
		mark = warnMark
	}
	return fmt.Sprintf("%s %s\n", style.Render(mark+" "+instanceID), message)
}

func phaseLabel(phase string) string {
	switch phase {
	case inventory.PhaseFinished:
		return readyStyle.Render(checkMark + " " + phase)
	case inventory.PhaseError:
		return failedStyle.Render(crossMark + " " + phase)
	default:
		return warningStyle.Render(spinner + " " + phase)
	}
}
