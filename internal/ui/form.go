package ui

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/imamik/vpcprov/internal/provisioning"
	"github.com/imamik/vpcprov/internal/workflow"
)

// DropdownOptions converts a dropdown into select options. The error entry is
// left out so it can never be chosen; an empty result means the category has
// nothing to offer.
func DropdownOptions(d workflow.Dropdown) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(d))
	for _, e := range d {
		if e.Key == workflow.ErrorKey {
			continue
		}
		opts = append(opts, huh.NewOption(e.Label, e.Key))
	}
	return opts
}

// ApplySelection records the chosen key of a field as an (id, label) option.
// Selecting None, or a key the dropdown does not offer, records nothing.
func ApplySelection(opts provisioning.Options, option string, d workflow.Dropdown, key string) {
	if option == "" || key == "" || key == workflow.NoneKey {
		return
	}
	label, ok := d.Label(key)
	if !ok {
		return
	}
	opts.SetPair(option, key, label)
}

// requestAnswers holds the free-form fields of the request form.
type requestAnswers struct {
	Name               string
	InstanceType       string
	EntitledProcessors string
	IPAddress          string
	SecurityGroups     string
}

// applyAnswers records the free-form answers.
func applyAnswers(opts provisioning.Options, a requestAnswers) {
	opts.Set(provisioning.OptTargetName, a.Name)
	if a.InstanceType != "" {
		opts.SetPair(provisioning.OptInstanceType, a.InstanceType, a.InstanceType)
	}
	if a.EntitledProcessors != "" {
		opts.Set(provisioning.OptEntitledProcessors, a.EntitledProcessors)
	}
	if a.IPAddress != "" {
		opts.Set(provisioning.OptIPAddress, a.IPAddress)
	}
	if a.SecurityGroups != "" {
		opts.Set(provisioning.OptSecurityGroups, a.SecurityGroups)
	}
}

// RunRequestForm asks for a provisioning request. Selection lists come from w.
func RunRequestForm(ctx context.Context, w *workflow.Workflow) (provisioning.Options, error) {
	opts := provisioning.Options{}
	answers := requestAnswers{InstanceType: "shared"}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Instance Name").
				Description("Name of the virtual server instance").
				Placeholder("web-01").
				Value(&answers.Name).
				Validate(huh.ValidateNotEmpty()),
		).Title("Instance"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range workflow.Fields {
		if f.Option == "" {
			continue
		}
		d := f.Allowed(w, ctx)
		choices := DropdownOptions(d)
		if len(choices) == 0 {
			continue
		}

		var key string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(f.Title).
					Options(choices...).
					Value(&key),
			),
		).RunWithContext(ctx)
		if err != nil {
			return nil, err
		}
		ApplySelection(opts, f.Option, d, key)
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Processor Type").
				Options(
					huh.NewOption("Shared", "shared"),
					huh.NewOption("Dedicated", "dedicated"),
				).
				Value(&answers.InstanceType),
			huh.NewInput().
				Title("Entitled Processors (Optional)").
				Description("Dedicated: positive integer. Shared: multiple of 0.25.").
				Value(&answers.EntitledProcessors).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					values := provisioning.Options{}
					values.SetPair(provisioning.OptInstanceType, answers.InstanceType, answers.InstanceType)
					return workflow.ValidateEntitledProcessors(values, s)
				}),
			huh.NewInput().
				Title("IP Address (Optional)").
				Description("Reserved primary IPv4 address. Leave empty for automatic assignment.").
				Value(&answers.IPAddress).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return workflow.ValidateIPAddress(s)
				}),
			huh.NewInput().
				Title("Security Groups (Optional)").
				Description("Comma-separated security group ids").
				Value(&answers.SecurityGroups),
		).Title("Network and Processors"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	applyAnswers(opts, answers)
	return opts, nil
}
