// Package workflow produces the selection lists of the provisioning request
// form and validates free-form fields.
//
// Each category has an unexported list operation returning (Dropdown, error)
// and an exported Allowed method that degrades a failure into the error entry
// so a provider outage never breaks the form. Successful lists are memoized on
// the Workflow; create a new Workflow to see fresh data.
package workflow
