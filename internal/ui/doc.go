// Package ui renders dropdowns and task records for the terminal and runs the
// interactive provisioning request form.
package ui
