// Package inventory is the local cached inventory of the provider account.
//
// The store keeps management-system (EMS) records, templates (bootable images),
// availability zones, flavors, cloud networks, subnets and volumes, plus the task
// records of provisioning attempts. It is backed by SQLite through GORM. The
// catalog tables are refreshed from the VPC API with [Refresh]; template ids stay
// stable across refreshes so stored requests keep pointing at the same image.
package inventory
