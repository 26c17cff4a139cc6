package inventory

import (
	"time"

	"gorm.io/datatypes"
)

// Base holds the columns shared by all inventory rows.
type Base struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExtManagementSystem is a managed cloud account connection.
type ExtManagementSystem struct {
	Base

	Name   string `gorm:"uniqueIndex;not null"`
	UidEms string
	Region string
}

// Template is a bootable image a provisioning request can select.
type Template struct {
	Base

	EmsID  uint   `gorm:"uniqueIndex:idx_template_ref"`
	EmsRef string `gorm:"uniqueIndex:idx_template_ref"`
	Name   string
	Status string
	OS     string
}

// AvailabilityZone is a zone of the EMS region.
type AvailabilityZone struct {
	Base

	EmsID  uint `gorm:"index"`
	EmsRef string
	Name   string
}

// Flavor is an instance profile.
type Flavor struct {
	Base

	EmsID  uint `gorm:"index"`
	EmsRef string
	Name   string
	Family string
}

// CloudNetwork is a VPC.
type CloudNetwork struct {
	Base

	EmsID  uint `gorm:"index"`
	EmsRef string
	Name   string
}

// CloudSubnet is a VPC subnet.
type CloudSubnet struct {
	Base

	EmsID           uint `gorm:"index"`
	EmsRef          string
	Name            string
	Zone            string
	CloudNetworkRef string
}

// CloudVolume is a block storage volume.
type CloudVolume struct {
	Base

	EmsID           uint `gorm:"index"`
	EmsRef string
	Name   string
	Status string
	Zone   string
	Size   int64
}

// Task phases.
const (
	PhaseQueued   = "queued"
	PhaseActive   = "active"
	PhaseFinished = "finished"
	PhaseError    = "error"
)

// ProvisionTask records one provisioning attempt.
type ProvisionTask struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EmsID       uint `gorm:"index"`
	Options     datatypes.JSON
	State       string
	Phase       string `gorm:"index"`
	InstanceRef string
	Message     string
}
