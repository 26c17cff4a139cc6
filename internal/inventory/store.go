package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/imamik/vpcprov/internal/config"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is the SQLite-backed inventory.
type Store struct {
	conn *gorm.DB
}

// Open opens (and migrates) the inventory database.
func Open(cfg config.InventoryConfig) (*Store, error) {
	gormConfig := &gorm.Config{}
	if !cfg.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	conn, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory %s: %w", cfg.Path, err)
	}
	if cfg.Debug {
		conn = conn.Debug()
	}

	if err := conn.AutoMigrate(
		&ExtManagementSystem{},
		&Template{},
		&AvailabilityZone{},
		&Flavor{},
		&CloudNetwork{},
		&CloudSubnet{},
		&CloudVolume{},
		&ProvisionTask{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate inventory: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	db, err := s.conn.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func notFound(err error, kind string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", kind, key, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s %v: %w", kind, key, err)
}

// CreateEMS stores a new management system record.
func (s *Store) CreateEMS(ctx context.Context, ems *ExtManagementSystem) error {
	if err := s.conn.WithContext(ctx).Create(ems).Error; err != nil {
		return fmt.Errorf("failed to create ems %s: %w", ems.Name, err)
	}
	return nil
}

// GetEMS returns a management system by id.
func (s *Store) GetEMS(ctx context.Context, id uint) (*ExtManagementSystem, error) {
	var ems ExtManagementSystem
	if err := s.conn.WithContext(ctx).First(&ems, id).Error; err != nil {
		return nil, notFound(err, "ems", id)
	}
	return &ems, nil
}

// GetEMSByName returns a management system by name.
func (s *Store) GetEMSByName(ctx context.Context, name string) (*ExtManagementSystem, error) {
	var ems ExtManagementSystem
	if err := s.conn.WithContext(ctx).Where("name = ?", name).First(&ems).Error; err != nil {
		return nil, notFound(err, "ems", name)
	}
	return &ems, nil
}

// GetTemplate returns a template by id.
func (s *Store) GetTemplate(ctx context.Context, id uint) (*Template, error) {
	var tmpl Template
	if err := s.conn.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, notFound(err, "template", id)
	}
	return &tmpl, nil
}

// Templates lists the templates of a management system.
func (s *Store) Templates(ctx context.Context, emsID uint) ([]Template, error) {
	return list[Template](ctx, s, emsID)
}

// AvailabilityZones lists the zones of a management system.
func (s *Store) AvailabilityZones(ctx context.Context, emsID uint) ([]AvailabilityZone, error) {
	return list[AvailabilityZone](ctx, s, emsID)
}

// Flavors lists the flavors of a management system.
func (s *Store) Flavors(ctx context.Context, emsID uint) ([]Flavor, error) {
	return list[Flavor](ctx, s, emsID)
}

// CloudNetworks lists the VPCs of a management system.
func (s *Store) CloudNetworks(ctx context.Context, emsID uint) ([]CloudNetwork, error) {
	return list[CloudNetwork](ctx, s, emsID)
}

// CloudSubnets lists the subnets of a management system.
func (s *Store) CloudSubnets(ctx context.Context, emsID uint) ([]CloudSubnet, error) {
	return list[CloudSubnet](ctx, s, emsID)
}

// CloudVolumes lists the volumes of a management system.
func (s *Store) CloudVolumes(ctx context.Context, emsID uint) ([]CloudVolume, error) {
	return list[CloudVolume](ctx, s, emsID)
}

func list[T any](ctx context.Context, s *Store, emsID uint) ([]T, error) {
	var rows []T
	if err := s.conn.WithContext(ctx).Where("ems_id = ?", emsID).Order("id").Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("failed to list %T: %w", zero, err)
	}
	return rows, nil
}

// Snapshot is the full catalog of one management system.
type Snapshot struct {
	Zones     []AvailabilityZone
	Flavors   []Flavor
	Networks  []CloudNetwork
	Subnets   []CloudSubnet
	Volumes   []CloudVolume
	Templates []Template
}

// ReplaceInventory swaps the cached catalog of one management system for snap
// in a single transaction. Templates are upserted by provider ref so their ids
// survive the refresh; templates no longer reported are removed.
func (s *Store) ReplaceInventory(ctx context.Context, emsID uint, snap Snapshot) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceRows(tx, emsID, snap.Zones, func(r *AvailabilityZone) { r.EmsID = emsID }); err != nil {
			return err
		}
		if err := replaceRows(tx, emsID, snap.Flavors, func(r *Flavor) { r.EmsID = emsID }); err != nil {
			return err
		}
		if err := replaceRows(tx, emsID, snap.Networks, func(r *CloudNetwork) { r.EmsID = emsID }); err != nil {
			return err
		}
		if err := replaceRows(tx, emsID, snap.Subnets, func(r *CloudSubnet) { r.EmsID = emsID }); err != nil {
			return err
		}
		if err := replaceRows(tx, emsID, snap.Volumes, func(r *CloudVolume) { r.EmsID = emsID }); err != nil {
			return err
		}
		return upsertTemplates(tx, emsID, snap.Templates)
	})
}

func replaceRows[T any](tx *gorm.DB, emsID uint, rows []T, own func(*T)) error {
	var zero T
	if err := tx.Where("ems_id = ?", emsID).Delete(&zero).Error; err != nil {
		return fmt.Errorf("failed to clear %T: %w", zero, err)
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		own(&rows[i])
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to store %T: %w", zero, err)
	}
	return nil
}

func upsertTemplates(tx *gorm.DB, emsID uint, templates []Template) error {
	if len(templates) == 0 {
		if err := tx.Where("ems_id = ?", emsID).Delete(&Template{}).Error; err != nil {
			return fmt.Errorf("failed to clear templates: %w", err)
		}
		return nil
	}

	refs := make([]string, 0, len(templates))
	for i := range templates {
		templates[i].EmsID = emsID
		refs = append(refs, templates[i].EmsRef)
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ems_id"}, {Name: "ems_ref"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "status", "os", "updated_at"}),
	}).Create(&templates).Error
	if err != nil {
		return fmt.Errorf("failed to store templates: %w", err)
	}

	if err := tx.Where("ems_id = ? AND ems_ref NOT IN ?", emsID, refs).Delete(&Template{}).Error; err != nil {
		return fmt.Errorf("failed to prune templates: %w", err)
	}
	return nil
}

// CreateTask stores a new task record with a generated id.
func (s *Store) CreateTask(ctx context.Context, task *ProvisionTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Phase == "" {
		task.Phase = PhaseQueued
	}
	if err := s.conn.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateTask persists all fields of task.
func (s *Store) UpdateTask(ctx context.Context, task *ProvisionTask) error {
	if err := s.conn.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	return nil
}

// GetTask returns a task record by id.
func (s *Store) GetTask(ctx context.Context, id string) (*ProvisionTask, error) {
	var task ProvisionTask
	if err := s.conn.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, notFound(err, "task", id)
	}
	return &task, nil
}

// ListTasks returns the most recent task records, newest first.
func (s *Store) ListTasks(ctx context.Context, limit int) ([]ProvisionTask, error) {
	var tasks []ProvisionTask
	q := s.conn.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
