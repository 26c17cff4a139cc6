package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vpcprov/internal/ui"
)

// Tasks prints the most recent task records, newest first.
func Tasks(ctx context.Context, configPath string, limit int) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.inventory()
	if err != nil {
		return err
	}

	tasks, err := store.ListTasks(ctx, limit)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "No provisioning tasks recorded.")
		return nil
	}
	for i := range tasks {
		fmt.Fprint(stdout, ui.RenderTask(&tasks[i]))
	}
	return nil
}

// Task prints a single task record.
func Task(ctx context.Context, configPath, id string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	store, err := s.inventory()
	if err != nil {
		return err
	}

	task, err := store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, ui.RenderTask(task))
	return nil
}
