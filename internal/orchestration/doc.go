// Package orchestration drives one provisioning task from request to a running
// instance.
//
// The Runner executes the states of a run in order:
//  1. Pre-provision - placeholder steps (create_destination .. prepare_provision)
//  2. start_clone - build the instance document and submit it
//  3. check_clone - poll the instance with backoff until it runs, fails or the
//     provisioning deadline passes
//  4. customize_destination, post_create_destination - advanced to finished
//
// Every transition is persisted on the task record. When an archiver is
// configured the final record is written to object storage.
//
//	runner := orchestration.NewRunner(gateway, store, logger)
//	task, err := runner.Provision(ctx, opts)
package orchestration
