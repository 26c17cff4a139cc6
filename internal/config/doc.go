// Package config defines the runtime configuration of vpcprov.
//
// [Config] is read from a YAML file (default vpcprov.yaml) and describes the IBM
// Cloud region and account, the local inventory database, the provider log file,
// the optional Cloud Object Storage archive and the metrics textfile. Secrets are
// never read from the file; they come from the environment (see [Credentials]).
// [Timeouts] are loaded from environment variables with defaults.
package config
