// Package config defines the format-agnostic configuration model of a
// network build: the transform catalog records, the component models with
// their transformer annotations, the task instances and their connections.
//
// The `config.Model` is the single source of truth for the `catalog` and
// `plan` packages. Concrete loaders live in separate packages (`hcl` for
// whole networks, `yamlcatalog` for the persisted catalog records).
package config
