/*
Package nodeid provides the structured identifiers of network nodes.

An identifier is a kind followed by a name and an optional index, written
`kind.name` or `kind.name[index]`, e.g. `task.laser_driver` or
`producer.wheel_odometry[0]`. Tasks declared in the configuration are
addressed by name; producer nodes inserted during a build carry the producer
reference as their name and an index that keeps repeated instantiations
apart.

This package centralizes formatting and parsing so that identifiers stay
stable across the plan, the configuration-state report and log records.
*/
package nodeid
