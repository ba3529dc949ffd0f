// Package stats turns a stream of probe outcomes into per-host health metrics.
//
// Each monitored host owns one Stats value, tagged with the probe kind chosen
// for the session (ping or HTTP). Recording an Outcome bumps the cumulative
// counters, updates the status classification and, for outcomes that carried
// a reply, pushes the measured duration into a bounded Window. Average,
// minimum and maximum are recomputed from the window contents on every push,
// so they always describe the most recent samples only.
//
// # Store
//
// Store holds one Stats entry per host, created up front and never added or
// removed afterwards. Probe loops write through Store.Apply, which takes the
// write lock for the whole update so readers never observe a half-applied
// outcome. The dashboard, exporter and status API read deep copies through
// Store.Get and Store.Snapshot.
package stats
