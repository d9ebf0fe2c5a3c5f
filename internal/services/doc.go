// Package services contains the dashboard query layer. DashboardService
// owns the process-lifetime cache of the loaded observation table and
// exposes one method per dashboard view, mapping loader absence to
// ErrDataNotFound and unmatched selections to empty results.
package services
