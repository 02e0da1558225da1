package tasks

// Reporter receives the outcome of a maintenance job, e.g. to write it to the
// audit log. A nil Reporter is allowed.
type Reporter interface {
	LogMaintenance(action, description string, removed int64, err error)
}

func report(r Reporter, action, description string, removed int64, err error) {
	if r == nil {
		return
	}
	r.LogMaintenance(action, description, removed, err)
}
