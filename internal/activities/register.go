package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.LoadTranscriptActivity)
	w.RegisterActivity(a.ResolveModelActivity)
	w.RegisterActivity(a.ExtractSegmentActivity)
	w.RegisterActivity(a.WriteJobStatusActivity)
	w.RegisterActivity(a.RenameMeetingActivity)
}
