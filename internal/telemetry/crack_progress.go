package telemetry

import "sync"

// CrackProgressReporter adapts a job id into a crack.ProgressFunc-
// shaped closure (see internal/core/services/crack) that updates the
// candidates-tried counter without this package depending on the
// crack package. The closure is safe for concurrent use.
func CrackProgressReporter(jobID string) func(tried uint64) {
	counter := CandidatesTried.WithLabelValues(jobID)
	var mu sync.Mutex
	var last uint64
	return func(tried uint64) {
		mu.Lock()
		defer mu.Unlock()
		if tried > last {
			counter.Add(float64(tried - last))
			last = tried
		}
	}
}

// RecordJobStart sets the job's active-workers gauge to workers.
func RecordJobStart(jobID string, workers int) {
	ActiveWorkers.WithLabelValues(jobID).Set(float64(workers))
}

// RecordJobEnd clears the active-workers gauge and, if a passphrase
// was recovered, increments the matches-found counter.
func RecordJobEnd(jobID string, found bool) {
	ActiveWorkers.WithLabelValues(jobID).Set(0)
	if found {
		MatchesFound.WithLabelValues(jobID).Inc()
	}
}
