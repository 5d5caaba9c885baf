package perceptron

// TrainingRecord summarizes one training epoch.
type TrainingRecord struct {
	Epoch    int     `json:"epoch"`
	Errors   int     `json:"errors"`
	Accuracy float64 `json:"accuracy"`
}

// History is the append-only list of epoch records of one training run.
type History struct {
	records []TrainingRecord
}

func (h *History) append(epoch, errors, samples int) TrainingRecord {
	rec := TrainingRecord{
		Epoch:    epoch,
		Errors:   errors,
		Accuracy: 100 * float64(samples-errors) / float64(samples),
	}
	h.records = append(h.records, rec)
	return rec
}

func (h *History) reset() { h.records = nil }

// Len is the number of epochs run.
func (h *History) Len() int { return len(h.records) }

// Records returns a copy of the epoch records in order.
func (h *History) Records() []TrainingRecord {
	return append([]TrainingRecord(nil), h.records...)
}

// Last returns the most recent record, if any.
func (h *History) Last() (TrainingRecord, bool) {
	if len(h.records) == 0 {
		return TrainingRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Converged reports whether the last epoch made no mistakes.
func (h *History) Converged() bool {
	last, ok := h.Last()
	return ok && last.Errors == 0
}

// FinalAccuracy is the training accuracy of the last epoch, or 0 before
// training.
func (h *History) FinalAccuracy() float64 {
	last, _ := h.Last()
	return last.Accuracy
}

// TotalErrors sums mistakes across all epochs, i.e. the number of updates.
func (h *History) TotalErrors() int {
	total := 0
	for _, r := range h.records {
		total += r.Errors
	}
	return total
}
