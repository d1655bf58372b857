package schedule

// Merge reconciles a fresh extraction with fragments stored from earlier
// turns. When a stored date meets a newly supplied time (or vice versa), the
// stored fragment completes the pair, and Missing is recomputed from the
// effective fields. Unrecognized and error extractions pass through untouched
// so the caller re-prompts without overwriting partial state.
func Merge(prevDate, prevTime string, ex Extraction) Extraction {
	if ex.Missing == MissingUnrecognized || ex.Missing == MissingError {
		return ex
	}

	date := ex.Date
	clock := ex.Time
	if prevDate != "" && clock != "" {
		date = prevDate
	}
	if prevTime != "" && date != "" {
		clock = prevTime
	}

	return Extraction{
		Date:    date,
		Time:    clock,
		Missing: missingFromFields(date, clock),
	}
}
